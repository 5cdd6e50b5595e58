package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithFilterRules(t *testing.T) {
	buf := &bytes.Buffer{}
	opt, err := WithFilterRules("debug:ingest.* info:*")
	require.NoError(t, err)
	l := New(buf, DebugLevel, opt)

	l.Named("watch").Debug("dropped")
	l.Named("ingest").Named("supersession").Debug("kept-debug")
	l.Named("watch").Info("kept-info")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept-debug")
	assert.Contains(t, out, "kept-info")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestWithFilterRulesInvalid(t *testing.T) {
	_, err := WithFilterRules("nonsense:")
	assert.Error(t, err)
}

func TestGetFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(buf, InfoLevel)
	ctx := AddToContext(t.Context(), l)
	assert.Same(t, l, GetFromContext(ctx))
	assert.Same(t, Default(), GetFromContext(t.Context()))
}
