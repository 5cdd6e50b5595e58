//nolint:funlen // ok for tests
package resultfile

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Kind
	}{
		{"race", "/srv/results/230812_201533_R.json", KindSession},
		{"qualifying", "230812_201533_Q.json", KindSession},
		{"practice", "230812_201533_P.json", KindSession},
		{"free practice", "230812_201533_FP.json", KindSession},
		{"entrylist", "/srv/cfg/entrylist.json", KindEntryList},
		{"prefixed entrylist", "230812_201533_entrylist.json", KindEntryList},
		{"unknown type", "230812_201533_X.json", KindUnknown},
		{"wrong extension", "230812_201533_R.txt", KindUnknown},
		{"short timestamp", "23081_201533_R.json", KindUnknown},
		{"other", "settings.json", KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}

func TestSessionTypeFromFilename(t *testing.T) {
	assert.Equal(t, "R", sessionTypeFromFilename("230812_201533_R.json"))
	assert.Equal(t, "P", sessionTypeFromFilename("230812_201533_FP.json"))
	assert.Equal(t, "", sessionTypeFromFilename("entrylist.json"))
}

func TestTimestampFromFilename(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	tests := []struct {
		name    string
		file    string
		loc     *time.Location
		want    time.Time
		wantErr bool
	}{
		{
			name: "utc",
			file: "230812_201533_R.json",
			loc:  time.UTC,
			want: time.Date(2023, 8, 12, 20, 15, 33, 0, time.UTC),
		},
		{
			name: "summer time",
			file: "230812_201533_R.json",
			loc:  berlin,
			want: time.Date(2023, 8, 12, 18, 15, 33, 0, time.UTC),
		},
		{
			name: "winter time",
			file: "230115_120000_Q.json",
			loc:  berlin,
			want: time.Date(2023, 1, 15, 11, 0, 0, 0, time.UTC),
		},
		{
			name: "ambiguous fall back uses earliest",
			file: "231029_023000_R.json",
			loc:  berlin,
			want: time.Date(2023, 10, 29, 0, 30, 0, 0, time.UTC),
		},
		{
			name:    "nonexistent spring forward",
			file:    "230326_023000_R.json",
			loc:     berlin,
			wantErr: true,
		},
		{
			name:    "no timestamp",
			file:    "entrylist.json",
			loc:     time.UTC,
			wantErr: true,
		},
		{
			name:    "invalid date",
			file:    "231399_120000_R.json",
			loc:     time.UTC,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimestampFromFilename(tt.file, tt.loc)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrTimestamp))
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}
