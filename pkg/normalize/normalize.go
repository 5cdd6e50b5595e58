// Package normalize converts result files of unknown text encoding into
// canonical UTF-8 JSON.
package normalize

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"golang.org/x/text/encoding/unicode"
)

var (
	ErrEncoding      = errors.New("could not determine text encoding")
	ErrMalformedJSON = errors.New("malformed json")
)

type Encoding int

const (
	UTF8 Encoding = iota
	UTF16LE
	UTF16BE
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "UTF-8"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BE:
		return "UTF-16BE"
	default:
		return "unknown"
	}
}

// share of NUL bytes (relative to the whole buffer) that makes us assume UTF-16
const nulThreshold = 0.45

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

var serializeOpts = func() *ojg.Options {
	opts := ojg.DefaultOptions
	opts.Indent = 0
	opts.Sort = true
	return &opts
}()

// Normalize decodes raw and returns compact UTF-8 JSON. Duplicate object keys
// are collapsed, the last occurrence wins.
func Normalize(raw []byte) (string, error) {
	text, _, err := NormalizeWithEncoding(raw)
	return text, err
}

// NormalizeWithEncoding is Normalize which also reports the encoding that was used.
func NormalizeWithEncoding(raw []byte) (string, Encoding, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return finish(raw[len(bomUTF8):], UTF8)
	case bytes.HasPrefix(raw, bomUTF16LE):
		return finish(raw[len(bomUTF16LE):], UTF16LE)
	case bytes.HasPrefix(raw, bomUTF16BE):
		return finish(raw[len(bomUTF16BE):], UTF16BE)
	}

	// candidate holds the json error of a decode that looked plausible
	var candidate error
	beNuls, leNuls := countNuls(raw)
	if len(raw) > 0 {
		if float64(beNuls) >= nulThreshold*float64(len(raw)) {
			text, err := attempt(raw, UTF16BE)
			if err == nil {
				return text, UTF16BE, nil
			}
			if errors.Is(err, ErrMalformedJSON) {
				candidate = err
			}
		}
		if float64(leNuls) >= nulThreshold*float64(len(raw)) {
			text, err := attempt(raw, UTF16LE)
			if err == nil {
				return text, UTF16LE, nil
			}
			if errors.Is(err, ErrMalformedJSON) {
				candidate = err
			}
		}
	}

	for _, enc := range []Encoding{UTF16LE, UTF16BE, UTF8} {
		text, err := attempt(raw, enc)
		if err == nil {
			return text, enc, nil
		}
		if enc == UTF8 && errors.Is(err, ErrMalformedJSON) {
			candidate = err
		}
	}
	if candidate != nil {
		return "", UTF8, candidate
	}
	return "", UTF8, ErrEncoding
}

// countNuls counts 2-byte chunks with a zero first byte (big endian pattern)
// and a zero second byte (little endian pattern). An odd trailing byte is ignored.
func countNuls(raw []byte) (beNuls, leNuls int) {
	for i := 0; i+1 < len(raw); i += 2 {
		if raw[i] == 0 {
			beNuls++
		}
		if raw[i+1] == 0 {
			leNuls++
		}
	}
	return beNuls, leNuls
}

func finish(raw []byte, enc Encoding) (string, Encoding, error) {
	text, err := attempt(raw, enc)
	return text, enc, err
}

func attempt(raw []byte, enc Encoding) (string, error) {
	text, err := decode(raw, enc)
	if err != nil {
		return "", err
	}
	return dedup(text)
}

func decode(raw []byte, enc Encoding) (string, error) {
	switch enc {
	case UTF8:
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("%w: invalid %s", ErrEncoding, enc)
		}
		return string(raw), nil
	case UTF16LE:
		return decodeUTF16(raw, unicode.LittleEndian, enc)
	case UTF16BE:
		return decodeUTF16(raw, unicode.BigEndian, enc)
	}
	return "", ErrEncoding
}

// decodeUTF16 rejects input the decoder would silently repair: odd lengths and
// unpaired surrogates (which show up as replacement characters not present in the input).
func decodeUTF16(raw []byte, order unicode.Endianness, enc Encoding) (string, error) {
	if len(raw)%2 != 0 {
		return "", fmt.Errorf("%w: odd length for %s", ErrEncoding, enc)
	}
	dec := unicode.UTF16(order, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrEncoding, enc, err)
	}
	if bytes.Count(out, []byte(string(utf8.RuneError))) != countReplacement(raw, order) {
		return "", fmt.Errorf("%w: invalid surrogates for %s", ErrEncoding, enc)
	}
	return string(out), nil
}

func countReplacement(raw []byte, order unicode.Endianness) int {
	count := 0
	for i := 0; i+1 < len(raw); i += 2 {
		var u uint16
		if order == unicode.LittleEndian {
			u = uint16(raw[i]) | uint16(raw[i+1])<<8
		} else {
			u = uint16(raw[i])<<8 | uint16(raw[i+1])
		}
		if u == 0xFFFD {
			count++
		}
	}
	return count
}

// dedup reserializes text. Empty documents are rejected, the parser accepts them.
func dedup(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty document", ErrMalformedJSON)
	}
	parsed, err := oj.ParseString(text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	return oj.JSON(parsed, serializeOpts), nil
}
