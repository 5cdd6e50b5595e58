// Package lookup holds the static tables of the simulator ids.
// The tables are never modified after package initialization.
package lookup

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	unknown     = "Unknown"
	unknownFlag = "xx"
)

func CountryName(nationality *int) string {
	if nationality == nil {
		return unknown
	}
	if name, ok := countryByNationality[*nationality]; ok {
		return name
	}
	return unknown
}

// FlagCode returns the lower case ISO code (or gb-xxx subdivision) used for flag icons.
func FlagCode(nationality *int) string {
	if nationality == nil {
		return unknownFlag
	}
	if code, ok := isoByNationality[*nationality]; ok {
		return code
	}
	return unknownFlag
}

func CarModelName(model int) string {
	if name, ok := carModels[model]; ok {
		return name
	}
	return unknown
}

// TrackDisplayName turns "brands_hatch" into "Brands Hatch".
func TrackDisplayName(track string) string {
	words := strings.Fields(strings.ReplaceAll(track, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
