package rstfmt

import (
	"strconv"
	"strings"
)

// Enumeration type names as produced by the upstream parser.
const (
	enumArabic     = "arabic"
	enumLowerAlpha = "loweralpha"
	enumUpperAlpha = "upperalpha"
	enumLowerRoman = "lowerroman"
	enumUpperRoman = "upperroman"
)

// alphaMarker converts a 1-based counter to a bijective base-26
// marker: 1 -> a, 26 -> z, 27 -> aa.
func alphaMarker(n int) string {
	if n <= 0 {
		return ""
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = byte('a' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// romanNumeral converts a 1-based counter to a lowercase roman
// numeral. Counters out of range fall back to arabic digits rather
// than producing a corrupt marker.
func romanNumeral(n int) string {
	if n <= 0 || n >= 5000 {
		return strconv.Itoa(n)
	}
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			b.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	return b.String()
}

// enumMarker renders the marker for a 1-based counter of the given
// enumeration type, without prefix or suffix.
func enumMarker(enumType string, n int) string {
	var marker string
	switch {
	case strings.HasSuffix(enumType, "alpha"):
		marker = alphaMarker(n)
	case strings.HasSuffix(enumType, "roman"):
		marker = romanNumeral(n)
	default:
		marker = strconv.Itoa(n)
	}
	if strings.HasPrefix(enumType, "upper") {
		marker = strings.ToUpper(marker)
	}
	return marker
}
