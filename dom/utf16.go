package dom

import "unicode/utf16"

// DOM offsets for character data and Range boundary points are measured in
// UTF-16 code units, as JavaScript defines string indices. These helpers
// translate between Go's UTF-8 strings and UTF-16 offsets.

// UTF16Length returns the length of s in UTF-16 code units.
func UTF16Length(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// UTF16Substring returns the substring of s between the UTF-16 offsets
// [start, end), clamping both to the valid range.
func UTF16Substring(s string, start, end int) string {
	units := utf16.Encode([]rune(s))
	if start < 0 {
		start = 0
	}
	if end > len(units) {
		end = len(units)
	}
	if start >= end {
		return ""
	}
	return string(utf16.Decode(units[start:end]))
}

// UTF16SliceTo returns the prefix of s up to the UTF-16 offset.
func UTF16SliceTo(s string, offset int) string {
	return UTF16Substring(s, 0, offset)
}

// UTF16SliceFrom returns the suffix of s from the UTF-16 offset.
func UTF16SliceFrom(s string, offset int) string {
	return UTF16Substring(s, offset, UTF16Length(s))
}
