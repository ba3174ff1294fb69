// Package emoji converts the numeric emoji keys of legacy settings records
// into emoji ids.
//
// Legacy records identified an emoji by up to four UTF-16 code units packed
// into a 64-bit key. The oldest layout only had room for 32 bits, which
// truncated two-code-point flags to their first regional indicator; those
// ten keys are remapped before normalization.
package emoji

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

var oldOldFlags = map[uint64]uint64{
	0xD83CDDEF: 0xD83CDDEFD83CDDF5, // JP
	0xD83CDDF0: 0xD83CDDF0D83CDDF7, // KR
	0xD83CDDE9: 0xD83CDDE9D83CDDEA, // DE
	0xD83CDDE8: 0xD83CDDE8D83CDDF3, // CN
	0xD83CDDFA: 0xD83CDDFAD83CDDF8, // US
	0xD83CDDEB: 0xD83CDDEBD83CDDF7, // FR
	0xD83CDDEA: 0xD83CDDEAD83CDDF8, // ES
	0xD83CDDEE: 0xD83CDDEED83CDDF9, // IT
	0xD83CDDF7: 0xD83CDDF7D83CDDFA, // RU
	0xD83CDDEC: 0xD83CDDECD83CDDE7, // GB
}

// RemapOldOldKey returns the composite key for the truncated flag keys of
// the oldest recent-emoji layout. Every other key is returned unchanged.
func RemapOldOldKey(key uint64) uint64 {
	if remapped, ok := oldOldFlags[key]; ok {
		return remapped
	}
	return key
}

// RemappedKeys returns a copy of the truncated-flag remap table.
func RemappedKeys() map[uint64]uint64 {
	out := make(map[uint64]uint64, len(oldOldFlags))
	for k, v := range oldOldFlags {
		out[k] = v
	}
	return out
}

// IDFromOldKey converts a legacy 64-bit key into an emoji id. It returns
// the empty string when the key does not describe exactly one emoji.
func IDFromOldKey(key uint64) string {
	code := uint32(key >> 32)
	code2 := uint32(key & 0xFFFFFFFF)
	if code == 0 && code2 != 0 {
		code, code2 = code2, 0
	}
	if code == 0 {
		return ""
	}
	// Keys with an all-ones high half indexed a sequence table that no
	// longer exists.
	if code&0xFFFF0000 == 0xFFFF0000 {
		return ""
	}

	units := make([]uint16, 0, 4)
	appendCode := func(c uint32) {
		if high := c >> 16; high != 0 {
			units = append(units, uint16(high))
		}
		units = append(units, uint16(c&0xFFFF))
	}
	appendCode(code)
	if code2 != 0 {
		appendCode(code2)
	}
	return normalize(units)
}

func normalize(units []uint16) string {
	for i := 0; i < len(units); i++ {
		switch {
		case utf16.IsSurrogate(rune(units[i])):
			if units[i] >= 0xDC00 || i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] > 0xDFFF {
				return ""
			}
			i++
		case units[i] == 0:
			return ""
		}
	}

	id := string(utf16.Decode(units))
	if !utf8.ValidString(id) || uniseg.GraphemeClusterCount(id) != 1 {
		return ""
	}
	return id
}

// ColorIndexFromOldKey extracts the skin-tone index (1-5) from a legacy
// variant key. It returns -1 when the key carries no skin-tone modifier.
func ColorIndexFromOldKey(key uint64) int {
	index := colorIndexFromCode(uint32(key & 0xFFFFFFFF))
	if index == 0 {
		index = colorIndexFromCode(uint32(key >> 32))
	}
	if index == 0 {
		return -1
	}
	return index
}

func colorIndexFromCode(code uint32) int {
	switch code {
	case 0xD83CDFFB:
		return 1
	case 0xD83CDFFC:
		return 2
	case 0xD83CDFFD:
		return 3
	case 0xD83CDFFE:
		return 4
	case 0xD83CDFFF:
		return 5
	}
	return 0
}
