package emoji

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemapOldOldKey(t *testing.T) {
	want := map[uint64]uint64{
		0xD83CDDEF: 0xD83CDDEFD83CDDF5,
		0xD83CDDF0: 0xD83CDDF0D83CDDF7,
		0xD83CDDE9: 0xD83CDDE9D83CDDEA,
		0xD83CDDE8: 0xD83CDDE8D83CDDF3,
		0xD83CDDFA: 0xD83CDDFAD83CDDF8,
		0xD83CDDEB: 0xD83CDDEBD83CDDF7,
		0xD83CDDEA: 0xD83CDDEAD83CDDF8,
		0xD83CDDEE: 0xD83CDDEED83CDDF9,
		0xD83CDDF7: 0xD83CDDF7D83CDDFA,
		0xD83CDDEC: 0xD83CDDECD83CDDE7,
	}

	require.Len(t, RemappedKeys(), 10)
	for old, modern := range want {
		assert.Equal(t, modern, RemapOldOldKey(old), "key %#x", old)
	}

	for _, other := range []uint64{0, 0x263A, 0xD83DDE00, 0xD83CDDF5, 0xD83CDDEFD83CDDF5} {
		assert.Equal(t, other, RemapOldOldKey(other), "key %#x", other)
	}
}

func TestIDFromOldKey(t *testing.T) {
	cases := []struct {
		name string
		key  uint64
		want string
	}{
		{"BasicPlane", 0x263A, "☺"},
		{"SurrogatePairInLowHalf", 0xD83DDE00, "😀"},
		{"FlagComposite", 0xD83CDDEFD83CDDF5, "🇯🇵"},
		{"SkinToneComposite", 0xD83DDC4DD83CDFFB, "👍🏻"},
		{"Zero", 0, ""},
		{"SequenceTable", 0xFFFF0001, ""},
		{"LoneLowSurrogate", 0xDE00, ""},
		{"TwoEmoji", 0xD83DDE00D83DDE01, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IDFromOldKey(tc.key))
		})
	}
}

func TestRemappedFlagsNormalizeToFlags(t *testing.T) {
	assert.Equal(t, "🇺🇸", IDFromOldKey(RemapOldOldKey(0xD83CDDFA)))
	assert.Equal(t, "🇬🇧", IDFromOldKey(RemapOldOldKey(0xD83CDDEC)))
}

func TestColorIndexFromOldKey(t *testing.T) {
	assert.Equal(t, 1, ColorIndexFromOldKey(0xD83CDFFB))
	assert.Equal(t, 5, ColorIndexFromOldKey(0xD83CDFFF00000000))
	assert.Equal(t, 3, ColorIndexFromOldKey(0xD83DDC4DD83CDFFD))
	assert.Equal(t, -1, ColorIndexFromOldKey(0xD83DDC4D))
}
