package migrate

import (
	"testing"

	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
	"github.com/PolarWolf314/tdmigrate/internal/scheme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectListsRecords(t *testing.T) {
	data := stream(t,
		scheme.NewInt32Record(scheme.TagWorkMode, 2),
		scheme.NewInt32Record(scheme.TagCatsAndDogs, 1),
		&scheme.ThemeKeyRecord{Day: 1, Night: 2, NightMode: 1},
	)

	entries, err := Inspect(data, testOptions)

	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 0, entries[0].Offset)
	assert.Equal(t, 8, entries[0].Size)
	assert.Equal(t, scheme.TagWorkMode, entries[0].Tag)
	assert.False(t, entries[0].Discarded)

	assert.Equal(t, 8, entries[1].Offset)
	assert.True(t, entries[1].Discarded)

	assert.Equal(t, 16, entries[2].Offset)
	assert.Equal(t, 24, entries[2].Size)
	theme, ok := entries[2].Record.(*scheme.ThemeKeyRecord)
	require.True(t, ok)
	assert.Equal(t, uint32(1), theme.NightMode)
}

func TestInspectReturnsEntriesBeforeFailure(t *testing.T) {
	good := stream(t, scheme.NewInt32Record(scheme.TagAutoStart, 1))
	data := append(good, stream(t, &scheme.CacheSettingsRecord{Size: 1})...)

	entries, err := Inspect(data, testOptions)

	require.Len(t, entries, 1)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, 1, decodeErr.Index)
	assert.Equal(t, scheme.TagCacheSettings, decodeErr.Tag)
	assert.ErrorIs(t, err, kerrors.ErrValidationRejected)
	assert.True(t, decodeErr.TagRead)
}

func TestInspectTruncatedTagIsUnread(t *testing.T) {
	data := append(stream(t, scheme.NewInt32Record(scheme.TagAutoStart, 1)), 0, 0, 0)

	entries, err := Inspect(data, testOptions)

	require.Len(t, entries, 1)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.False(t, decodeErr.TagRead)
	assert.Equal(t, "unread tag", decodeErr.TagName())
	assert.ErrorIs(t, err, kerrors.ErrStreamExhausted)
}
