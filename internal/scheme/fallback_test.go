package scheme

import (
	"testing"

	"github.com/PolarWolf314/tdmigrate/internal/mtp"
	"github.com/PolarWolf314/tdmigrate/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializeMergesLegacyFields(t *testing.T) {
	base := mtp.DefaultConfig(mtp.EnvironmentProduction)
	base.DcOptions.AddOne(1, 0, "149.154.175.50", 443, nil)

	ctx := &Context{
		LegacyChatSizeMax:     500,
		LegacySavedGifsLimit:  -1,
		LegacyTxtDomainString: "",
	}
	ctx.LegacyDcOptions.AddOne(2, 0, "149.154.167.51", 443, nil)

	got := Materialize(ctx, base)

	assert.Equal(t, FallbackFromFields, got.Source)
	assert.NoError(t, got.BlobErr)
	assert.Equal(t, int32(500), got.Config.ChatSizeMax)
	assert.Equal(t, base.SavedGifsLimit, got.Config.SavedGifsLimit)
	assert.Equal(t, base.TxtDomainString, got.Config.TxtDomainString)
	assert.Equal(t, 2, got.Config.DcOptions.Len())

	// The base is left alone.
	assert.Equal(t, 1, base.DcOptions.Len())
	assert.Equal(t, int32(200), base.ChatSizeMax)
}

func TestMaterializeBlobWins(t *testing.T) {
	stored := mtp.DefaultConfig(mtp.EnvironmentTest)
	stored.ChatSizeMax = 42
	stored.DcOptions.AddOne(4, 0, "10.0.0.1", 80, nil)

	// Legacy fields applied after the blob are still ignored.
	target := applyAll(t, state.NewStore(), testEnv(),
		&BytesRecord{tag: TagFallbackProductionConfig, Data: stored.Serialize()},
		NewInt32Record(TagChatSizeMaxOld, 900),
		&StringRecord{tag: TagTxtDomainStringOld, Value: "ignored.example"},
		&DcOptionOldOldRecord{DcID: 5, IP: "10.0.0.5", Port: 443},
	)

	got := Materialize(target.Context, mtp.DefaultConfig(mtp.EnvironmentProduction))

	require.Equal(t, FallbackFromBlob, got.Source)
	assert.Equal(t, mtp.EnvironmentTest, got.Config.Environment)
	assert.Equal(t, int32(42), got.Config.ChatSizeMax)
	assert.Equal(t, stored.TxtDomainString, got.Config.TxtDomainString)
	require.Equal(t, 1, got.Config.DcOptions.Len())
	assert.Equal(t, int32(4), got.Config.DcOptions.Options()[0].ID)
}

func TestMaterializeRejectedBlobKeepsBase(t *testing.T) {
	base := mtp.DefaultConfig(mtp.EnvironmentProduction)
	ctx := &Context{
		FallbackConfig:    []byte{0, 0, 0, 9},
		LegacyChatSizeMax: 900,
	}

	got := Materialize(ctx, base)

	assert.Equal(t, FallbackBlobRejected, got.Source)
	assert.Error(t, got.BlobErr)
	assert.Equal(t, base, got.Config)
	assert.Equal(t, "blob_rejected", got.Source.String())
}

func TestMaterializeEmptyContextIsBase(t *testing.T) {
	base := mtp.DefaultConfig(mtp.EnvironmentProduction)

	got := Materialize(&Context{}, base)

	assert.Equal(t, FallbackFromFields, got.Source)
	assert.Equal(t, base, got.Config)
}
