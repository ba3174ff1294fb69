package scheme

import (
	"github.com/PolarWolf314/tdmigrate/internal/mtp"
)

// FallbackSource tells which path produced a fallback configuration.
type FallbackSource int

const (
	// FallbackFromFields means the legacy fields were merged into the base.
	FallbackFromFields FallbackSource = iota
	// FallbackFromBlob means the serialized configuration was used as is.
	FallbackFromBlob
	// FallbackBlobRejected means a serialized configuration was present but
	// unreadable, so the base was kept unchanged.
	FallbackBlobRejected
)

func (s FallbackSource) String() string {
	switch s {
	case FallbackFromBlob:
		return "blob"
	case FallbackBlobRejected:
		return "blob_rejected"
	default:
		return "fields"
	}
}

// Fallback is the materialized fallback configuration.
type Fallback struct {
	Config mtp.Config
	Source FallbackSource
	// BlobErr explains a FallbackBlobRejected result.
	BlobErr error
}

// Materialize resolves ctx into a fallback configuration. A serialized
// blob wins outright and every accumulated legacy field is ignored.
// Without one, the legacy data-center options are merged into base and
// each legacy limit overrides base only when it is positive (non-empty for
// the TXT domain). base itself is never modified.
func Materialize(ctx *Context, base mtp.Config) Fallback {
	if len(ctx.FallbackConfig) > 0 {
		config, err := mtp.ConfigFromSerialized(ctx.FallbackConfig)
		if err != nil {
			return Fallback{Config: base.Clone(), Source: FallbackBlobRejected, BlobErr: err}
		}
		return Fallback{Config: config, Source: FallbackFromBlob}
	}

	config := base.Clone()
	config.DcOptions.AddFromOther(ctx.LegacyDcOptions)
	if ctx.LegacyChatSizeMax > 0 {
		config.ChatSizeMax = ctx.LegacyChatSizeMax
	}
	if ctx.LegacySavedGifsLimit > 0 {
		config.SavedGifsLimit = ctx.LegacySavedGifsLimit
	}
	if ctx.LegacyStickersRecentLimit > 0 {
		config.StickersRecentLimit = ctx.LegacyStickersRecentLimit
	}
	if ctx.LegacyStickersFavedLimit > 0 {
		config.StickersFavedLimit = ctx.LegacyStickersFavedLimit
	}
	if ctx.LegacyMegagroupSizeMax > 0 {
		config.MegagroupSizeMax = ctx.LegacyMegagroupSizeMax
	}
	if ctx.LegacyTxtDomainString != "" {
		config.TxtDomainString = ctx.LegacyTxtDomainString
	}
	return Fallback{Config: config, Source: FallbackFromFields}
}
