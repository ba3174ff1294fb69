package scheme

import (
	"fmt"

	"github.com/PolarWolf314/tdmigrate/internal/mtp"
	"github.com/PolarWolf314/tdmigrate/internal/state"
)

// DefaultCacheMaxDataSize is the largest single entry the cache database
// stores. Stored total limits must exceed it.
const DefaultCacheMaxDataSize int64 = 10 * 1024 * 1024

// FormatVersionTileDefault is the first format version whose legacy tile
// flag is meaningful without a custom day background.
const FormatVersionTileDefault = 8005

// Env carries the stream-level inputs that change how records are read.
type Env struct {
	FormatVersion          int32
	HasCustomDayBackground bool
	CacheMaxDataSize       int64
}

// DefaultEnv returns an Env for the given format version with the default
// cache threshold.
func DefaultEnv(formatVersion int32) Env {
	return Env{
		FormatVersion:    formatVersion,
		CacheMaxDataSize: DefaultCacheMaxDataSize,
	}
}

// Context accumulates values that only resolve at the end of the stream.
// It is populated monotonically and consumed once by Materialize.
type Context struct {
	LegacyDcOptions           mtp.DcOptions
	LegacyChatSizeMax         int32
	LegacySavedGifsLimit      int32
	LegacyStickersRecentLimit int32
	LegacyStickersFavedLimit  int32
	LegacyMegagroupSizeMax    int32
	LegacyTxtDomainString     string

	CacheTotalSizeLimit        int64
	CacheTotalTimeLimit        int32
	CacheBigFileTotalSizeLimit int64
	CacheBigFileTotalTimeLimit int32

	ThemeKeyLegacy     uint64
	ThemeKeyDay        uint64
	ThemeKeyNight      uint64
	BackgroundKeyDay   uint64
	BackgroundKeyNight uint64
	BackgroundKeysRead bool
	TileDay            bool
	TileNight          bool
	TileRead           bool

	LangPackKey  uint64
	LanguagesKey uint64

	FallbackConfig []byte

	LegacyMainDcID   int32
	LegacyUserID     int32
	LegacyKeys       []mtp.AuthKey
	MtpAuthorization []byte
}

// Target is what a decoded record is applied to.
type Target struct {
	Sink    state.Sink
	Context *Context
	Env     Env
	// Warnings collects non-fatal problems found while applying records.
	Warnings []string
}

func (t *Target) warnf(format string, args ...any) {
	t.Warnings = append(t.Warnings, fmt.Sprintf(format, args...))
}
