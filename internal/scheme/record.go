package scheme

import (
	"encoding/hex"
	"fmt"

	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
	"github.com/PolarWolf314/tdmigrate/internal/qstream"
)

// Record is one decoded settings record. The set of implementations is
// closed: every layout lives in this package.
type Record interface {
	Tag() Tag
	decode(c *qstream.Cursor)
	encode(w *qstream.Writer)
	apply(t *Target)
}

// validator is implemented by records whose decoded values must pass a
// semantic check before they may be applied.
type validator interface {
	validate(env Env) error
}

// NewRecord returns an empty record for tag, ready to be filled by Decode
// or by a script.
func NewRecord(tag Tag) (Record, error) {
	switch tag {
	case TagKey:
		return &KeyRecord{}, nil
	case TagUser:
		return &UserRecord{}, nil
	case TagDcOptionOldOld:
		return &DcOptionOldOldRecord{}, nil
	case TagDcOptionOld:
		return &DcOptionOldRecord{}, nil
	case TagWindowPosition:
		return &WindowPositionRecord{}, nil
	case TagConnectionTypeOld:
		return &ConnectionTypeOldRecord{}, nil
	case TagConnectionType:
		return &ConnectionTypeRecord{}, nil
	case TagMutedPeersOld:
		return &MutedPeersRecord{}, nil
	case TagRecentEmojiOldOld:
		return &RecentEmojiOldOldRecord{}, nil
	case TagRecentEmojiOld:
		return &RecentEmojiOldRecord{}, nil
	case TagRecentEmoji:
		return &RecentEmojiRecord{}, nil
	case TagRecentStickers:
		return &RecentStickersRecord{}, nil
	case TagEmojiVariantsOld:
		return &EmojiVariantsOldRecord{}, nil
	case TagEmojiVariants:
		return &EmojiVariantsRecord{}, nil
	case TagHiddenPinnedMessagesOld:
		return &HiddenPinnedMessagesRecord{}, nil
	case TagDownloadPathOld:
		return &DownloadPathOldRecord{}, nil
	case TagAutoDownloadOld:
		return &AutoDownloadOldRecord{}, nil
	case TagCacheSettingsOld:
		return &CacheSettingsOldRecord{}, nil
	case TagCacheSettings:
		return &CacheSettingsRecord{}, nil
	case TagThemeKey:
		return &ThemeKeyRecord{}, nil
	case TagBackgroundKey:
		return &BackgroundKeyRecord{}, nil

	case TagDialogsModeOld, TagTileBackground:
		return &Int32PairRecord{tag: tag}, nil

	case TagMutePeerOld, TagThemeKeyOld, TagLangPackKey, TagLanguagesKey:
		return &Uint64Record{tag: tag}, nil

	case TagLangFileOld, TagLoggedPhoneNumberOld, TagDownloadPathOldOld,
		TagDialogLastPath, TagTxtDomainStringOldOld, TagTxtDomainStringOld:
		return &StringRecord{tag: tag}, nil

	case TagDcOptionsOld, TagMtpAuthorization, TagSessionSettings,
		TagApplicationSettings, TagFallbackProductionConfig, TagCallSettingsOld:
		return &BytesRecord{tag: tag}, nil

	case TagChatSizeMaxOld, TagSendKeyOld, TagAutoStart, TagStartMinimized,
		TagSoundFlashBounceNotifyOld, TagWorkMode, TagSeenTrayTooltip,
		TagDesktopNotifyOld, TagAutoUpdate, TagLastUpdateCheck,
		TagDefaultAttach, TagCatsAndDogs, TagReplaceEmojiOld,
		TagAskDownloadPathOld, TagScaleOld, TagEmojiTabOld, TagNotifyViewOld,
		TagSendToMenu, TagCompressPastedImageOld, TagLangOld,
		TagTileBackgroundOld, TagAutoLockOld, TagTryIPv6, TagSongVolumeOld,
		TagWindowsNotificationsOld, TagIncludeMutedOld,
		TagMegagroupSizeMaxOld, TagSavedGifsLimitOld, TagShowingSavedGifsOld,
		TagAutoPlayOld, TagAdaptiveForWideOld, TagModerateModeOld,
		TagVideoVolumeOld, TagStickersRecentLimitOld,
		TagNativeNotificationsOld, TagNotificationsCountOld,
		TagNotificationsCornerOld, TagDialogsWidthRatioOld,
		TagUseExternalVideoPlayer, TagLastSeenWarningSeenOld,
		TagStickersFavedLimitOld, TagSuggestStickersByEmojiOld,
		TagSuggestEmojiOld, TagAnimationsDisabled, TagScalePercent,
		TagPlaybackSpeedOld, TagDialogsFiltersOld:
		return &Int32Record{tag: tag}, nil
	}
	return nil, fmt.Errorf("tag %#x: %w", uint32(tag), kerrors.ErrUnknownTag)
}

// Decode reads the payload of one record. Nothing is applied: the caller
// passes the result to Apply once Decode has returned without error.
func Decode(tag Tag, c *qstream.Cursor, env Env) (Record, error) {
	rec, err := NewRecord(tag)
	if err != nil {
		return nil, err
	}
	rec.decode(c)
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", tag, err)
	}
	if v, ok := rec.(validator); ok {
		if err := v.validate(env); err != nil {
			return nil, fmt.Errorf("%s: %w", tag, err)
		}
	}
	return rec, nil
}

// Apply commits a decoded record to t.
func Apply(rec Record, t *Target) {
	rec.apply(t)
}

// Encode writes the tag and payload of rec.
func Encode(w *qstream.Writer, rec Record) {
	w.WriteUint32(uint32(rec.Tag()))
	rec.encode(w)
}

// Validate runs the checks Decode would run on rec.
func Validate(rec Record, env Env) error {
	if v, ok := rec.(validator); ok {
		return v.validate(env)
	}
	return nil
}

// Blob is a byte array field. It is written as hex in text documents.
type Blob []byte

// MarshalText implements encoding.TextMarshaler.
func (b Blob) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(b)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Blob) UnmarshalText(text []byte) error {
	decoded, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("decoding blob: %w", err)
	}
	*b = decoded
	return nil
}
