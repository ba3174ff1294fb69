package scheme

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Tag identifies the wire layout of one settings record. Values are frozen;
// superseded layouts carry an Old or OldOld suffix.
type Tag uint32

const (
	TagKey                       Tag = 0x00
	TagUser                      Tag = 0x01
	TagDcOptionOldOld            Tag = 0x02
	TagChatSizeMaxOld            Tag = 0x03
	TagMutePeerOld               Tag = 0x04
	TagSendKeyOld                Tag = 0x05
	TagAutoStart                 Tag = 0x06
	TagStartMinimized            Tag = 0x07
	TagSoundFlashBounceNotifyOld Tag = 0x08
	TagWorkMode                  Tag = 0x09
	TagSeenTrayTooltip           Tag = 0x0a
	TagDesktopNotifyOld          Tag = 0x0b
	TagAutoUpdate                Tag = 0x0c
	TagLastUpdateCheck           Tag = 0x0d
	TagWindowPosition            Tag = 0x0e
	TagConnectionTypeOld         Tag = 0x0f
	TagDefaultAttach             Tag = 0x11
	TagCatsAndDogs               Tag = 0x12
	TagReplaceEmojiOld           Tag = 0x13
	TagAskDownloadPathOld        Tag = 0x14
	TagDownloadPathOldOld        Tag = 0x15
	TagScaleOld                  Tag = 0x16
	TagEmojiTabOld               Tag = 0x17
	TagRecentEmojiOldOld         Tag = 0x18
	TagLoggedPhoneNumberOld      Tag = 0x19
	TagMutedPeersOld             Tag = 0x1a
	TagNotifyViewOld             Tag = 0x1c
	TagSendToMenu                Tag = 0x1d
	TagCompressPastedImageOld    Tag = 0x1e
	TagLangOld                   Tag = 0x1f
	TagLangFileOld               Tag = 0x20
	TagTileBackgroundOld         Tag = 0x21
	TagAutoLockOld               Tag = 0x22
	TagDialogLastPath            Tag = 0x23
	TagRecentEmojiOld            Tag = 0x24
	TagEmojiVariantsOld          Tag = 0x25
	TagRecentStickers            Tag = 0x26
	TagDcOptionOld               Tag = 0x27
	TagTryIPv6                   Tag = 0x28
	TagSongVolumeOld             Tag = 0x29
	TagWindowsNotificationsOld   Tag = 0x30
	TagIncludeMutedOld           Tag = 0x31
	TagMegagroupSizeMaxOld       Tag = 0x32
	TagDownloadPathOld           Tag = 0x33
	TagAutoDownloadOld           Tag = 0x34
	TagSavedGifsLimitOld         Tag = 0x35
	TagShowingSavedGifsOld       Tag = 0x36
	TagAutoPlayOld               Tag = 0x37
	TagAdaptiveForWideOld        Tag = 0x38
	TagHiddenPinnedMessagesOld   Tag = 0x39
	TagRecentEmoji               Tag = 0x3a
	TagEmojiVariants             Tag = 0x3b
	TagDialogsModeOld            Tag = 0x40
	TagModerateModeOld           Tag = 0x41
	TagVideoVolumeOld            Tag = 0x42
	TagStickersRecentLimitOld    Tag = 0x43
	TagNativeNotificationsOld    Tag = 0x44
	TagNotificationsCountOld     Tag = 0x45
	TagNotificationsCornerOld    Tag = 0x46
	TagThemeKeyOld               Tag = 0x47
	TagDialogsWidthRatioOld      Tag = 0x48
	TagUseExternalVideoPlayer    Tag = 0x49
	TagDcOptionsOld              Tag = 0x4a
	TagMtpAuthorization          Tag = 0x4b
	TagLastSeenWarningSeenOld    Tag = 0x4c
	TagSessionSettings           Tag = 0x4d
	TagLangPackKey               Tag = 0x4e
	TagConnectionType            Tag = 0x4f
	TagStickersFavedLimitOld     Tag = 0x50
	TagSuggestStickersByEmojiOld Tag = 0x51
	TagSuggestEmojiOld           Tag = 0x52
	TagTxtDomainStringOldOld     Tag = 0x53
	TagThemeKey                  Tag = 0x54
	TagTileBackground            Tag = 0x55
	TagCacheSettingsOld          Tag = 0x56
	TagAnimationsDisabled        Tag = 0x57
	TagScalePercent              Tag = 0x58
	TagPlaybackSpeedOld          Tag = 0x59
	TagLanguagesKey              Tag = 0x5a
	TagCallSettingsOld           Tag = 0x5b
	TagCacheSettings             Tag = 0x5c
	TagTxtDomainStringOld        Tag = 0x5d
	TagApplicationSettings       Tag = 0x5e
	TagDialogsFiltersOld         Tag = 0x5f
	TagFallbackProductionConfig  Tag = 0x60
	TagBackgroundKey             Tag = 0x61
)

var tagNames = map[Tag]string{
	TagKey:                       "Key",
	TagUser:                      "User",
	TagDcOptionOldOld:            "DcOptionOldOld",
	TagChatSizeMaxOld:            "ChatSizeMaxOld",
	TagMutePeerOld:               "MutePeerOld",
	TagSendKeyOld:                "SendKeyOld",
	TagAutoStart:                 "AutoStart",
	TagStartMinimized:            "StartMinimized",
	TagSoundFlashBounceNotifyOld: "SoundFlashBounceNotifyOld",
	TagWorkMode:                  "WorkMode",
	TagSeenTrayTooltip:           "SeenTrayTooltip",
	TagDesktopNotifyOld:          "DesktopNotifyOld",
	TagAutoUpdate:                "AutoUpdate",
	TagLastUpdateCheck:           "LastUpdateCheck",
	TagWindowPosition:            "WindowPosition",
	TagConnectionTypeOld:         "ConnectionTypeOld",
	TagDefaultAttach:             "DefaultAttach",
	TagCatsAndDogs:               "CatsAndDogs",
	TagReplaceEmojiOld:           "ReplaceEmojiOld",
	TagAskDownloadPathOld:        "AskDownloadPathOld",
	TagDownloadPathOldOld:        "DownloadPathOldOld",
	TagScaleOld:                  "ScaleOld",
	TagEmojiTabOld:               "EmojiTabOld",
	TagRecentEmojiOldOld:         "RecentEmojiOldOld",
	TagLoggedPhoneNumberOld:      "LoggedPhoneNumberOld",
	TagMutedPeersOld:             "MutedPeersOld",
	TagNotifyViewOld:             "NotifyViewOld",
	TagSendToMenu:                "SendToMenu",
	TagCompressPastedImageOld:    "CompressPastedImageOld",
	TagLangOld:                   "LangOld",
	TagLangFileOld:               "LangFileOld",
	TagTileBackgroundOld:         "TileBackgroundOld",
	TagAutoLockOld:               "AutoLockOld",
	TagDialogLastPath:            "DialogLastPath",
	TagRecentEmojiOld:            "RecentEmojiOld",
	TagEmojiVariantsOld:          "EmojiVariantsOld",
	TagRecentStickers:            "RecentStickers",
	TagDcOptionOld:               "DcOptionOld",
	TagTryIPv6:                   "TryIPv6",
	TagSongVolumeOld:             "SongVolumeOld",
	TagWindowsNotificationsOld:   "WindowsNotificationsOld",
	TagIncludeMutedOld:           "IncludeMutedOld",
	TagMegagroupSizeMaxOld:       "MegagroupSizeMaxOld",
	TagDownloadPathOld:           "DownloadPathOld",
	TagAutoDownloadOld:           "AutoDownloadOld",
	TagSavedGifsLimitOld:         "SavedGifsLimitOld",
	TagShowingSavedGifsOld:       "ShowingSavedGifsOld",
	TagAutoPlayOld:               "AutoPlayOld",
	TagAdaptiveForWideOld:        "AdaptiveForWideOld",
	TagHiddenPinnedMessagesOld:   "HiddenPinnedMessagesOld",
	TagRecentEmoji:               "RecentEmoji",
	TagEmojiVariants:             "EmojiVariants",
	TagDialogsModeOld:            "DialogsModeOld",
	TagModerateModeOld:           "ModerateModeOld",
	TagVideoVolumeOld:            "VideoVolumeOld",
	TagStickersRecentLimitOld:    "StickersRecentLimitOld",
	TagNativeNotificationsOld:    "NativeNotificationsOld",
	TagNotificationsCountOld:     "NotificationsCountOld",
	TagNotificationsCornerOld:    "NotificationsCornerOld",
	TagThemeKeyOld:               "ThemeKeyOld",
	TagDialogsWidthRatioOld:      "DialogsWidthRatioOld",
	TagUseExternalVideoPlayer:    "UseExternalVideoPlayer",
	TagDcOptionsOld:              "DcOptionsOld",
	TagMtpAuthorization:          "MtpAuthorization",
	TagLastSeenWarningSeenOld:    "LastSeenWarningSeenOld",
	TagSessionSettings:           "SessionSettings",
	TagLangPackKey:               "LangPackKey",
	TagConnectionType:            "ConnectionType",
	TagStickersFavedLimitOld:     "StickersFavedLimitOld",
	TagSuggestStickersByEmojiOld: "SuggestStickersByEmojiOld",
	TagSuggestEmojiOld:           "SuggestEmojiOld",
	TagTxtDomainStringOldOld:     "TxtDomainStringOldOld",
	TagThemeKey:                  "ThemeKey",
	TagTileBackground:            "TileBackground",
	TagCacheSettingsOld:          "CacheSettingsOld",
	TagAnimationsDisabled:        "AnimationsDisabled",
	TagScalePercent:              "ScalePercent",
	TagPlaybackSpeedOld:          "PlaybackSpeedOld",
	TagLanguagesKey:              "LanguagesKey",
	TagCallSettingsOld:           "CallSettingsOld",
	TagCacheSettings:             "CacheSettings",
	TagTxtDomainStringOld:        "TxtDomainStringOld",
	TagApplicationSettings:       "ApplicationSettings",
	TagDialogsFiltersOld:         "DialogsFiltersOld",
	TagFallbackProductionConfig:  "FallbackProductionConfig",
	TagBackgroundKey:             "BackgroundKey",
}

// Records under these tags are read to keep the stream aligned and then
// dropped.
var discardedTags = map[Tag]bool{
	TagMutePeerOld:             true,
	TagDefaultAttach:           true,
	TagCatsAndDogs:             true,
	TagEmojiTabOld:             true,
	TagLoggedPhoneNumberOld:    true,
	TagMutedPeersOld:           true,
	TagLangOld:                 true,
	TagLangFileOld:             true,
	TagWindowsNotificationsOld: true,
	TagShowingSavedGifsOld:     true,
	TagDialogsModeOld:          true,
	TagTxtDomainStringOldOld:   true,
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tag(%#x)", uint32(t))
}

// Known reports whether t has a decoder.
func (t Tag) Known() bool {
	_, ok := tagNames[t]
	return ok
}

// Discarded reports whether records under t are decoded and then ignored.
func (t Tag) Discarded() bool {
	return discardedTags[t]
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tag) UnmarshalText(text []byte) error {
	parsed, err := ParseTag(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTag accepts a tag name ("AutoStart") or a number ("6", "0x4f").
func ParseTag(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	for tag, name := range tagNames {
		if strings.EqualFold(name, s) {
			return tag, nil
		}
	}
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown tag %q", s)
	}
	tag := Tag(n)
	if !tag.Known() {
		return 0, fmt.Errorf("unknown tag %#x", n)
	}
	return tag, nil
}

// AllTags returns every known tag in ascending order.
func AllTags() []Tag {
	tags := make([]Tag, 0, len(tagNames))
	for tag := range tagNames {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
