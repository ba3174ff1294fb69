package scheme

import (
	"fmt"

	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
	"github.com/PolarWolf314/tdmigrate/internal/qstream"
	"github.com/PolarWolf314/tdmigrate/internal/state"
)

// Int32Record is the layout of every record holding one int32.
type Int32Record struct {
	tag   Tag
	Value int32 `toml:"value" json:"value"`
}

// NewInt32Record returns a single-integer record. It panics if tag uses
// another layout.
func NewInt32Record(tag Tag, value int32) *Int32Record {
	rec, err := NewRecord(tag)
	if err != nil {
		panic(err)
	}
	r, ok := rec.(*Int32Record)
	if !ok {
		panic(fmt.Sprintf("scheme: %s is not an int32 record", tag))
	}
	r.Value = value
	return r
}

func (r *Int32Record) Tag() Tag { return r.tag }

func (r *Int32Record) decode(c *qstream.Cursor) {
	r.Value = c.ReadInt32()
}

func (r *Int32Record) encode(w *qstream.Writer) {
	w.WriteInt32(r.Value)
}

func (r *Int32Record) validate(Env) error {
	if r.tag == TagSendKeyOld && !state.SendSubmitWay(r.Value).Valid() {
		return fmt.Errorf("send key %d: %w", r.Value, kerrors.ErrValidationRejected)
	}
	return nil
}

func (r *Int32Record) apply(t *Target) {
	v := r.Value
	on := v == 1
	sink := t.Sink
	ctx := t.Context

	switch r.tag {
	case TagChatSizeMaxOld:
		ctx.LegacyChatSizeMax = v
	case TagSavedGifsLimitOld:
		ctx.LegacySavedGifsLimit = v
	case TagStickersRecentLimitOld:
		ctx.LegacyStickersRecentLimit = v
	case TagStickersFavedLimitOld:
		ctx.LegacyStickersFavedLimit = v
	case TagMegagroupSizeMaxOld:
		ctx.LegacyMegagroupSizeMax = v

	case TagAutoStart:
		sink.SetAutoStart(on)
	case TagStartMinimized:
		sink.SetStartMinimized(on)
	case TagSendToMenu:
		sink.SetSendToMenu(on)
	case TagUseExternalVideoPlayer:
		sink.SetUseExternalVideoPlayer(on)
	case TagAnimationsDisabled:
		sink.SetAnimationsDisabled(on)
	case TagSeenTrayTooltip:
		sink.SetSeenTrayTooltip(on)
	case TagAutoUpdate:
		sink.SetAutoUpdate(on)
	case TagLastUpdateCheck:
		sink.SetLastUpdateCheck(v)
	case TagTryIPv6:
		sink.SetTryIPv6(on)
	case TagWorkMode:
		sink.SetWorkMode(workModeFromLegacy(v))
	case TagScaleOld:
		sink.SetConfigScale(state.CheckScale(scaleFromLegacy(v, sink.ConfigScale())))
	case TagScalePercent:
		// A scale that is no longer auto came from the command line.
		if sink.ConfigScale() == state.ScaleAuto {
			sink.SetConfigScale(state.CheckScale(int(v)))
		}
	case TagTileBackgroundOld:
		tile := on
		if t.Env.FormatVersion < FormatVersionTileDefault && !t.Env.HasCustomDayBackground {
			tile = false
		}
		// The slot is chosen against the current mode, as legacy clients
		// wrote it.
		if sink.NightMode() {
			ctx.TileDay = tile
		} else {
			ctx.TileNight = tile
		}
		ctx.TileRead = true

	case TagSendKeyOld:
		sink.SetSendSubmitWay(state.SendSubmitWay(v))
	case TagSoundFlashBounceNotifyOld:
		sink.SetSoundNotify(v&0x01 == 0x01)
		sink.SetFlashBounceNotify(v&0x02 == 0x00)
	case TagDesktopNotifyOld:
		sink.SetDesktopNotify(on)
	case TagNativeNotificationsOld:
		sink.SetNativeNotifications(on)
	case TagNotificationsCountOld:
		if v > 0 {
			sink.SetNotificationsCount(int(v))
		} else {
			sink.SetNotificationsCount(3)
		}
	case TagNotificationsCornerOld:
		if v >= 0 && v < 4 {
			sink.SetNotificationsCorner(state.ScreenCorner(v))
		} else {
			sink.SetNotificationsCorner(state.CornerBottomRight)
		}
	case TagNotifyViewOld:
		sink.SetNotifyView(notifyViewFromLegacy(v))
	case TagIncludeMutedOld:
		sink.SetIncludeMutedCounter(on)
	case TagModerateModeOld:
		sink.SetModerateModeEnabled(on)
	case TagDialogsWidthRatioOld:
		sink.SetDialogsWidthRatio(float64(v) / 1e6)
	case TagLastSeenWarningSeenOld:
		sink.SetLastSeenWarningSeen(on)
	case TagAdaptiveForWideOld:
		sink.SetAdaptiveForWide(on)
	case TagAutoLockOld:
		sink.SetAutoLock(v)
	case TagReplaceEmojiOld:
		sink.SetReplaceEmoji(on)
	case TagSuggestEmojiOld:
		sink.SetSuggestEmoji(on)
	case TagSuggestStickersByEmojiOld:
		sink.SetSuggestStickersByEmoji(on)
	case TagAskDownloadPathOld:
		sink.SetAskDownloadPath(on)
	case TagCompressPastedImageOld:
		if on {
			sink.SetSendFilesWay(state.SendFilesAlbum)
		} else {
			sink.SetSendFilesWay(state.SendFilesFiles)
		}
	case TagSongVolumeOld:
		sink.SetSongVolume(volumeFromLegacy(v))
	case TagVideoVolumeOld:
		sink.SetVideoVolume(volumeFromLegacy(v))
	case TagPlaybackSpeedOld:
		sink.SetVoiceMsgPlaybackDoubled(v == 2)

	case TagDialogsFiltersOld:
		sink.SetDialogsFiltersEnabled(on)
	case TagAutoPlayOld:
		if v == 0 {
			for _, source := range autoDownloadSources {
				for _, kind := range []state.AutoDownloadType{
					state.TypeAutoPlayGIF,
					state.TypeAutoPlayVideo,
					state.TypeAutoPlayVideoMessage,
				} {
					sink.SetAutoDownloadBytesLimit(source, kind, 0)
				}
			}
		}
	}
}

func workModeFromLegacy(v int32) state.WorkMode {
	switch state.WorkMode(v) {
	case state.WorkModeTrayOnly, state.WorkModeWindowOnly:
		return state.WorkMode(v)
	}
	return state.WorkModeWindowAndTray
}

func notifyViewFromLegacy(v int32) state.NotifyView {
	switch state.NotifyView(v) {
	case state.NotifyShowName, state.NotifyShowNothing:
		return state.NotifyView(v)
	}
	return state.NotifyShowPreview
}

// scaleFromLegacy maps the enumerated scale of old clients to a percentage.
// Unknown values keep current.
func scaleFromLegacy(v int32, current int) int {
	switch v {
	case 0:
		return state.ScaleAuto
	case 1:
		return 100
	case 2:
		return 125
	case 3:
		return 150
	case 4:
		return 200
	}
	return current
}

func volumeFromLegacy(v int32) float64 {
	return max(0, min(float64(v)/1e6, 1))
}

// Int32PairRecord is the layout of records holding two int32 values.
type Int32PairRecord struct {
	tag    Tag
	First  int32 `toml:"first" json:"first"`
	Second int32 `toml:"second" json:"second"`
}

func (r *Int32PairRecord) Tag() Tag { return r.tag }

func (r *Int32PairRecord) decode(c *qstream.Cursor) {
	r.First = c.ReadInt32()
	r.Second = c.ReadInt32()
}

func (r *Int32PairRecord) encode(w *qstream.Writer) {
	w.WriteInt32(r.First)
	w.WriteInt32(r.Second)
}

func (r *Int32PairRecord) apply(t *Target) {
	if r.tag == TagTileBackground {
		t.Context.TileDay = r.First != 0
		t.Context.TileNight = r.Second != 0
		t.Context.TileRead = true
	}
}

// Uint64Record is the layout of records holding one 64-bit key.
type Uint64Record struct {
	tag   Tag
	Value state.ID64 `toml:"value" json:"value"`
}

func (r *Uint64Record) Tag() Tag { return r.tag }

func (r *Uint64Record) decode(c *qstream.Cursor) {
	r.Value = state.ID64(c.ReadUint64())
}

func (r *Uint64Record) encode(w *qstream.Writer) {
	w.WriteUint64(uint64(r.Value))
}

func (r *Uint64Record) apply(t *Target) {
	switch r.tag {
	case TagThemeKeyOld:
		t.Context.ThemeKeyLegacy = uint64(r.Value)
	case TagLangPackKey:
		t.Context.LangPackKey = uint64(r.Value)
	case TagLanguagesKey:
		t.Context.LanguagesKey = uint64(r.Value)
	}
}

// StringRecord is the layout of records holding one string.
type StringRecord struct {
	tag   Tag
	Value string `toml:"value" json:"value"`
}

func (r *StringRecord) Tag() Tag { return r.tag }

func (r *StringRecord) decode(c *qstream.Cursor) {
	r.Value = c.ReadString()
}

func (r *StringRecord) encode(w *qstream.Writer) {
	w.WriteString(r.Value)
}

func (r *StringRecord) apply(t *Target) {
	switch r.tag {
	case TagTxtDomainStringOld:
		t.Context.LegacyTxtDomainString = r.Value
	case TagDialogLastPath:
		t.Sink.SetDialogLastPath(r.Value)
	case TagDownloadPathOldOld:
		t.Sink.SetDownloadPath(normalizeDownloadPath(r.Value), nil)
	}
}

// normalizeDownloadPath appends the trailing slash older clients omitted.
// "tmp" names the temporary folder and stays as is.
func normalizeDownloadPath(path string) string {
	if path != "" && path != "tmp" && path[len(path)-1] != '/' {
		return path + "/"
	}
	return path
}

// BytesRecord is the layout of records holding one byte array.
type BytesRecord struct {
	tag  Tag
	Data Blob `toml:"data" json:"data"`
}

func (r *BytesRecord) Tag() Tag { return r.tag }

func (r *BytesRecord) decode(c *qstream.Cursor) {
	r.Data = c.ReadBytes()
}

func (r *BytesRecord) encode(w *qstream.Writer) {
	w.WriteBytes(r.Data)
}

func (r *BytesRecord) apply(t *Target) {
	switch r.tag {
	case TagDcOptionsOld:
		if err := t.Context.LegacyDcOptions.AddFromSerialized(r.Data); err != nil {
			t.warnf("%s: ignoring unreadable dc options: %v", r.tag, err)
		}
	case TagMtpAuthorization:
		t.Context.MtpAuthorization = r.Data
	case TagFallbackProductionConfig:
		t.Context.FallbackConfig = r.Data
	case TagApplicationSettings:
		t.Sink.AddApplicationSettings(r.Data)
	case TagSessionSettings:
		t.Sink.AddSessionSettings(r.Data)
	case TagCallSettingsOld:
		// The nested blob is read leniently: a short or corrupt one is
		// skipped without failing the stream.
		if settings, ok := parseCallSettings(r.Data); ok {
			t.Sink.SetCallSettings(settings)
		}
	}
}

func parseCallSettings(data []byte) (state.CallSettings, bool) {
	c := qstream.NewCursor(data)
	settings := state.CallSettings{
		OutputDeviceID: c.ReadString(),
		OutputVolume:   c.ReadInt32(),
		InputDeviceID:  c.ReadString(),
		InputVolume:    c.ReadInt32(),
		DuckingEnabled: c.ReadInt32() != 0,
	}
	if !c.Ok() {
		return state.CallSettings{}, false
	}
	return settings, true
}

// EncodeCallSettings builds the nested blob of a CallSettingsOld record.
func EncodeCallSettings(settings state.CallSettings) []byte {
	w := qstream.NewWriter()
	w.WriteString(settings.OutputDeviceID)
	w.WriteInt32(settings.OutputVolume)
	w.WriteString(settings.InputDeviceID)
	w.WriteInt32(settings.InputVolume)
	if settings.DuckingEnabled {
		w.WriteInt32(1)
	} else {
		w.WriteInt32(0)
	}
	return w.Bytes()
}

var autoDownloadSources = []state.AutoDownloadSource{
	state.SourceUser,
	state.SourceGroup,
	state.SourceChannel,
}
