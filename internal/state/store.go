package state

import (
	"encoding/base64"
	"maps"
	"slices"
	"strconv"

	"github.com/PolarWolf314/tdmigrate/internal/mtp"
)

// AppSettings is the application-wide part of a Snapshot. Nil fields were
// never set by a record.
type AppSettings struct {
	SerializedBlobs        []string       `toml:"serialized_blobs,omitempty" json:"serialized_blobs,omitempty"`
	SoundNotify            *bool          `toml:"sound_notify,omitempty" json:"sound_notify,omitempty"`
	FlashBounceNotify      *bool          `toml:"flash_bounce_notify,omitempty" json:"flash_bounce_notify,omitempty"`
	DesktopNotify          *bool          `toml:"desktop_notify,omitempty" json:"desktop_notify,omitempty"`
	NativeNotifications    *bool          `toml:"native_notifications,omitempty" json:"native_notifications,omitempty"`
	NotificationsCount     *int           `toml:"notifications_count,omitempty" json:"notifications_count,omitempty"`
	NotificationsCorner    *ScreenCorner  `toml:"notifications_corner,omitempty" json:"notifications_corner,omitempty"`
	NotifyView             *NotifyView    `toml:"notify_view,omitempty" json:"notify_view,omitempty"`
	IncludeMutedCounter    *bool          `toml:"include_muted_counter,omitempty" json:"include_muted_counter,omitempty"`
	ModerateModeEnabled    *bool          `toml:"moderate_mode_enabled,omitempty" json:"moderate_mode_enabled,omitempty"`
	DialogsWidthRatio      *float64       `toml:"dialogs_width_ratio,omitempty" json:"dialogs_width_ratio,omitempty"`
	LastSeenWarningSeen    *bool          `toml:"last_seen_warning_seen,omitempty" json:"last_seen_warning_seen,omitempty"`
	SendSubmitWay          *SendSubmitWay `toml:"send_submit_way,omitempty" json:"send_submit_way,omitempty"`
	AdaptiveForWide        *bool          `toml:"adaptive_for_wide,omitempty" json:"adaptive_for_wide,omitempty"`
	AutoLock               *int32         `toml:"auto_lock,omitempty" json:"auto_lock,omitempty"`
	ReplaceEmoji           *bool          `toml:"replace_emoji,omitempty" json:"replace_emoji,omitempty"`
	SuggestEmoji           *bool          `toml:"suggest_emoji,omitempty" json:"suggest_emoji,omitempty"`
	SuggestStickersByEmoji *bool          `toml:"suggest_stickers_by_emoji,omitempty" json:"suggest_stickers_by_emoji,omitempty"`
	AskDownloadPath        *bool          `toml:"ask_download_path,omitempty" json:"ask_download_path,omitempty"`
	DownloadPath           *string        `toml:"download_path,omitempty" json:"download_path,omitempty"`
	DownloadPathBookmark   string         `toml:"download_path_bookmark,omitempty" json:"download_path_bookmark,omitempty"`
	SendFilesWay           *SendFilesWay  `toml:"send_files_way,omitempty" json:"send_files_way,omitempty"`
	SongVolume             *float64       `toml:"song_volume,omitempty" json:"song_volume,omitempty"`
	VideoVolume            *float64       `toml:"video_volume,omitempty" json:"video_volume,omitempty"`
	VoicePlaybackDoubled   *bool          `toml:"voice_playback_doubled,omitempty" json:"voice_playback_doubled,omitempty"`
	Call                   *CallSettings  `toml:"call,omitempty" json:"call,omitempty"`
}

// SessionSettings is the account-scoped part of a Snapshot.
type SessionSettings struct {
	SerializedBlobs []string `toml:"serialized_blobs,omitempty" json:"serialized_blobs,omitempty"`
	// AutoDownloadLimits is keyed by "<source>.<type>".
	AutoDownloadLimits    map[string]int64 `toml:"auto_download_limits,omitempty" json:"auto_download_limits,omitempty"`
	DialogsFiltersEnabled *bool            `toml:"dialogs_filters_enabled,omitempty" json:"dialogs_filters_enabled,omitempty"`
	// HiddenPinnedMessages is keyed by the decimal peer id.
	HiddenPinnedMessages map[string]int32 `toml:"hidden_pinned_messages,omitempty" json:"hidden_pinned_messages,omitempty"`
}

// ProxyState is the connection part of a Snapshot.
type ProxyState struct {
	List        []mtp.ProxyData    `toml:"list,omitempty" json:"list,omitempty"`
	Selected    *mtp.ProxyData     `toml:"selected,omitempty" json:"selected,omitempty"`
	Settings    *mtp.ProxySettings `toml:"settings,omitempty" json:"settings,omitempty"`
	UseForCalls *bool              `toml:"use_for_calls,omitempty" json:"use_for_calls,omitempty"`
	TryIPv6     *bool              `toml:"try_ipv6,omitempty" json:"try_ipv6,omitempty"`
}

// InterfaceState is the process-wide part of a Snapshot.
type InterfaceState struct {
	AutoStart              *bool           `toml:"auto_start,omitempty" json:"auto_start,omitempty"`
	StartMinimized         *bool           `toml:"start_minimized,omitempty" json:"start_minimized,omitempty"`
	SendToMenu             *bool           `toml:"send_to_menu,omitempty" json:"send_to_menu,omitempty"`
	UseExternalVideoPlayer *bool           `toml:"use_external_video_player,omitempty" json:"use_external_video_player,omitempty"`
	AnimationsDisabled     *bool           `toml:"animations_disabled,omitempty" json:"animations_disabled,omitempty"`
	WorkMode               *WorkMode       `toml:"work_mode,omitempty" json:"work_mode,omitempty"`
	SeenTrayTooltip        *bool           `toml:"seen_tray_tooltip,omitempty" json:"seen_tray_tooltip,omitempty"`
	AutoUpdate             *bool           `toml:"auto_update,omitempty" json:"auto_update,omitempty"`
	LastUpdateCheck        *int32          `toml:"last_update_check,omitempty" json:"last_update_check,omitempty"`
	ConfigScale            int             `toml:"config_scale" json:"config_scale"`
	WindowPosition         *WindowPosition `toml:"window_position,omitempty" json:"window_position,omitempty"`
	NightMode              bool            `toml:"night_mode" json:"night_mode"`
	RecentEmoji            []RecentEmoji   `toml:"recent_emoji,omitempty" json:"recent_emoji,omitempty"`
	RecentStickers         []RecentSticker `toml:"recent_stickers,omitempty" json:"recent_stickers,omitempty"`
	EmojiVariants          map[string]int  `toml:"emoji_variants,omitempty" json:"emoji_variants,omitempty"`
	DialogLastPath         *string         `toml:"dialog_last_path,omitempty" json:"dialog_last_path,omitempty"`
}

// Snapshot is a point-in-time copy of everything a Store has received.
type Snapshot struct {
	App       AppSettings     `toml:"app" json:"app"`
	Session   SessionSettings `toml:"session" json:"session"`
	Proxy     ProxyState      `toml:"proxy" json:"proxy"`
	Interface InterfaceState  `toml:"interface" json:"interface"`
}

// Store is an in-memory Sink. The zero value is not usable; call NewStore.
type Store struct {
	snap      Snapshot
	mutations int
}

// StoreOption presets a value on a new Store without counting as a mutation.
type StoreOption func(*Store)

// WithConfigScale presets the interface scale, as a command-line override
// would.
func WithConfigScale(scale int) StoreOption {
	return func(s *Store) { s.snap.Interface.ConfigScale = scale }
}

// WithNightMode presets the night mode flag.
func WithNightMode(enabled bool) StoreOption {
	return func(s *Store) { s.snap.Interface.NightMode = enabled }
}

// NewStore returns an empty Store with the given presets applied.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{}
	s.snap.Interface.ConfigScale = ScaleAuto
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mutations returns how many setter calls the Store has received.
func (s *Store) Mutations() int {
	return s.mutations
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	out := s.snap
	out.App.SerializedBlobs = slices.Clone(s.snap.App.SerializedBlobs)
	out.Session.SerializedBlobs = slices.Clone(s.snap.Session.SerializedBlobs)
	out.Session.AutoDownloadLimits = maps.Clone(s.snap.Session.AutoDownloadLimits)
	out.Session.HiddenPinnedMessages = maps.Clone(s.snap.Session.HiddenPinnedMessages)
	out.Proxy.List = slices.Clone(s.snap.Proxy.List)
	out.Interface.RecentEmoji = slices.Clone(s.snap.Interface.RecentEmoji)
	out.Interface.RecentStickers = slices.Clone(s.snap.Interface.RecentStickers)
	out.Interface.EmojiVariants = maps.Clone(s.snap.Interface.EmojiVariants)
	return out
}

func ptr[T any](v T) *T {
	return &v
}

func (s *Store) touch() {
	s.mutations++
}

func (s *Store) AddApplicationSettings(serialized []byte) {
	s.touch()
	s.snap.App.SerializedBlobs = append(s.snap.App.SerializedBlobs, base64.StdEncoding.EncodeToString(serialized))
}

func (s *Store) SetSoundNotify(enabled bool) {
	s.touch()
	s.snap.App.SoundNotify = ptr(enabled)
}

func (s *Store) SetFlashBounceNotify(enabled bool) {
	s.touch()
	s.snap.App.FlashBounceNotify = ptr(enabled)
}

func (s *Store) SetDesktopNotify(enabled bool) {
	s.touch()
	s.snap.App.DesktopNotify = ptr(enabled)
}

func (s *Store) SetNativeNotifications(enabled bool) {
	s.touch()
	s.snap.App.NativeNotifications = ptr(enabled)
}

func (s *Store) SetNotificationsCount(count int) {
	s.touch()
	s.snap.App.NotificationsCount = ptr(count)
}

func (s *Store) SetNotificationsCorner(corner ScreenCorner) {
	s.touch()
	s.snap.App.NotificationsCorner = ptr(corner)
}

func (s *Store) SetNotifyView(view NotifyView) {
	s.touch()
	s.snap.App.NotifyView = ptr(view)
}

func (s *Store) SetIncludeMutedCounter(enabled bool) {
	s.touch()
	s.snap.App.IncludeMutedCounter = ptr(enabled)
}

func (s *Store) SetModerateModeEnabled(enabled bool) {
	s.touch()
	s.snap.App.ModerateModeEnabled = ptr(enabled)
}

func (s *Store) SetDialogsWidthRatio(ratio float64) {
	s.touch()
	s.snap.App.DialogsWidthRatio = ptr(ratio)
}

func (s *Store) SetLastSeenWarningSeen(seen bool) {
	s.touch()
	s.snap.App.LastSeenWarningSeen = ptr(seen)
}

func (s *Store) SetSendSubmitWay(way SendSubmitWay) {
	s.touch()
	s.snap.App.SendSubmitWay = ptr(way)
}

func (s *Store) SetAdaptiveForWide(enabled bool) {
	s.touch()
	s.snap.App.AdaptiveForWide = ptr(enabled)
}

func (s *Store) SetAutoLock(seconds int32) {
	s.touch()
	s.snap.App.AutoLock = ptr(seconds)
}

func (s *Store) SetReplaceEmoji(enabled bool) {
	s.touch()
	s.snap.App.ReplaceEmoji = ptr(enabled)
}

func (s *Store) SetSuggestEmoji(enabled bool) {
	s.touch()
	s.snap.App.SuggestEmoji = ptr(enabled)
}

func (s *Store) SetSuggestStickersByEmoji(enabled bool) {
	s.touch()
	s.snap.App.SuggestStickersByEmoji = ptr(enabled)
}

func (s *Store) SetAskDownloadPath(enabled bool) {
	s.touch()
	s.snap.App.AskDownloadPath = ptr(enabled)
}

func (s *Store) SetDownloadPath(path string, bookmark []byte) {
	s.touch()
	s.snap.App.DownloadPath = ptr(path)
	s.snap.App.DownloadPathBookmark = base64.StdEncoding.EncodeToString(bookmark)
}

func (s *Store) SetSendFilesWay(way SendFilesWay) {
	s.touch()
	s.snap.App.SendFilesWay = ptr(way)
}

func (s *Store) SetSongVolume(volume float64) {
	s.touch()
	s.snap.App.SongVolume = ptr(volume)
}

func (s *Store) SetVideoVolume(volume float64) {
	s.touch()
	s.snap.App.VideoVolume = ptr(volume)
}

func (s *Store) SetVoiceMsgPlaybackDoubled(doubled bool) {
	s.touch()
	s.snap.App.VoicePlaybackDoubled = ptr(doubled)
}

func (s *Store) SetCallSettings(settings CallSettings) {
	s.touch()
	s.snap.App.Call = ptr(settings)
}

func (s *Store) AddSessionSettings(serialized []byte) {
	s.touch()
	s.snap.Session.SerializedBlobs = append(s.snap.Session.SerializedBlobs, base64.StdEncoding.EncodeToString(serialized))
}

// AutoDownloadKey returns the Snapshot key of one auto-download limit.
func AutoDownloadKey(source AutoDownloadSource, kind AutoDownloadType) string {
	return source.String() + "." + kind.String()
}

func (s *Store) SetAutoDownloadBytesLimit(source AutoDownloadSource, kind AutoDownloadType, limit int64) {
	s.touch()
	if s.snap.Session.AutoDownloadLimits == nil {
		s.snap.Session.AutoDownloadLimits = make(map[string]int64)
	}
	s.snap.Session.AutoDownloadLimits[AutoDownloadKey(source, kind)] = limit
}

func (s *Store) SetDialogsFiltersEnabled(enabled bool) {
	s.touch()
	s.snap.Session.DialogsFiltersEnabled = ptr(enabled)
}

func (s *Store) SetHiddenPinnedMessageID(peerID uint64, messageID int32) {
	s.touch()
	if s.snap.Session.HiddenPinnedMessages == nil {
		s.snap.Session.HiddenPinnedMessages = make(map[string]int32)
	}
	s.snap.Session.HiddenPinnedMessages[strconv.FormatUint(peerID, 10)] = messageID
}

func (s *Store) SetProxiesList(list []mtp.ProxyData) {
	s.touch()
	s.snap.Proxy.List = slices.Clone(list)
}

func (s *Store) SetSelectedProxy(proxy mtp.ProxyData) {
	s.touch()
	s.snap.Proxy.Selected = ptr(proxy)
}

func (s *Store) SetProxySettings(settings mtp.ProxySettings) {
	s.touch()
	s.snap.Proxy.Settings = ptr(settings)
}

func (s *Store) SetUseProxyForCalls(enabled bool) {
	s.touch()
	s.snap.Proxy.UseForCalls = ptr(enabled)
}

func (s *Store) SetTryIPv6(enabled bool) {
	s.touch()
	s.snap.Proxy.TryIPv6 = ptr(enabled)
}

func (s *Store) SetAutoStart(enabled bool) {
	s.touch()
	s.snap.Interface.AutoStart = ptr(enabled)
}

func (s *Store) SetStartMinimized(enabled bool) {
	s.touch()
	s.snap.Interface.StartMinimized = ptr(enabled)
}

func (s *Store) SetSendToMenu(enabled bool) {
	s.touch()
	s.snap.Interface.SendToMenu = ptr(enabled)
}

func (s *Store) SetUseExternalVideoPlayer(enabled bool) {
	s.touch()
	s.snap.Interface.UseExternalVideoPlayer = ptr(enabled)
}

func (s *Store) SetAnimationsDisabled(disabled bool) {
	s.touch()
	s.snap.Interface.AnimationsDisabled = ptr(disabled)
}

func (s *Store) SetWorkMode(mode WorkMode) {
	s.touch()
	s.snap.Interface.WorkMode = ptr(mode)
}

func (s *Store) SetSeenTrayTooltip(seen bool) {
	s.touch()
	s.snap.Interface.SeenTrayTooltip = ptr(seen)
}

func (s *Store) SetAutoUpdate(enabled bool) {
	s.touch()
	s.snap.Interface.AutoUpdate = ptr(enabled)
}

func (s *Store) SetLastUpdateCheck(unixtime int32) {
	s.touch()
	s.snap.Interface.LastUpdateCheck = ptr(unixtime)
}

func (s *Store) ConfigScale() int {
	return s.snap.Interface.ConfigScale
}

func (s *Store) SetConfigScale(scale int) {
	s.touch()
	s.snap.Interface.ConfigScale = scale
}

func (s *Store) SetWindowPosition(position WindowPosition) {
	s.touch()
	s.snap.Interface.WindowPosition = ptr(position)
}

func (s *Store) NightMode() bool {
	return s.snap.Interface.NightMode
}

func (s *Store) SetNightMode(enabled bool) {
	s.touch()
	s.snap.Interface.NightMode = enabled
}

func (s *Store) SetRecentEmojiPreload(list []RecentEmoji) {
	s.touch()
	s.snap.Interface.RecentEmoji = slices.Clone(list)
}

func (s *Store) SetRecentStickersPreload(list []RecentSticker) {
	s.touch()
	s.snap.Interface.RecentStickers = slices.Clone(list)
}

func (s *Store) SetEmojiVariants(variants map[string]int) {
	s.touch()
	s.snap.Interface.EmojiVariants = maps.Clone(variants)
}

func (s *Store) SetDialogLastPath(path string) {
	s.touch()
	s.snap.Interface.DialogLastPath = ptr(path)
}

var _ Sink = (*Store)(nil)
