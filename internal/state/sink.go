package state

import "github.com/PolarWolf314/tdmigrate/internal/mtp"

// ApplicationSink receives application-wide settings.
type ApplicationSink interface {
	AddApplicationSettings(serialized []byte)
	SetSoundNotify(enabled bool)
	SetFlashBounceNotify(enabled bool)
	SetDesktopNotify(enabled bool)
	SetNativeNotifications(enabled bool)
	SetNotificationsCount(count int)
	SetNotificationsCorner(corner ScreenCorner)
	SetNotifyView(view NotifyView)
	SetIncludeMutedCounter(enabled bool)
	SetModerateModeEnabled(enabled bool)
	SetDialogsWidthRatio(ratio float64)
	SetLastSeenWarningSeen(seen bool)
	SetSendSubmitWay(way SendSubmitWay)
	SetAdaptiveForWide(enabled bool)
	SetAutoLock(seconds int32)
	SetReplaceEmoji(enabled bool)
	SetSuggestEmoji(enabled bool)
	SetSuggestStickersByEmoji(enabled bool)
	SetAskDownloadPath(enabled bool)
	SetDownloadPath(path string, bookmark []byte)
	SetSendFilesWay(way SendFilesWay)
	SetSongVolume(volume float64)
	SetVideoVolume(volume float64)
	SetVoiceMsgPlaybackDoubled(doubled bool)
	SetCallSettings(settings CallSettings)
}

// SessionSink receives settings scoped to the signed-in account.
type SessionSink interface {
	AddSessionSettings(serialized []byte)
	SetAutoDownloadBytesLimit(source AutoDownloadSource, kind AutoDownloadType, limit int64)
	SetDialogsFiltersEnabled(enabled bool)
	SetHiddenPinnedMessageID(peerID uint64, messageID int32)
}

// ProxySink receives connection settings.
type ProxySink interface {
	SetProxiesList(list []mtp.ProxyData)
	SetSelectedProxy(proxy mtp.ProxyData)
	SetProxySettings(settings mtp.ProxySettings)
	SetUseProxyForCalls(enabled bool)
	SetTryIPv6(enabled bool)
}

// InterfaceSink receives process-wide interface and start-up state.
// NightMode and ConfigScale are the only values a decoder reads back.
type InterfaceSink interface {
	SetAutoStart(enabled bool)
	SetStartMinimized(enabled bool)
	SetSendToMenu(enabled bool)
	SetUseExternalVideoPlayer(enabled bool)
	SetAnimationsDisabled(disabled bool)
	SetWorkMode(mode WorkMode)
	SetSeenTrayTooltip(seen bool)
	SetAutoUpdate(enabled bool)
	SetLastUpdateCheck(unixtime int32)
	ConfigScale() int
	SetConfigScale(scale int)
	SetWindowPosition(position WindowPosition)
	NightMode() bool
	SetNightMode(enabled bool)
	SetRecentEmojiPreload(list []RecentEmoji)
	SetRecentStickersPreload(list []RecentSticker)
	SetEmojiVariants(variants map[string]int)
	SetDialogLastPath(path string)
}

// Sink is the externally owned settings store that decoded records are
// applied to. Callers must not share one Sink between concurrent runs.
type Sink interface {
	ApplicationSink
	SessionSink
	ProxySink
	InterfaceSink
}
