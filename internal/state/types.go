package state

import (
	"fmt"
	"strconv"
	"strings"
)

// ScaleAuto means the interface scale follows the system.
const ScaleAuto = 0

// Interface scale bounds in percent.
const (
	ScaleMin = 50
	ScaleMax = 300
)

// CheckScale clamps a stored scale percentage into the supported range.
func CheckScale(scale int) int {
	if scale == ScaleAuto {
		return ScaleAuto
	}
	return max(ScaleMin, min(scale, ScaleMax))
}

// WorkMode selects where the application lives while running.
type WorkMode int32

const (
	WorkModeWindowAndTray WorkMode = iota
	WorkModeTrayOnly
	WorkModeWindowOnly
)

func (m WorkMode) String() string {
	switch m {
	case WorkModeTrayOnly:
		return "tray_only"
	case WorkModeWindowOnly:
		return "window_only"
	default:
		return "window_and_tray"
	}
}

// NotifyView selects how much of a message a notification shows.
type NotifyView int32

const (
	NotifyShowPreview NotifyView = iota
	NotifyShowName
	NotifyShowNothing
)

// ScreenCorner is the corner notifications stack from.
type ScreenCorner int32

const (
	CornerTopLeft ScreenCorner = iota
	CornerTopRight
	CornerBottomRight
	CornerBottomLeft
)

// SendSubmitWay is the key combination that sends a message.
type SendSubmitWay int32

const (
	SubmitEnter SendSubmitWay = iota
	SubmitCtrlEnter
)

// Valid reports whether w is one of the two legal send modes.
func (w SendSubmitWay) Valid() bool {
	return w == SubmitEnter || w == SubmitCtrlEnter
}

// SendFilesWay selects how pasted images are sent.
type SendFilesWay int32

const (
	SendFilesAlbum SendFilesWay = iota
	SendFilesFiles
)

// AutoDownloadSource is the kind of chat a media file arrives from.
type AutoDownloadSource int32

const (
	SourceUser AutoDownloadSource = iota
	SourceGroup
	SourceChannel
)

func (s AutoDownloadSource) String() string {
	switch s {
	case SourceGroup:
		return "group"
	case SourceChannel:
		return "channel"
	default:
		return "user"
	}
}

// AutoDownloadType is the kind of media an auto-download limit covers.
type AutoDownloadType int32

const (
	TypePhoto AutoDownloadType = iota
	TypeAutoPlayVideo
	TypeVoiceMessage
	TypeAutoPlayVideoMessage
	TypeAutoPlayGIF
)

func (t AutoDownloadType) String() string {
	switch t {
	case TypeAutoPlayVideo:
		return "autoplay_video"
	case TypeVoiceMessage:
		return "voice_message"
	case TypeAutoPlayVideoMessage:
		return "autoplay_video_message"
	case TypeAutoPlayGIF:
		return "autoplay_gif"
	default:
		return "photo"
	}
}

// WindowPosition is the saved main window geometry.
type WindowPosition struct {
	X               int32 `toml:"x" json:"x"`
	Y               int32 `toml:"y" json:"y"`
	W               int32 `toml:"w" json:"w"`
	H               int32 `toml:"h" json:"h"`
	MonitorChecksum int32 `toml:"monitor_checksum" json:"monitor_checksum"`
	Maximized       bool  `toml:"maximized" json:"maximized"`
}

// RecentEmoji is one entry of the recent emoji preload list.
type RecentEmoji struct {
	ID    string `toml:"id" json:"id"`
	Count uint16 `toml:"count" json:"count"`
}

// RecentSticker is one entry of the recent stickers preload list.
type RecentSticker struct {
	DocumentID ID64   `toml:"document_id" json:"document_id"`
	Count      uint16 `toml:"count" json:"count"`
}

// CallSettings are the audio device settings of voice calls.
type CallSettings struct {
	OutputDeviceID string `toml:"output_device_id" json:"output_device_id"`
	OutputVolume   int32  `toml:"output_volume" json:"output_volume"`
	InputDeviceID  string `toml:"input_device_id" json:"input_device_id"`
	InputVolume    int32  `toml:"input_volume" json:"input_volume"`
	DuckingEnabled bool   `toml:"ducking_enabled" json:"ducking_enabled"`
}

// ID64 is an opaque 64-bit identifier that encodes as a hex string so that
// values above the signed range survive TOML and JSON.
type ID64 uint64

func (id ID64) String() string {
	return fmt.Sprintf("0x%016x", uint64(id))
}

// MarshalText implements encoding.TextMarshaler.
func (id ID64) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID64) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(strings.TrimPrefix(string(text), "0x"), 16, 64)
	if err != nil {
		return fmt.Errorf("parsing id %q: %w", text, err)
	}
	*id = ID64(v)
	return nil
}
