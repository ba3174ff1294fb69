package scheme

import (
	"github.com/PolarWolf314/tdmigrate/internal/emoji"
	"github.com/PolarWolf314/tdmigrate/internal/mtp"
	"github.com/PolarWolf314/tdmigrate/internal/qstream"
	"github.com/PolarWolf314/tdmigrate/internal/state"
)

// KeyRecord carries a data-center authorization key.
type KeyRecord struct {
	DcID int32                 `toml:"dc_id" json:"dc_id"`
	Data [mtp.AuthKeySize]byte `toml:"data" json:"data"`
}

func (r *KeyRecord) Tag() Tag { return TagKey }

func (r *KeyRecord) decode(c *qstream.Cursor) {
	r.DcID = c.ReadInt32()
	copy(r.Data[:], c.ReadRaw(mtp.AuthKeySize))
}

func (r *KeyRecord) encode(w *qstream.Writer) {
	w.WriteInt32(r.DcID)
	w.WriteRaw(r.Data[:])
}

func (r *KeyRecord) apply(t *Target) {
	t.Context.LegacyKeys = append(t.Context.LegacyKeys, mtp.AuthKey{DcID: r.DcID, Data: r.Data})
}

// UserRecord names the signed-in user and their main data center.
type UserRecord struct {
	UserID int32  `toml:"user_id" json:"user_id"`
	DcID   uint32 `toml:"dc_id" json:"dc_id"`
}

func (r *UserRecord) Tag() Tag { return TagUser }

func (r *UserRecord) decode(c *qstream.Cursor) {
	r.UserID = c.ReadInt32()
	r.DcID = c.ReadUint32()
}

func (r *UserRecord) encode(w *qstream.Writer) {
	w.WriteInt32(r.UserID)
	w.WriteUint32(r.DcID)
}

func (r *UserRecord) apply(t *Target) {
	t.Context.LegacyMainDcID = int32(r.DcID)
	t.Context.LegacyUserID = r.UserID
}

// DcOptionOldOldRecord is the first single-endpoint layout. Host is read
// and ignored.
type DcOptionOldOldRecord struct {
	DcID uint32 `toml:"dc_id" json:"dc_id"`
	Host string `toml:"host" json:"host"`
	IP   string `toml:"ip" json:"ip"`
	Port uint32 `toml:"port" json:"port"`
}

func (r *DcOptionOldOldRecord) Tag() Tag { return TagDcOptionOldOld }

func (r *DcOptionOldOldRecord) decode(c *qstream.Cursor) {
	r.DcID = c.ReadUint32()
	r.Host = c.ReadString()
	r.IP = c.ReadString()
	r.Port = c.ReadUint32()
}

func (r *DcOptionOldOldRecord) encode(w *qstream.Writer) {
	w.WriteUint32(r.DcID)
	w.WriteString(r.Host)
	w.WriteString(r.IP)
	w.WriteUint32(r.Port)
}

func (r *DcOptionOldOldRecord) apply(t *Target) {
	t.Context.LegacyDcOptions.AddOne(int32(r.DcID), 0, r.IP, int32(r.Port), nil)
}

// DcOptionOldRecord is the single-endpoint layout with flags.
type DcOptionOldRecord struct {
	DcIDWithShift uint32 `toml:"dc_id_with_shift" json:"dc_id_with_shift"`
	Flags         int32  `toml:"flags" json:"flags"`
	IP            string `toml:"ip" json:"ip"`
	Port          uint32 `toml:"port" json:"port"`
}

func (r *DcOptionOldRecord) Tag() Tag { return TagDcOptionOld }

func (r *DcOptionOldRecord) decode(c *qstream.Cursor) {
	r.DcIDWithShift = c.ReadUint32()
	r.Flags = c.ReadInt32()
	r.IP = c.ReadString()
	r.Port = c.ReadUint32()
}

func (r *DcOptionOldRecord) encode(w *qstream.Writer) {
	w.WriteUint32(r.DcIDWithShift)
	w.WriteInt32(r.Flags)
	w.WriteString(r.IP)
	w.WriteUint32(r.Port)
}

func (r *DcOptionOldRecord) apply(t *Target) {
	t.Context.LegacyDcOptions.AddOne(int32(r.DcIDWithShift), r.Flags, r.IP, int32(r.Port), nil)
}

// WindowPositionRecord is the saved window geometry.
type WindowPositionRecord struct {
	state.WindowPosition
}

func (r *WindowPositionRecord) Tag() Tag { return TagWindowPosition }

func (r *WindowPositionRecord) decode(c *qstream.Cursor) {
	r.X = c.ReadInt32()
	r.Y = c.ReadInt32()
	r.W = c.ReadInt32()
	r.H = c.ReadInt32()
	r.MonitorChecksum = c.ReadInt32()
	r.Maximized = c.ReadBool()
}

func (r *WindowPositionRecord) encode(w *qstream.Writer) {
	w.WriteInt32(r.X)
	w.WriteInt32(r.Y)
	w.WriteInt32(r.W)
	w.WriteInt32(r.H)
	w.WriteInt32(r.MonitorChecksum)
	w.WriteBool(r.Maximized)
}

func (r *WindowPositionRecord) apply(t *Target) {
	t.Sink.SetWindowPosition(r.WindowPosition)
}

// MutedPeersRecord is a deprecated list of muted peer ids.
type MutedPeersRecord struct {
	Peers []state.ID64 `toml:"peers" json:"peers"`
}

func (r *MutedPeersRecord) Tag() Tag { return TagMutedPeersOld }

func (r *MutedPeersRecord) decode(c *qstream.Cursor) {
	r.Peers = qstream.ReadList(c, 8, readID64)
}

func (r *MutedPeersRecord) encode(w *qstream.Writer) {
	qstream.WriteList(w, r.Peers, writeID64)
}

func (r *MutedPeersRecord) apply(*Target) {}

// OldOldEmojiEntry is one recent emoji under a 32-bit key.
type OldOldEmojiEntry struct {
	Key   uint32 `toml:"key" json:"key"`
	Count uint16 `toml:"count" json:"count"`
}

// RecentEmojiOldOldRecord is the recent emoji list with 32-bit keys.
type RecentEmojiOldOldRecord struct {
	Items []OldOldEmojiEntry `toml:"items" json:"items"`
}

func (r *RecentEmojiOldOldRecord) Tag() Tag { return TagRecentEmojiOldOld }

func (r *RecentEmojiOldOldRecord) decode(c *qstream.Cursor) {
	r.Items = qstream.ReadList(c, 6, func(c *qstream.Cursor) OldOldEmojiEntry {
		return OldOldEmojiEntry{Key: c.ReadUint32(), Count: c.ReadUint16()}
	})
}

func (r *RecentEmojiOldOldRecord) encode(w *qstream.Writer) {
	qstream.WriteList(w, r.Items, func(w *qstream.Writer, e OldOldEmojiEntry) {
		w.WriteUint32(e.Key)
		w.WriteUint16(e.Count)
	})
}

func (r *RecentEmojiOldOldRecord) apply(t *Target) {
	if len(r.Items) == 0 {
		return
	}
	preload := make([]state.RecentEmoji, 0, len(r.Items))
	for _, item := range r.Items {
		id := emoji.IDFromOldKey(emoji.RemapOldOldKey(uint64(item.Key)))
		if id != "" {
			preload = append(preload, state.RecentEmoji{ID: id, Count: item.Count})
		}
	}
	t.Sink.SetRecentEmojiPreload(preload)
}

// OldEmojiEntry is one recent emoji under a 64-bit key.
type OldEmojiEntry struct {
	Key   state.ID64 `toml:"key" json:"key"`
	Count uint16     `toml:"count" json:"count"`
}

// RecentEmojiOldRecord is the recent emoji list with 64-bit keys.
type RecentEmojiOldRecord struct {
	Items []OldEmojiEntry `toml:"items" json:"items"`
}

func (r *RecentEmojiOldRecord) Tag() Tag { return TagRecentEmojiOld }

func (r *RecentEmojiOldRecord) decode(c *qstream.Cursor) {
	r.Items = qstream.ReadList(c, 10, func(c *qstream.Cursor) OldEmojiEntry {
		return OldEmojiEntry{Key: state.ID64(c.ReadUint64()), Count: c.ReadUint16()}
	})
}

func (r *RecentEmojiOldRecord) encode(w *qstream.Writer) {
	qstream.WriteList(w, r.Items, func(w *qstream.Writer, e OldEmojiEntry) {
		w.WriteUint64(uint64(e.Key))
		w.WriteUint16(e.Count)
	})
}

func (r *RecentEmojiOldRecord) apply(t *Target) {
	if len(r.Items) == 0 {
		return
	}
	preload := make([]state.RecentEmoji, 0, len(r.Items))
	for _, item := range r.Items {
		if id := emoji.IDFromOldKey(uint64(item.Key)); id != "" {
			preload = append(preload, state.RecentEmoji{ID: id, Count: item.Count})
		}
	}
	t.Sink.SetRecentEmojiPreload(preload)
}

// RecentEmojiRecord is the recent emoji list keyed by emoji id.
type RecentEmojiRecord struct {
	Items []state.RecentEmoji `toml:"items" json:"items"`
}

func (r *RecentEmojiRecord) Tag() Tag { return TagRecentEmoji }

func (r *RecentEmojiRecord) decode(c *qstream.Cursor) {
	r.Items = qstream.ReadList(c, 6, func(c *qstream.Cursor) state.RecentEmoji {
		return state.RecentEmoji{ID: c.ReadString(), Count: c.ReadUint16()}
	})
}

func (r *RecentEmojiRecord) encode(w *qstream.Writer) {
	qstream.WriteList(w, r.Items, func(w *qstream.Writer, e state.RecentEmoji) {
		w.WriteString(e.ID)
		w.WriteUint16(e.Count)
	})
}

func (r *RecentEmojiRecord) apply(t *Target) {
	t.Sink.SetRecentEmojiPreload(r.Items)
}

// RecentStickersRecord is the recent stickers list.
type RecentStickersRecord struct {
	Items []state.RecentSticker `toml:"items" json:"items"`
}

func (r *RecentStickersRecord) Tag() Tag { return TagRecentStickers }

func (r *RecentStickersRecord) decode(c *qstream.Cursor) {
	r.Items = qstream.ReadList(c, 10, func(c *qstream.Cursor) state.RecentSticker {
		return state.RecentSticker{DocumentID: state.ID64(c.ReadUint64()), Count: c.ReadUint16()}
	})
}

func (r *RecentStickersRecord) encode(w *qstream.Writer) {
	qstream.WriteList(w, r.Items, func(w *qstream.Writer, e state.RecentSticker) {
		w.WriteUint64(uint64(e.DocumentID))
		w.WriteUint16(e.Count)
	})
}

func (r *RecentStickersRecord) apply(t *Target) {
	t.Sink.SetRecentStickersPreload(r.Items)
}

// OldEmojiVariant maps a legacy emoji key to a legacy variant key.
type OldEmojiVariant struct {
	Key     uint32     `toml:"key" json:"key"`
	Variant state.ID64 `toml:"variant" json:"variant"`
}

// EmojiVariantsOldRecord is the color variant map with legacy keys. Pairs
// are kept in stream order.
type EmojiVariantsOldRecord struct {
	Variants []OldEmojiVariant `toml:"variants" json:"variants"`
}

func (r *EmojiVariantsOldRecord) Tag() Tag { return TagEmojiVariantsOld }

func (r *EmojiVariantsOldRecord) decode(c *qstream.Cursor) {
	r.Variants = qstream.ReadList(c, 12, func(c *qstream.Cursor) OldEmojiVariant {
		return OldEmojiVariant{Key: c.ReadUint32(), Variant: state.ID64(c.ReadUint64())}
	})
}

func (r *EmojiVariantsOldRecord) encode(w *qstream.Writer) {
	qstream.WriteList(w, r.Variants, func(w *qstream.Writer, v OldEmojiVariant) {
		w.WriteUint32(v.Key)
		w.WriteUint64(uint64(v.Variant))
	})
}

func (r *EmojiVariantsOldRecord) apply(t *Target) {
	variants := make(map[string]int, len(r.Variants))
	for _, v := range r.Variants {
		id := emoji.IDFromOldKey(uint64(v.Key))
		if id == "" {
			continue
		}
		if index := emoji.ColorIndexFromOldKey(uint64(v.Variant)); index >= 0 {
			variants[id] = index
		}
	}
	t.Sink.SetEmojiVariants(variants)
}

// EmojiVariantsRecord is the color variant map keyed by emoji id.
type EmojiVariantsRecord struct {
	Variants map[string]int32 `toml:"variants" json:"variants"`
}

func (r *EmojiVariantsRecord) Tag() Tag { return TagEmojiVariants }

func (r *EmojiVariantsRecord) decode(c *qstream.Cursor) {
	r.Variants = qstream.ReadMap(c, 8, (*qstream.Cursor).ReadString, (*qstream.Cursor).ReadInt32)
}

func (r *EmojiVariantsRecord) encode(w *qstream.Writer) {
	qstream.WriteMap(w, r.Variants, (*qstream.Writer).WriteString, (*qstream.Writer).WriteInt32)
}

func (r *EmojiVariantsRecord) apply(t *Target) {
	variants := make(map[string]int, len(r.Variants))
	for id, index := range r.Variants {
		variants[id] = int(index)
	}
	t.Sink.SetEmojiVariants(variants)
}

// HiddenPinnedMessage is one hidden pinned message of a peer.
type HiddenPinnedMessage struct {
	PeerID    state.ID64 `toml:"peer_id" json:"peer_id"`
	MessageID int32      `toml:"message_id" json:"message_id"`
}

// HiddenPinnedMessagesRecord maps peers to the pinned message the user
// hid. Pairs are kept in stream order.
type HiddenPinnedMessagesRecord struct {
	Messages []HiddenPinnedMessage `toml:"messages" json:"messages"`
}

func (r *HiddenPinnedMessagesRecord) Tag() Tag { return TagHiddenPinnedMessagesOld }

func (r *HiddenPinnedMessagesRecord) decode(c *qstream.Cursor) {
	r.Messages = qstream.ReadList(c, 12, func(c *qstream.Cursor) HiddenPinnedMessage {
		return HiddenPinnedMessage{PeerID: state.ID64(c.ReadUint64()), MessageID: c.ReadInt32()}
	})
}

func (r *HiddenPinnedMessagesRecord) encode(w *qstream.Writer) {
	qstream.WriteList(w, r.Messages, func(w *qstream.Writer, m HiddenPinnedMessage) {
		w.WriteUint64(uint64(m.PeerID))
		w.WriteInt32(m.MessageID)
	})
}

func (r *HiddenPinnedMessagesRecord) apply(t *Target) {
	for _, m := range r.Messages {
		t.Sink.SetHiddenPinnedMessageID(uint64(m.PeerID), m.MessageID)
	}
}

// DownloadPathOldRecord is the download folder with its sandbox bookmark.
type DownloadPathOldRecord struct {
	Path     string `toml:"path" json:"path"`
	Bookmark Blob   `toml:"bookmark" json:"bookmark"`
}

func (r *DownloadPathOldRecord) Tag() Tag { return TagDownloadPathOld }

func (r *DownloadPathOldRecord) decode(c *qstream.Cursor) {
	r.Path = c.ReadString()
	r.Bookmark = c.ReadBytes()
}

func (r *DownloadPathOldRecord) encode(w *qstream.Writer) {
	w.WriteString(r.Path)
	w.WriteBytes(r.Bookmark)
}

func (r *DownloadPathOldRecord) apply(t *Target) {
	t.Sink.SetDownloadPath(normalizeDownloadPath(r.Path), r.Bookmark)
}

// AutoDownloadOldRecord holds the legacy per-media auto-download masks.
type AutoDownloadOldRecord struct {
	Photo int32 `toml:"photo" json:"photo"`
	Audio int32 `toml:"audio" json:"audio"`
	GIF   int32 `toml:"gif" json:"gif"`
}

func (r *AutoDownloadOldRecord) Tag() Tag { return TagAutoDownloadOld }

func (r *AutoDownloadOldRecord) decode(c *qstream.Cursor) {
	r.Photo = c.ReadInt32()
	r.Audio = c.ReadInt32()
	r.GIF = c.ReadInt32()
}

func (r *AutoDownloadOldRecord) encode(w *qstream.Writer) {
	w.WriteInt32(r.Photo)
	w.WriteInt32(r.Audio)
	w.WriteInt32(r.GIF)
}

// Legacy auto-download mask bits.
const (
	autoDownloadNoPrivate int32 = 0x01
	autoDownloadNoGroups  int32 = 0x02
)

func (r *AutoDownloadOldRecord) apply(t *Target) {
	set := func(kind state.AutoDownloadType, mask int32) {
		if mask&autoDownloadNoPrivate != 0 {
			t.Sink.SetAutoDownloadBytesLimit(state.SourceUser, kind, 0)
		}
		if mask&autoDownloadNoGroups != 0 {
			t.Sink.SetAutoDownloadBytesLimit(state.SourceGroup, kind, 0)
			t.Sink.SetAutoDownloadBytesLimit(state.SourceChannel, kind, 0)
		}
	}
	set(state.TypePhoto, r.Photo)
	set(state.TypeVoiceMessage, r.Audio)
	set(state.TypeAutoPlayGIF, r.GIF)
	set(state.TypeAutoPlayVideoMessage, r.GIF)
}

// ThemeKeyRecord holds the day and night theme keys and the night mode
// flag.
type ThemeKeyRecord struct {
	Day       state.ID64 `toml:"day" json:"day"`
	Night     state.ID64 `toml:"night" json:"night"`
	NightMode uint32     `toml:"night_mode" json:"night_mode"`
}

func (r *ThemeKeyRecord) Tag() Tag { return TagThemeKey }

func (r *ThemeKeyRecord) decode(c *qstream.Cursor) {
	r.Day = state.ID64(c.ReadUint64())
	r.Night = state.ID64(c.ReadUint64())
	r.NightMode = c.ReadUint32()
}

func (r *ThemeKeyRecord) encode(w *qstream.Writer) {
	w.WriteUint64(uint64(r.Day))
	w.WriteUint64(uint64(r.Night))
	w.WriteUint32(r.NightMode)
}

func (r *ThemeKeyRecord) apply(t *Target) {
	t.Context.ThemeKeyDay = uint64(r.Day)
	t.Context.ThemeKeyNight = uint64(r.Night)
	t.Sink.SetNightMode(r.NightMode == 1)
}

// BackgroundKeyRecord holds the day and night background keys.
type BackgroundKeyRecord struct {
	Day   state.ID64 `toml:"day" json:"day"`
	Night state.ID64 `toml:"night" json:"night"`
}

func (r *BackgroundKeyRecord) Tag() Tag { return TagBackgroundKey }

func (r *BackgroundKeyRecord) decode(c *qstream.Cursor) {
	r.Day = state.ID64(c.ReadUint64())
	r.Night = state.ID64(c.ReadUint64())
}

func (r *BackgroundKeyRecord) encode(w *qstream.Writer) {
	w.WriteUint64(uint64(r.Day))
	w.WriteUint64(uint64(r.Night))
}

func (r *BackgroundKeyRecord) apply(t *Target) {
	t.Context.BackgroundKeyDay = uint64(r.Day)
	t.Context.BackgroundKeyNight = uint64(r.Night)
	t.Context.BackgroundKeysRead = true
}

func readID64(c *qstream.Cursor) state.ID64 {
	return state.ID64(c.ReadUint64())
}

func writeID64(w *qstream.Writer, id state.ID64) {
	w.WriteUint64(uint64(id))
}
