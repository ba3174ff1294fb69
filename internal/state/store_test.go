package state

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/PolarWolf314/tdmigrate/internal/mtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorePresetsAreNotMutations(t *testing.T) {
	store := NewStore(WithConfigScale(150), WithNightMode(true))

	assert.Equal(t, 150, store.ConfigScale())
	assert.True(t, store.NightMode())
	assert.Equal(t, 0, store.Mutations())
}

func TestStoreCountsEverySetter(t *testing.T) {
	store := NewStore()

	store.SetAutoStart(true)
	store.SetWorkMode(WorkModeTrayOnly)
	store.SetAutoDownloadBytesLimit(SourceGroup, TypePhoto, 0)
	store.SetHiddenPinnedMessageID(42, 7)

	assert.Equal(t, 4, store.Mutations())

	snap := store.Snapshot()
	require.NotNil(t, snap.Interface.AutoStart)
	assert.True(t, *snap.Interface.AutoStart)
	assert.Equal(t, WorkModeTrayOnly, *snap.Interface.WorkMode)
	assert.Equal(t, int64(0), snap.Session.AutoDownloadLimits["group.photo"])
	assert.Equal(t, int32(7), snap.Session.HiddenPinnedMessages["42"])
}

func TestSnapshotIsIndependentOfStore(t *testing.T) {
	store := NewStore()
	store.SetEmojiVariants(map[string]int{"👍": 2})
	store.SetProxiesList([]mtp.ProxyData{{Type: mtp.ProxySocks5, Host: "a", Port: 1}})

	snap := store.Snapshot()
	snap.Interface.EmojiVariants["👍"] = 5
	snap.Proxy.List[0].Host = "changed"

	again := store.Snapshot()
	assert.Equal(t, 2, again.Interface.EmojiVariants["👍"])
	assert.Equal(t, "a", again.Proxy.List[0].Host)
}

func TestSnapshotEncodesAsTOMLAndJSON(t *testing.T) {
	store := NewStore()
	store.SetRecentStickersPreload([]RecentSticker{{DocumentID: ID64(0xFFFFFFFFFFFFFFFF), Count: 3}})
	store.SetDownloadPath("/home/user/Downloads/", []byte{1, 2})
	store.SetSongVolume(0.5)

	var buf bytes.Buffer
	require.NoError(t, toml.NewEncoder(&buf).Encode(store.Snapshot()))
	assert.Contains(t, buf.String(), `document_id = "0xffffffffffffffff"`)

	raw, err := json.Marshal(store.Snapshot())
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, ID64(0xFFFFFFFFFFFFFFFF), decoded.Interface.RecentStickers[0].DocumentID)
	assert.Equal(t, "/home/user/Downloads/", *decoded.App.DownloadPath)
}

func TestCheckScale(t *testing.T) {
	assert.Equal(t, ScaleAuto, CheckScale(ScaleAuto))
	assert.Equal(t, ScaleMin, CheckScale(10))
	assert.Equal(t, ScaleMax, CheckScale(1000))
	assert.Equal(t, 125, CheckScale(125))
}

func TestSendSubmitWayValid(t *testing.T) {
	assert.True(t, SubmitEnter.Valid())
	assert.True(t, SubmitCtrlEnter.Valid())
	assert.False(t, SendSubmitWay(2).Valid())
	assert.False(t, SendSubmitWay(-1).Valid())
}
