package scheme

import (
	"github.com/PolarWolf314/tdmigrate/internal/mtp"
	"github.com/PolarWolf314/tdmigrate/internal/qstream"
)

// Legacy connection types.
const (
	ConnectionAuto           int32 = 0
	ConnectionHTTPAuto       int32 = 1
	ConnectionHTTPProxy      int32 = 2
	ConnectionTCPProxy       int32 = 3
	ConnectionProxiesListOld int32 = 4
	ConnectionProxiesList    int32 = 5
)

// proxyTypeShift offsets stored proxy types so they cannot be mistaken for
// a connection type.
const proxyTypeShift = 1024

// minProxyEntrySize is the encoded size of a proxy with empty strings.
const minProxyEntrySize = 5 * 4

// ProxyEntry is one proxy as stored in a connection record.
type ProxyEntry struct {
	Type     int32  `toml:"type" json:"type"`
	Host     string `toml:"host" json:"host"`
	Port     int32  `toml:"port" json:"port"`
	User     string `toml:"user,omitempty" json:"user,omitempty"`
	Password string `toml:"password,omitempty" json:"password,omitempty"`
}

func readProxyEntry(c *qstream.Cursor) ProxyEntry {
	return ProxyEntry{
		Type:     c.ReadInt32(),
		Host:     c.ReadString(),
		Port:     c.ReadInt32(),
		User:     c.ReadString(),
		Password: c.ReadString(),
	}
}

func writeProxyEntry(w *qstream.Writer, e ProxyEntry) {
	w.WriteInt32(e.Type)
	w.WriteString(e.Host)
	w.WriteInt32(e.Port)
	w.WriteString(e.User)
	w.WriteString(e.Password)
}

// Proxy converts the stored entry. Unrecognized types yield a proxy of
// type none, which is never valid.
func (e ProxyEntry) Proxy() mtp.ProxyData {
	proxy := mtp.ProxyData{
		Host:     e.Host,
		Port:     uint32(e.Port),
		User:     e.User,
		Password: e.Password,
	}
	switch e.Type {
	case ConnectionTCPProxy, proxyTypeShift + int32(mtp.ProxySocks5):
		proxy.Type = mtp.ProxySocks5
	case ConnectionHTTPProxy, proxyTypeShift + int32(mtp.ProxyHTTP):
		proxy.Type = mtp.ProxyHTTP
	case proxyTypeShift + int32(mtp.ProxyMtproto):
		proxy.Type = mtp.ProxyMtproto
	default:
		proxy.Type = mtp.ProxyNone
	}
	return proxy
}

// ConnectionTypeOldRecord is the single-proxy layout of old clients.
// Proxy fields are present only for the two proxy connection types.
type ConnectionTypeOldRecord struct {
	ConnectionType int32  `toml:"connection_type" json:"connection_type"`
	Host           string `toml:"host,omitempty" json:"host,omitempty"`
	Port           int32  `toml:"port,omitempty" json:"port,omitempty"`
	User           string `toml:"user,omitempty" json:"user,omitempty"`
	Password       string `toml:"password,omitempty" json:"password,omitempty"`
}

func (r *ConnectionTypeOldRecord) Tag() Tag { return TagConnectionTypeOld }

func (r *ConnectionTypeOldRecord) hasProxy() bool {
	return r.ConnectionType == ConnectionHTTPProxy || r.ConnectionType == ConnectionTCPProxy
}

func (r *ConnectionTypeOldRecord) decode(c *qstream.Cursor) {
	r.ConnectionType = c.ReadInt32()
	if c.Ok() && r.hasProxy() {
		r.Host = c.ReadString()
		r.Port = c.ReadInt32()
		r.User = c.ReadString()
		r.Password = c.ReadString()
	}
}

func (r *ConnectionTypeOldRecord) encode(w *qstream.Writer) {
	w.WriteInt32(r.ConnectionType)
	if r.hasProxy() {
		w.WriteString(r.Host)
		w.WriteInt32(r.Port)
		w.WriteString(r.User)
		w.WriteString(r.Password)
	}
}

func (r *ConnectionTypeOldRecord) apply(t *Target) {
	var proxy mtp.ProxyData
	if r.hasProxy() {
		proxy = mtp.ProxyData{
			Type:     mtp.ProxyHTTP,
			Host:     r.Host,
			Port:     uint32(r.Port),
			User:     r.User,
			Password: r.Password,
		}
		if r.ConnectionType == ConnectionTCPProxy {
			proxy.Type = mtp.ProxySocks5
		}
	}

	if proxy.Valid() {
		t.Sink.SetSelectedProxy(proxy)
		t.Sink.SetProxySettings(mtp.ProxySettingsEnabled)
		t.Sink.SetProxiesList([]mtp.ProxyData{proxy})
	} else {
		t.Sink.SetSelectedProxy(mtp.ProxyData{})
		t.Sink.SetProxySettings(mtp.ProxySettingsSystem)
		t.Sink.SetProxiesList(nil)
	}
}

// ConnectionTypeRecord is the current connection layout: either a proxy
// list or a single proxy, depending on ConnectionType.
type ConnectionTypeRecord struct {
	ConnectionType int32 `toml:"connection_type" json:"connection_type"`

	// List layouts. Count is the stored entry count; a negative count
	// stores no entries.
	Count    int32        `toml:"count,omitempty" json:"count,omitempty"`
	Index    int32        `toml:"index,omitempty" json:"index,omitempty"`
	Settings int32        `toml:"settings,omitempty" json:"settings,omitempty"`
	Calls    int32        `toml:"calls,omitempty" json:"calls,omitempty"`
	Proxies  []ProxyEntry `toml:"proxies,omitempty" json:"proxies,omitempty"`

	// Single proxy layout.
	Proxy ProxyEntry `toml:"proxy,omitempty" json:"proxy,omitempty"`
}

func (r *ConnectionTypeRecord) Tag() Tag { return TagConnectionType }

func (r *ConnectionTypeRecord) isList() bool {
	return r.ConnectionType == ConnectionProxiesListOld || r.ConnectionType == ConnectionProxiesList
}

func (r *ConnectionTypeRecord) decode(c *qstream.Cursor) {
	r.ConnectionType = c.ReadInt32()
	if !c.Ok() {
		return
	}
	if !r.isList() {
		r.Proxy = readProxyEntry(c)
		return
	}

	r.Count = c.ReadInt32()
	r.Index = c.ReadInt32()
	if r.ConnectionType == ConnectionProxiesList {
		r.Settings = c.ReadInt32()
		r.Calls = c.ReadInt32()
	}
	if !c.Ok() || r.Count <= 0 {
		return
	}
	if int64(r.Count)*minProxyEntrySize > int64(c.Remaining()) {
		c.Invalidate(qstream.StatusReadPastEnd)
		return
	}
	r.Proxies = make([]ProxyEntry, 0, r.Count)
	for i := int32(0); i < r.Count && c.Ok(); i++ {
		r.Proxies = append(r.Proxies, readProxyEntry(c))
	}
}

func (r *ConnectionTypeRecord) encode(w *qstream.Writer) {
	w.WriteInt32(r.ConnectionType)
	if !r.isList() {
		writeProxyEntry(w, r.Proxy)
		return
	}

	count := r.Count
	if count >= 0 {
		count = int32(len(r.Proxies))
	}
	w.WriteInt32(count)
	w.WriteInt32(r.Index)
	if r.ConnectionType == ConnectionProxiesList {
		w.WriteInt32(r.Settings)
		w.WriteInt32(r.Calls)
	}
	if count > 0 {
		for _, e := range r.Proxies {
			writeProxyEntry(w, e)
		}
	}
}

func (r *ConnectionTypeRecord) apply(t *Target) {
	if !r.isList() {
		proxy := r.Proxy.Proxy()
		if proxy.Valid() {
			t.Sink.SetProxiesList([]mtp.ProxyData{proxy})
			t.Sink.SetSelectedProxy(proxy)
			if r.ConnectionType == ConnectionTCPProxy || r.ConnectionType == ConnectionHTTPProxy {
				t.Sink.SetProxySettings(mtp.ProxySettingsEnabled)
			} else {
				t.Sink.SetProxySettings(mtp.ProxySettingsSystem)
			}
		} else {
			t.Sink.SetProxiesList(nil)
			t.Sink.SetSelectedProxy(mtp.ProxyData{})
			t.Sink.SetProxySettings(mtp.ProxySettingsSystem)
		}
		return
	}

	resolved := ResolveProxyList(r.ConnectionType == ConnectionProxiesListOld, r.Count, r.Index, r.Settings, r.Calls, r.Proxies)
	t.Sink.SetProxiesList(resolved.List)
	t.Sink.SetSelectedProxy(resolved.Selected)
	t.Sink.SetProxySettings(resolved.Settings)
	t.Sink.SetUseProxyForCalls(resolved.UseForCalls)
}

// ProxyList is the outcome of a stored proxy list.
type ProxyList struct {
	List        []mtp.ProxyData
	Selected    mtp.ProxyData
	Settings    mtp.ProxySettings
	UseForCalls bool
}

// ResolveProxyList turns a stored proxy list into the proxy state.
//
// Invalid entries are dropped. Each dropped entry moves the 1-based
// selected index one step towards zero when the index lies beyond the list
// built so far, in the direction of its sign. In the old layout a negative
// index meant "selected but disabled", and an index whose magnitude
// exceeds count had count folded into it to flag proxy use for calls.
func ResolveProxyList(old bool, count, index, settings, calls int32, entries []ProxyEntry) ProxyList {
	idx := int(index)
	if old && abs(idx) > int(count) {
		calls = 1
		if idx > 0 {
			idx -= int(count)
		} else {
			idx += int(count)
		}
	}

	list := make([]mtp.ProxyData, 0, len(entries))
	for _, e := range entries {
		proxy := e.Proxy()
		switch {
		case proxy.Valid():
			list = append(list, proxy)
		case idx < -len(list):
			idx++
		case idx > len(list):
			idx--
		}
	}

	if old {
		if idx > 0 && idx <= len(list) {
			settings = int32(mtp.ProxySettingsEnabled)
		} else {
			settings = int32(mtp.ProxySettingsSystem)
		}
		idx = abs(idx)
	}

	out := ProxyList{List: list, UseForCalls: calls == 1}
	if idx > 0 && idx <= len(list) {
		out.Selected = list[idx-1]
	}

	switch mtp.ProxySettings(settings) {
	case mtp.ProxySettingsEnabled:
		if out.Selected.Valid() {
			out.Settings = mtp.ProxySettingsEnabled
		} else {
			out.Settings = mtp.ProxySettingsSystem
		}
	case mtp.ProxySettingsDisabled, mtp.ProxySettingsSystem:
		out.Settings = mtp.ProxySettings(settings)
	default:
		out.Settings = mtp.ProxySettingsSystem
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
