package mtp

import (
	"encoding/hex"
	"strings"
)

// ProxyType is the protocol spoken by a proxy.
type ProxyType int32

const (
	ProxyNone ProxyType = iota
	ProxySocks5
	ProxyHTTP
	ProxyMtproto
)

func (t ProxyType) String() string {
	switch t {
	case ProxySocks5:
		return "socks5"
	case ProxyHTTP:
		return "http"
	case ProxyMtproto:
		return "mtproto"
	default:
		return "none"
	}
}

// ProxySettings selects how the selected proxy is used.
type ProxySettings int32

const (
	ProxySettingsSystem ProxySettings = iota
	ProxySettingsEnabled
	ProxySettingsDisabled
)

func (s ProxySettings) String() string {
	switch s {
	case ProxySettingsEnabled:
		return "enabled"
	case ProxySettingsDisabled:
		return "disabled"
	default:
		return "system"
	}
}

// ProxyData describes one proxy endpoint. The zero value is the empty proxy.
type ProxyData struct {
	Type     ProxyType `toml:"type" json:"type"`
	Host     string    `toml:"host" json:"host"`
	Port     uint32    `toml:"port" json:"port"`
	User     string    `toml:"user,omitempty" json:"user,omitempty"`
	Password string    `toml:"password,omitempty" json:"password,omitempty"`
}

// Valid reports whether p names a usable proxy. Invalid proxies are
// treated as "no proxy" everywhere.
func (p ProxyData) Valid() bool {
	if p.Type == ProxyNone || p.Host == "" || p.Port == 0 {
		return false
	}
	if p.Type == ProxyMtproto && !ValidMtprotoSecret(p.Password) {
		return false
	}
	return true
}

// ValidMtprotoSecret checks the hex secret of an MTProto proxy: 16 raw
// bytes, the same prefixed with 0xdd, or a 0xee-prefixed secret carrying a
// fake-TLS domain after the key.
func ValidMtprotoSecret(secret string) bool {
	if _, err := hex.DecodeString(secret); err != nil {
		return false
	}
	switch {
	case len(secret) == 32:
		return true
	case len(secret) == 34:
		return strings.HasPrefix(strings.ToLower(secret), "dd")
	case len(secret) > 34:
		return strings.HasPrefix(strings.ToLower(secret), "ee")
	}
	return false
}
