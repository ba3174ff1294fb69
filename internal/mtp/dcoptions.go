package mtp

import (
	"fmt"
	"slices"

	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
	"github.com/PolarWolf314/tdmigrate/internal/qstream"
)

// DcShift separates the bare data-center id from the shift that legacy
// records folded into the same integer.
const DcShift = 10000

// Data-center option flags.
const (
	FlagIPv6      int32 = 1 << 0
	FlagMediaOnly int32 = 1 << 1
	FlagTCPOOnly  int32 = 1 << 2
	FlagCDN       int32 = 1 << 3
	FlagStatic    int32 = 1 << 4
)

const (
	dcOptionsVersion = 2
	maxIPSize        = 45
	maxSecretSize    = 32
)

// BareDcID strips the shift from a data-center id.
func BareDcID(id int32) int32 {
	return id % DcShift
}

// DcOption is one endpoint of a data center.
type DcOption struct {
	ID     int32  `toml:"id" json:"id"`
	Flags  int32  `toml:"flags" json:"flags"`
	IP     string `toml:"ip" json:"ip"`
	Port   int32  `toml:"port" json:"port"`
	Secret []byte `toml:"secret,omitempty" json:"secret,omitempty"`
}

func (o DcOption) equal(other DcOption) bool {
	return o.ID == other.ID &&
		o.Flags == other.Flags &&
		o.IP == other.IP &&
		o.Port == other.Port &&
		slices.Equal(o.Secret, other.Secret)
}

// CdnPublicKey is an RSA public key announced for a CDN data center.
type CdnPublicKey struct {
	DcID int32  `toml:"dc_id" json:"dc_id"`
	N    []byte `toml:"n" json:"n"`
	E    []byte `toml:"e" json:"e"`
}

// DcOptions is an ordered, duplicate-free set of data-center endpoints.
// The zero value is an empty set.
type DcOptions struct {
	options []DcOption
	cdnKeys []CdnPublicKey
}

// Len returns the number of endpoints.
func (d *DcOptions) Len() int {
	return len(d.options)
}

// Empty reports whether the set has neither endpoints nor CDN keys.
func (d *DcOptions) Empty() bool {
	return len(d.options) == 0 && len(d.cdnKeys) == 0
}

// Options returns a copy of the endpoints in insertion order.
func (d *DcOptions) Options() []DcOption {
	return slices.Clone(d.options)
}

// CdnKeys returns a copy of the CDN public keys.
func (d *DcOptions) CdnKeys() []CdnPublicKey {
	return slices.Clone(d.cdnKeys)
}

// Clone returns a deep copy.
func (d *DcOptions) Clone() DcOptions {
	var out DcOptions
	for _, o := range d.options {
		o.Secret = slices.Clone(o.Secret)
		out.options = append(out.options, o)
	}
	for _, k := range d.cdnKeys {
		out.cdnKeys = append(out.cdnKeys, CdnPublicKey{DcID: k.DcID, N: slices.Clone(k.N), E: slices.Clone(k.E)})
	}
	return out
}

// AddOne adds an endpoint whose id may still carry a shift.
// It reports whether the endpoint was new.
func (d *DcOptions) AddOne(idWithShift int32, flags int32, ip string, port int32, secret []byte) bool {
	option := DcOption{
		ID:     BareDcID(idWithShift),
		Flags:  flags,
		IP:     ip,
		Port:   port,
		Secret: slices.Clone(secret),
	}
	for _, existing := range d.options {
		if existing.equal(option) {
			return false
		}
	}
	d.options = append(d.options, option)
	return true
}

func (d *DcOptions) addCdnKey(key CdnPublicKey) {
	for _, existing := range d.cdnKeys {
		if existing.DcID == key.DcID && slices.Equal(existing.N, key.N) && slices.Equal(existing.E, key.E) {
			return
		}
	}
	d.cdnKeys = append(d.cdnKeys, key)
}

// AddFromOther merges every endpoint and key of other into d.
func (d *DcOptions) AddFromOther(other DcOptions) {
	for _, o := range other.options {
		d.AddOne(o.ID, o.Flags, o.IP, o.Port, o.Secret)
	}
	for _, k := range other.cdnKeys {
		d.addCdnKey(k)
	}
}

// AddFromSerialized merges a serialized set into d. Nothing is merged when
// the blob is malformed.
func (d *DcOptions) AddFromSerialized(serialized []byte) error {
	parsed, err := ParseDcOptions(serialized)
	if err != nil {
		return err
	}
	d.AddFromOther(parsed)
	return nil
}

// ParseDcOptions decodes a serialized set. A non-negative leading integer
// is the endpoint count of the unversioned layout; a negative one is the
// negated layout version.
func ParseDcOptions(serialized []byte) (DcOptions, error) {
	var result DcOptions
	c := qstream.NewCursor(serialized)

	version := int32(0)
	count := c.ReadInt32()
	if count < 0 {
		version = -count
		count = c.ReadInt32()
	}
	if err := c.Err(); err != nil {
		return DcOptions{}, fmt.Errorf("reading dc options header: %w", err)
	}
	if version > dcOptionsVersion || count < 0 {
		return DcOptions{}, fmt.Errorf("dc options version %d, count %d: %w", version, count, kerrors.ErrFieldCorrupt)
	}

	for i := int32(0); i < count; i++ {
		id := c.ReadInt32()
		flags := c.ReadInt32()
		port := c.ReadInt32()
		ipSize := c.ReadInt32()
		if !c.Ok() {
			break
		}
		if ipSize < 0 || ipSize > maxIPSize {
			return DcOptions{}, fmt.Errorf("dc option %d ip size %d: %w", i, ipSize, kerrors.ErrFieldCorrupt)
		}
		ip := c.ReadRaw(int(ipSize))

		var secret []byte
		if version > 1 {
			secretSize := c.ReadInt32()
			if c.Ok() && (secretSize < 0 || secretSize > maxSecretSize) {
				return DcOptions{}, fmt.Errorf("dc option %d secret size %d: %w", i, secretSize, kerrors.ErrFieldCorrupt)
			}
			if secretSize > 0 {
				secret = c.ReadRaw(int(secretSize))
			}
		}
		if !c.Ok() {
			break
		}
		result.AddOne(id, flags, string(ip), port, secret)
	}

	if version > 0 && c.Ok() {
		keys := c.ReadInt32()
		if c.Ok() && keys < 0 {
			return DcOptions{}, fmt.Errorf("cdn key count %d: %w", keys, kerrors.ErrFieldCorrupt)
		}
		for i := int32(0); i < keys && c.Ok(); i++ {
			key := CdnPublicKey{DcID: c.ReadInt32(), N: c.ReadBytes(), E: c.ReadBytes()}
			if c.Ok() {
				result.addCdnKey(key)
			}
		}
	}

	if err := c.Err(); err != nil {
		return DcOptions{}, fmt.Errorf("reading dc options: %w", err)
	}
	if !c.AtEnd() {
		return DcOptions{}, fmt.Errorf("dc options: %d trailing bytes: %w", c.Remaining(), kerrors.ErrFieldCorrupt)
	}
	return result, nil
}

// Serialize encodes the set in the current versioned layout.
func (d *DcOptions) Serialize() []byte {
	w := qstream.NewWriter()
	w.WriteInt32(-dcOptionsVersion)
	w.WriteInt32(int32(len(d.options)))
	for _, o := range d.options {
		w.WriteInt32(o.ID)
		w.WriteInt32(o.Flags)
		w.WriteInt32(o.Port)
		w.WriteInt32(int32(len(o.IP)))
		w.WriteRaw([]byte(o.IP))
		w.WriteInt32(int32(len(o.Secret)))
		w.WriteRaw(o.Secret)
	}
	w.WriteInt32(int32(len(d.cdnKeys)))
	for _, k := range d.cdnKeys {
		w.WriteInt32(k.DcID)
		w.WriteBytes(k.N)
		w.WriteBytes(k.E)
	}
	return w.Bytes()
}
