package mtp

import (
	"fmt"

	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
	"github.com/PolarWolf314/tdmigrate/internal/qstream"
)

// Environment selects the production or the test network.
type Environment int32

const (
	EnvironmentProduction Environment = iota
	EnvironmentTest
)

func (e Environment) String() string {
	if e == EnvironmentTest {
		return "test"
	}
	return "production"
}

const configVersion = 1

// Config is the baseline client configuration used before a live one is
// fetched from the network.
type Config struct {
	Environment           Environment
	DcOptions             DcOptions
	ChatSizeMax           int32
	MegagroupSizeMax      int32
	ForwardedCountMax     int32
	SavedGifsLimit        int32
	StickersRecentLimit   int32
	StickersFavedLimit    int32
	PinnedDialogsCountMax int32
	EditTimeLimit         int32
	CaptionLengthMax      int32
	WebFileDcID           int32
	TxtDomainString       string
	InternalLinksDomain   string
}

// DefaultConfig returns the built-in configuration for env.
func DefaultConfig(env Environment) Config {
	config := Config{
		Environment:           env,
		ChatSizeMax:           200,
		MegagroupSizeMax:      10000,
		ForwardedCountMax:     100,
		SavedGifsLimit:        200,
		StickersRecentLimit:   30,
		StickersFavedLimit:    5,
		PinnedDialogsCountMax: 5,
		EditTimeLimit:         172800,
		CaptionLengthMax:      1024,
		WebFileDcID:           4,
		TxtDomainString:       "apv3.stel.com",
		InternalLinksDomain:   "https://t.me/",
	}
	if env == EnvironmentTest {
		config.WebFileDcID = 2
		config.TxtDomainString = "tapv3.stel.com"
	}
	return config
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	c.DcOptions = c.DcOptions.Clone()
	return c
}

// Serialize encodes the configuration as a fallback blob.
func (c Config) Serialize() []byte {
	w := qstream.NewWriter()
	w.WriteInt32(configVersion)
	w.WriteInt32(int32(c.Environment))
	w.WriteBytes(c.DcOptions.Serialize())
	w.WriteInt32(c.ChatSizeMax)
	w.WriteInt32(c.MegagroupSizeMax)
	w.WriteInt32(c.ForwardedCountMax)
	w.WriteInt32(c.SavedGifsLimit)
	w.WriteInt32(c.StickersRecentLimit)
	w.WriteInt32(c.StickersFavedLimit)
	w.WriteInt32(c.PinnedDialogsCountMax)
	w.WriteInt32(c.EditTimeLimit)
	w.WriteInt32(c.CaptionLengthMax)
	w.WriteInt32(c.WebFileDcID)
	w.WriteString(c.TxtDomainString)
	w.WriteString(c.InternalLinksDomain)
	return w.Bytes()
}

// ConfigFromSerialized decodes a fallback blob produced by Serialize.
func ConfigFromSerialized(serialized []byte) (Config, error) {
	c := qstream.NewCursor(serialized)

	version := c.ReadInt32()
	env := Environment(c.ReadInt32())
	dcOptions := c.ReadBytes()
	if err := c.Err(); err != nil {
		return Config{}, fmt.Errorf("reading config header: %w", err)
	}
	if version != configVersion {
		return Config{}, fmt.Errorf("config version %d: %w", version, kerrors.ErrFieldCorrupt)
	}
	if env != EnvironmentProduction && env != EnvironmentTest {
		return Config{}, fmt.Errorf("config environment %d: %w", env, kerrors.ErrFieldCorrupt)
	}

	config := Config{Environment: env}
	config.ChatSizeMax = c.ReadInt32()
	config.MegagroupSizeMax = c.ReadInt32()
	config.ForwardedCountMax = c.ReadInt32()
	config.SavedGifsLimit = c.ReadInt32()
	config.StickersRecentLimit = c.ReadInt32()
	config.StickersFavedLimit = c.ReadInt32()
	config.PinnedDialogsCountMax = c.ReadInt32()
	config.EditTimeLimit = c.ReadInt32()
	config.CaptionLengthMax = c.ReadInt32()
	config.WebFileDcID = c.ReadInt32()
	config.TxtDomainString = c.ReadString()
	config.InternalLinksDomain = c.ReadString()
	if err := c.Err(); err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if !c.AtEnd() {
		return Config{}, fmt.Errorf("config: %d trailing bytes: %w", c.Remaining(), kerrors.ErrFieldCorrupt)
	}

	options, err := ParseDcOptions(dcOptions)
	if err != nil {
		return Config{}, fmt.Errorf("config dc options: %w", err)
	}
	config.DcOptions = options
	return config, nil
}
