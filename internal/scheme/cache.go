package scheme

import (
	"fmt"
	"math"

	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
	"github.com/PolarWolf314/tdmigrate/internal/qstream"
)

// truncatedInt64Max is math.MaxInt64 after a 32-bit truncation. Old clients
// stored "no limit" that way.
const truncatedInt64Max int32 = -1

// NoTimeLimit reports whether a stored cache time limit means unlimited.
func NoTimeLimit(stored int32) bool {
	return stored == 0 || stored == math.MaxInt32 || stored == truncatedInt64Max
}

func checkCacheLimits(env Env, size int64, time int32) error {
	if size <= env.CacheMaxDataSize {
		return fmt.Errorf("cache size %d not above %d: %w", size, env.CacheMaxDataSize, kerrors.ErrValidationRejected)
	}
	if !NoTimeLimit(time) && time < 0 {
		return fmt.Errorf("cache time %d: %w", time, kerrors.ErrValidationRejected)
	}
	return nil
}

func timeLimit(stored int32) int32 {
	if NoTimeLimit(stored) {
		return 0
	}
	return stored
}

// CacheSettingsOldRecord holds one size/time pair used for both the main
// and the big-file cache.
type CacheSettingsOldRecord struct {
	Size int64 `toml:"size" json:"size"`
	Time int32 `toml:"time" json:"time"`
}

func (r *CacheSettingsOldRecord) Tag() Tag { return TagCacheSettingsOld }

func (r *CacheSettingsOldRecord) decode(c *qstream.Cursor) {
	r.Size = c.ReadInt64()
	r.Time = c.ReadInt32()
}

func (r *CacheSettingsOldRecord) encode(w *qstream.Writer) {
	w.WriteInt64(r.Size)
	w.WriteInt32(r.Time)
}

func (r *CacheSettingsOldRecord) validate(env Env) error {
	return checkCacheLimits(env, r.Size, r.Time)
}

func (r *CacheSettingsOldRecord) apply(t *Target) {
	t.Context.CacheTotalSizeLimit = r.Size
	t.Context.CacheTotalTimeLimit = timeLimit(r.Time)
	t.Context.CacheBigFileTotalSizeLimit = r.Size
	t.Context.CacheBigFileTotalTimeLimit = timeLimit(r.Time)
}

// CacheSettingsRecord holds separate limits for the main and the big-file
// cache.
type CacheSettingsRecord struct {
	Size    int64 `toml:"size" json:"size"`
	Time    int32 `toml:"time" json:"time"`
	SizeBig int64 `toml:"size_big" json:"size_big"`
	TimeBig int32 `toml:"time_big" json:"time_big"`
}

func (r *CacheSettingsRecord) Tag() Tag { return TagCacheSettings }

func (r *CacheSettingsRecord) decode(c *qstream.Cursor) {
	r.Size = c.ReadInt64()
	r.Time = c.ReadInt32()
	r.SizeBig = c.ReadInt64()
	r.TimeBig = c.ReadInt32()
}

func (r *CacheSettingsRecord) encode(w *qstream.Writer) {
	w.WriteInt64(r.Size)
	w.WriteInt32(r.Time)
	w.WriteInt64(r.SizeBig)
	w.WriteInt32(r.TimeBig)
}

func (r *CacheSettingsRecord) validate(env Env) error {
	if err := checkCacheLimits(env, r.Size, r.Time); err != nil {
		return err
	}
	if err := checkCacheLimits(env, r.SizeBig, r.TimeBig); err != nil {
		return fmt.Errorf("big file %w", err)
	}
	return nil
}

func (r *CacheSettingsRecord) apply(t *Target) {
	t.Context.CacheTotalSizeLimit = r.Size
	t.Context.CacheTotalTimeLimit = timeLimit(r.Time)
	t.Context.CacheBigFileTotalSizeLimit = r.SizeBig
	t.Context.CacheBigFileTotalTimeLimit = timeLimit(r.TimeBig)
}
