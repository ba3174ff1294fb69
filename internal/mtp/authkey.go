package mtp

import (
	"crypto/sha1"
	"encoding/binary"
)

// AuthKeySize is the length of an authorization key in bytes.
const AuthKeySize = 256

// AuthKey is a data-center authorization key recovered from a legacy record.
type AuthKey struct {
	DcID int32
	Data [AuthKeySize]byte
}

// KeyID returns the identifier the protocol derives from the key: the low
// 64 bits of its SHA-1 digest, little-endian.
func (k AuthKey) KeyID() uint64 {
	sum := sha1.Sum(k.Data[:])
	return binary.LittleEndian.Uint64(sum[12:])
}
