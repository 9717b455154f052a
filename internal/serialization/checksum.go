package serialization

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// ComputeChecksum returns the hex SHA-256 of the tensor payload.
// Records are hashed in the order given.
func ComputeChecksum(tensors []TensorRecord) string {
	h := sha256.New()
	var buf [8]byte
	for _, t := range tensors {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(t.Name)))
		h.Write(buf[:])
		h.Write([]byte(t.Name))

		binary.LittleEndian.PutUint64(buf[:], uint64(len(t.Shape)))
		h.Write(buf[:])
		for _, d := range t.Shape {
			binary.LittleEndian.PutUint64(buf[:], uint64(d))
			h.Write(buf[:])
		}

		binary.LittleEndian.PutUint64(buf[:], uint64(len(t.Data)))
		h.Write(buf[:])
		for _, v := range t.Data {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ValidateChecksum compares the computed checksum against the stored one.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(tensors []TensorRecord, stored string) error {
	if ComputeChecksum(tensors) != stored {
		return ErrChecksumMismatch
	}
	return nil
}
