package otcompose

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a strong content digest of a table body. It serves as a
// collision-resistant identity key for deduplication; there is no security
// boundary attached to it.
type Digest [sha256.Size]byte

// String returns the digest in hexadecimal.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Less orders digests bytewise.
func (d Digest) Less(other Digest) bool {
	return bytes.Compare(d[:], other[:]) < 0
}

// fingerprinter hashes table bodies. It carries a second-level cache keyed on
// the identity of the byte buffer (address of the first byte + length), so a
// font that reports the same buffer for multiple tags is hashed only once.
// The cache is valid for a single compose run; buffer identity means nothing
// beyond that scope.
type fingerprinter struct {
	cache map[bufferKey]Digest
}

type bufferKey struct {
	head *byte
	size int
}

func newFingerprinter() *fingerprinter {
	return &fingerprinter{cache: make(map[bufferKey]Digest)}
}

// fingerprint computes the content digest of a table body.
func (fp *fingerprinter) fingerprint(body []byte) Digest {
	if len(body) == 0 {
		return sha256.Sum256(nil)
	}
	key := bufferKey{head: &body[0], size: len(body)}
	if d, ok := fp.cache[key]; ok {
		tracer().Debugf("fingerprint cache hit for %d-byte buffer", len(body))
		return d
	}
	d := sha256.Sum256(body)
	fp.cache[key] = d
	return d
}
