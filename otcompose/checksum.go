package otcompose

// Checksum computes the OpenType table checksum of a table body: the sum,
// modulo 2^32, of the body interpreted as big-endian uint32 words, with the
// body zero-padded on the right to a multiple of 4 bytes for the computation
// only.
//
// See https://docs.microsoft.com/en-us/typography/opentype/spec/otff,
// "Calculating Checksums".
func Checksum(body []byte) uint32 {
	var sum uint32
	n := len(body) &^ 3
	for i := 0; i < n; i += 4 {
		sum += uint32(body[i])<<24 | uint32(body[i+1])<<16 | uint32(body[i+2])<<8 | uint32(body[i+3])
	}
	if n < len(body) {
		var tail [4]byte
		copy(tail[:], body[n:])
		sum += uint32(tail[0])<<24 | uint32(tail[1])<<16 | uint32(tail[2])<<8 | uint32(tail[3])
	}
	return sum
}
