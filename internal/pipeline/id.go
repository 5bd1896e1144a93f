package pipeline

import (
	"crypto/rand"
	"sync"
	"time"
)

// Job IDs are ULID-shaped: 26 Crockford Base32 characters, a 48-bit
// millisecond timestamp followed by 80 random bits, so IDs sort by
// creation time. A per-millisecond sequence keeps IDs unique under
// bursts.

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var (
	idMu  sync.Mutex
	idTS  uint64
	idSeq uint16
)

func newJobID() string {
	idMu.Lock()
	ts := uint64(time.Now().UnixMilli())
	if ts == idTS {
		idSeq++
	} else {
		idTS = ts
		idSeq = 0
	}
	seq := idSeq
	idMu.Unlock()

	var b [16]byte
	for i := 0; i < 6; i++ {
		b[i] = byte(ts >> (40 - 8*i))
	}
	rand.Read(b[6:])
	b[6] = byte(seq >> 8)
	b[7] = byte(seq)

	return encodeBase32(b)
}

// encodeBase32 packs 128 bits into 26 characters, 5 bits at a time
// from the most significant end (the leading character carries the
// top 3 bits).
func encodeBase32(b [16]byte) string {
	var out [26]byte
	bitPos := -2 // 130 output bits for 128 input; the first 2 read as 0
	for i := range out {
		var v byte
		for k := 0; k < 5; k++ {
			v <<= 1
			pos := bitPos + k
			if pos >= 0 && pos < 128 {
				if b[pos/8]&(1<<(7-pos%8)) != 0 {
					v |= 1
				}
			}
		}
		out[i] = crockford[v]
		bitPos += 5
	}
	return string(out[:])
}
