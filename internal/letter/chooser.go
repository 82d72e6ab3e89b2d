package letter

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// Chooser picks an index in [0, n). n is always at least 1.
type Chooser func(n int) int

// SeededChooser returns a deterministic chooser.
func SeededChooser(seed int64) Chooser {
	rng := rand.New(rand.NewSource(seed))
	return func(n int) int { return rng.Intn(n) }
}

// RandomChooser returns a chooser seeded from crypto/rand.
func RandomChooser() Chooser {
	return SeededChooser(newSeed())
}

func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		log.Warn("reading random seed, using clock: %v", err)
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
