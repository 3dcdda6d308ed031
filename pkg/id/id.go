// Package id issues the ULIDs used as account and trade keys in the journal.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	entropy = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// At returns a ULID stamped with t, so a trade imported after the fact can
// still sort by when it was opened. IDs issued for the same millisecond
// increase monotonically.
func At(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	u, err := ulid.New(ulid.Timestamp(t.UTC()), entropy)
	if err != nil {
		// only possible if the monotonic entropy for one millisecond overflows
		panic(err)
	}
	return u.String()
}

// Time reports the timestamp embedded in a ULID string.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}
