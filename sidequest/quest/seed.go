package quest

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// Seed derives the reproducible per-quest seed from a user key and target
// date. The digest is MD5 over "<userKey>-<ISO date>"; the first 16 hex
// chars are persisted on the quest row and the first 8 are parsed as an
// unsigned 32-bit value to seed the generator. MD5 is fixed here for
// stability across processes and versions, not for any security property.
func Seed(userKey string, date time.Time) (seedHex string, seedValue int64) {
	sum := md5.Sum([]byte(fmt.Sprintf("%s-%s", userKey, date.Format("2006-01-02"))))
	seedHex = hex.EncodeToString(sum[:])[:16]

	value, _ := strconv.ParseUint(seedHex[:8], 16, 64)
	return seedHex, int64(value)
}

// NewRand builds the single generator that drives every random decision
// for one quest generation. Template choice, place choice, and option
// picks all consume it in a fixed order, so the whole quest replays from
// (user, date) alone.
func NewRand(seedValue int64) *rand.Rand {
	return rand.New(rand.NewSource(seedValue))
}
