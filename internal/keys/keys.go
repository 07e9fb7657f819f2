package keys

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// RoomCodeLength is the number of characters in a room code.
const RoomCodeLength = 6

const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewRoomCode returns a random code of RoomCodeLength characters drawn from
// A-Z and 0-9.
func NewRoomCode() (string, error) {
	var b strings.Builder
	b.Grow(RoomCodeLength)
	max := big.NewInt(int64(len(roomCodeAlphabet)))
	for i := 0; i < RoomCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(roomCodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// NormalizeRoomCode trims and upper-cases a user supplied code. It reports
// false when the result is not a well formed code.
func NormalizeRoomCode(code string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(code))
	if len(s) != RoomCodeLength {
		return "", false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(roomCodeAlphabet, rune(s[i])) {
			return "", false
		}
	}
	return s, true
}

// PlayerKey produces the canonical lookup key for a player name: trimmed,
// lower-cased, inner spaces replaced with underscores.
func PlayerKey(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(s), "_")
}
