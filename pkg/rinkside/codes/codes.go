package codes

import (
	"crypto/rand"
	"math/big"
)

const (
	// AdminAlphabet is used for admin and share codes. Ambiguous characters
	// (I, O, 0, 1) are excluded so codes survive being read aloud.
	AdminAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// MemberAlphabet is the lowercase variant used for member codes.
	MemberAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"

	// AdminCodeLength is the length of admin and share codes.
	AdminCodeLength = 8
	// MemberCodeLength is the length of member codes.
	MemberCodeLength = 6
)

// Generate returns a string of length characters drawn uniformly, with
// replacement, from alphabet. Codes act as credentials, so the source is
// crypto/rand rather than math/rand. Safe for concurrent use.
func Generate(alphabet string, length int) string {
	size := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			// Only reachable if the platform entropy source is broken.
			panic(err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf)
}
