package room

import "math/rand/v2"

const codeLength = 5

// Letters and digits that read unambiguously when shared aloud or on screen.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateCode returns a room code not present in existing.
func GenerateCode(existing map[string]bool) string {
	for {
		code := randomCode()
		if !existing[code] {
			return code
		}
	}
}

func randomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return string(b)
}
