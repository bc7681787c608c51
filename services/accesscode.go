package services

import (
	"crypto/rand"
	"log"
)

// CodeAlphabet drops 0/O and 1/I so codes survive being read over a
// counter. 32 symbols at 4 positions gives ~1M codes; collisions are rare
// but possible, which is why generation re-rolls against active bookings.
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	CodeLength      = 4
	codeMaxAttempts = 5
)

// CodeChecker reports whether a code is already held by an active booking
type CodeChecker func(code string) (bool, error)

// GenerateAccessCode returns one 4-character code from the approved alphabet
func GenerateAccessCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := make([]byte, CodeLength)
	for i, b := range buf {
		code[i] = CodeAlphabet[int(b)%len(CodeAlphabet)]
	}
	return string(code), nil
}

// GenerateUniqueAccessCode re-rolls a bounded number of times when the
// fresh code is already on an active booking. If every attempt collides we
// keep the last code anyway; lookups resolve to the newest active match.
func GenerateUniqueAccessCode(inUse CodeChecker) (string, error) {
	var code string
	for attempt := 0; attempt < codeMaxAttempts; attempt++ {
		var err error
		code, err = GenerateAccessCode()
		if err != nil {
			return "", err
		}
		taken, err := inUse(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	log.Printf("Access code %s still colliding after %d attempts, keeping it", code, codeMaxAttempts)
	return code, nil
}
