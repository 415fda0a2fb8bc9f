package utils

import (
	"crypto/rand"
	"math/big"
)

// Ambiguous glyphs (0/O, 1/l/I) are left out so the password can be read
// aloud to a patient.
const temporaryPasswordAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const TemporaryPasswordLength = 10

// GenerateTemporaryPassword returns a random password for a patient account
// created by a doctor.
func GenerateTemporaryPassword() (string, error) {
	max := big.NewInt(int64(len(temporaryPasswordAlphabet)))
	buf := make([]byte, TemporaryPasswordLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = temporaryPasswordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
