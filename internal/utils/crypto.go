// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}

// GenerateOrderNumber builds a human-readable order number: a sortable
// timestamp prefix plus a random disambiguator. Uniqueness is what matters;
// the exact format is not load-bearing.
func GenerateOrderNumber() (string, error) {
	const charset = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
	b := make([]byte, 8)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	timestamp := time.Now().Format("20060102150405")
	return fmt.Sprintf("ORD-%s-%s", timestamp, string(b)), nil
}
