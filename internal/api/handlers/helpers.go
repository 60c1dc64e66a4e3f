package handlers

import (
	"crypto/rand"
	"math/big"
)

// generateID generates a random alphanumeric ID
func generateID(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		result[i] = charset[n.Int64()]
	}
	return string(result)
}

// generateSessionToken generates a unique overlay session token
func generateSessionToken() string {
	return "OVL_" + generateID(10)
}
