package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/taskpal/taskpal-api/internal/constants"
)

// GenerateInviteCode generates a random 8-character uppercase invite code.
func GenerateInviteCode() (string, error) {
	bytes := make([]byte, constants.InviteCodeBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return strings.ToUpper(hex.EncodeToString(bytes)), nil
}

// NormalizeInviteCode prepares a user-supplied code for lookup.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
