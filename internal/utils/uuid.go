// Package utils holds small helpers shared by the catalog packages.
package utils

import (
	"github.com/google/uuid"
)

// GenerateUUID generates a new UUID v4 string, used as the primary key of
// every catalog entity.
func GenerateUUID() string {
	return uuid.New().String()
}

// IsValidUUID checks if a string is a valid UUID.
func IsValidUUID(uuidStr string) bool {
	_, err := uuid.Parse(uuidStr)
	return err == nil
}
