package services

import (
	"strings"

	"github.com/ThreeDotsLabs/watermill"
)

// generateID returns a prefixed identifier, e.g. "stu_6f1c6e…".
func generateID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(watermill.NewUUID(), "-", "")
}
