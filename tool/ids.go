package tool

import "github.com/google/uuid"

func GenerateRandomUUID() string {
	return uuid.New().String()
}

// GenerateShortSessionID returns the first block of a random UUID (8 hex
// chars) for upload session tracking in the widget bridge. Shorter than a
// full UUID so progress events stay small.
func GenerateShortSessionID() string {
	return uuid.New().String()[:8]
}
