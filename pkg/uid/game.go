package uid

import "github.com/google/uuid"

// GenerateGameID returns a random identifier for a game session
func GenerateGameID() string {
	return uuid.NewString()
}
