package character

import (
	"errors"
	"fmt"
)

var (
	// ErrCharacterNotFound is returned when the character service has no such character
	ErrCharacterNotFound = errors.New("character not found")

	// ErrUpstream is returned when the character service fails or answers unexpectedly
	ErrUpstream = errors.New("character service error")
)

// ResolveDuelLootInput identifies a finished duel and its two sides
type ResolveDuelLootInput struct {
	DuelID            string `json:"duelId,omitempty"`
	WinnerCharacterID string `json:"winnerCharacterId"`
	LoserCharacterID  string `json:"loserCharacterId"`
}

// StatusError carries the HTTP status of a failed character service call
type StatusError struct {
	StatusCode int
	Code       string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("character service returned %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("character service returned %d", e.StatusCode)
}

// Is lets errors.Is match ErrUpstream against any status failure
func (e *StatusError) Is(target error) bool {
	return target == ErrUpstream
}
