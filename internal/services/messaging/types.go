package messaging

import (
	"github.com/KirkDiggler/duelhall/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneEpic is a dramatic tone
	ToneEpic MessageTone = "epic"
)

// Picker chooses one line from a list
type Picker interface {
	Pick(lines []string) string
}

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Picker selects among candidate lines. Defaults to an unseeded dice roller.
	Picker Picker
}

// GetActionMessageInput contains parameters for narrating an applied action
type GetActionMessageInput struct {
	// ActorName is shown as the one acting
	ActorName string

	Action models.ActionKind

	// Amount is the damage dealt or HP healed
	Amount int

	// Lethal is true when the action brought the enemy to 0 HP
	Lethal bool

	// PreferredTone is optional, defaults to ToneEpic
	PreferredTone MessageTone
}

// GetActionMessageOutput contains the action line
type GetActionMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetOutcomeMessageInput describes how a duel ended
type GetOutcomeMessageInput struct {
	// Status must be Finished or Draw
	Status models.DuelStatus

	WinnerName string
	LoserName  string

	// LootName is the display name of the transferred item, empty when none
	LootName string
}

// GetOutcomeMessageOutput contains the announcement
type GetOutcomeMessageOutput struct {
	Title   string
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// ErrorCode is the machine-readable duel failure code, e.g. COOLDOWN
	ErrorCode string

	// PreferredTone is optional, defaults to ToneFunny
	PreferredTone MessageTone
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Message string
	Tone    MessageTone
}
