package duel

import (
	"time"

	"github.com/KirkDiggler/duelhall/internal/clients/character"
	"github.com/KirkDiggler/duelhall/internal/common/clock"
	"github.com/KirkDiggler/duelhall/internal/models"
	duelRepo "github.com/KirkDiggler/duelhall/internal/repositories/duel"
	"github.com/rs/zerolog"
)

// DefaultDuelTimeout is how long a duel may run before the next action ends it in a draw
const DefaultDuelTimeout = 5 * time.Minute

// RoleGameMaster may act for the opponent side of any duel
const RoleGameMaster = "GameMaster"

// Config holds configuration for the duel service
type Config struct {
	// Repository stores duels and their audit trail
	Repository duelRepo.Repository

	// CharacterClient reads snapshots and transfers loot
	CharacterClient character.Client

	// Clock is used for cooldowns and expiry
	Clock clock.Clock

	// DuelTimeout defaults to DefaultDuelTimeout when zero
	DuelTimeout time.Duration

	// Logger defaults to a disabled logger
	Logger *zerolog.Logger
}

// Caller identifies who is making a request
type Caller struct {
	// UserID is the authenticated user
	UserID string

	// Role is the caller's role, e.g. RoleGameMaster
	Role string
}

// IsGameMaster reports whether the caller holds the elevated role
func (c Caller) IsGameMaster() bool {
	return c.Role == RoleGameMaster
}

// ChallengeInput defines the input for starting a duel
type ChallengeInput struct {
	Caller                Caller
	ChallengerCharacterID string
	OpponentCharacterID   string
}

// ChallengeOutput defines the output of starting a duel
type ChallengeOutput struct {
	DuelID string
	Duel   *models.Duel
}

// ApplyActionInput defines the input for one duel action
type ApplyActionInput struct {
	Caller           Caller
	DuelID           string
	Action           models.ActionKind
	ActorCharacterID string
}

// ApplyActionOutput describes the duel after the action was applied.
// Status is Active while the duel continues and Finished after a lethal action.
type ApplyActionOutput struct {
	DuelID string
	Status models.DuelStatus
	Action models.ActionKind

	// Amount is the damage dealt or hit points restored
	Amount int

	ChallengerHP int
	OpponentHP   int

	// Set only when Status is Finished
	WinnerCharacterID string
	LoserCharacterID  string

	// Loot is the character service answer, nil when loot was not confirmed
	Loot *models.LootResult

	// LootConfirmed is false when the win is recorded but the transfer failed
	LootConfirmed bool

	// LootError describes a failed transfer
	LootError string

	// LootDisplayName is the decorated name of the transferred item, if any
	LootDisplayName string
}

// GetDuelInput defines the input for reading a duel
type GetDuelInput struct {
	Caller Caller
	DuelID string
}

// GetDuelOutput defines the output of reading a duel
type GetDuelOutput struct {
	Duel    *models.Duel
	Actions []*models.DuelAction
}
