package duel

import (
	"time"

	"github.com/KirkDiggler/duelhall/internal/models"
)

type CreateDuelInput struct {
	ChallengerCharacterID string
	OpponentCharacterID   string
	ChallengerUserID      string
	ChallengerStats       models.Stats
	OpponentStats         models.Stats
	ChallengerHP          int
	OpponentHP            int
	StartedAt             time.Time
}

type CreateDuelOutput struct {
	Duel *models.Duel
}

type GetDuelInput struct {
	DuelID string
}

// ApplyTransitionInput describes one action's effect on a duel.
// Side and Action select the HP and cooldown fields from a closed set.
type ApplyTransitionInput struct {
	DuelID string

	// Side is the acting side; its enemy is the other side
	Side   models.Side
	Action models.ActionKind

	// Cooldown is the minimum time since the side last used Action
	Cooldown time.Duration

	NewSelfHP  int
	NewEnemyHP int

	ActorCharacterID string
	Amount           int

	// Now is written as the new cooldown timestamp and audit time
	Now time.Time
}

// Rejection explains why a transition was not applied
type Rejection string

const (
	RejectionNone      Rejection = ""
	RejectionCooldown  Rejection = "cooldown"
	RejectionNotActive Rejection = "not_active"
)

type ApplyTransitionOutput struct {
	Applied   bool
	Rejection Rejection

	// Action is the audit record written when Applied
	Action *models.DuelAction
}

// FinishDuelInput ends a duel. An empty WinnerCharacterID records a Draw.
type FinishDuelInput struct {
	DuelID            string
	WinnerCharacterID string
	Now               time.Time
}

type FinishDuelOutput struct {
	// Applied is false when the duel had already left Active
	Applied bool
}

type ListActionsInput struct {
	DuelID string
}

type ListActionsOutput struct {
	Actions []*models.DuelAction
}
