package models

import (
	"time"
)

// DuelStatus represents the lifecycle state of a duel
type DuelStatus string

const (
	// DuelStatusActive indicates the duel still accepts actions
	DuelStatusActive DuelStatus = "Active"

	// DuelStatusFinished indicates a lethal action ended the duel with a winner
	DuelStatusFinished DuelStatus = "Finished"

	// DuelStatusDraw indicates the duel expired without a winner
	DuelStatusDraw DuelStatus = "Draw"
)

// IsTerminal reports whether no further transition can leave this status
func (s DuelStatus) IsTerminal() bool {
	return s == DuelStatusFinished || s == DuelStatusDraw
}

// Side identifies one of the two participants of a duel
type Side string

const (
	// SideChallenger is the character that issued the challenge
	SideChallenger Side = "challenger"

	// SideOpponent is the challenged character
	SideOpponent Side = "opponent"
)

// Valid reports whether the side is one of the known sides
func (s Side) Valid() bool {
	return s == SideChallenger || s == SideOpponent
}

// Enemy returns the opposing side
func (s Side) Enemy() Side {
	if s == SideChallenger {
		return SideOpponent
	}
	return SideChallenger
}

// Combatant holds one side's frozen stats and mutable combat state
type Combatant struct {
	// CharacterID is the remote character taking part in the duel
	CharacterID string `json:"characterId"`

	// Stats are copied from the character snapshot when the duel starts
	Stats Stats `json:"stats"`

	// HP is the current hit points, never below zero
	HP int `json:"hp"`

	// Cooldowns holds the last time each action kind was used by this side
	Cooldowns Cooldowns `json:"cooldowns"`
}

// Cooldowns tracks when each action kind was last applied. Nil means never.
type Cooldowns struct {
	Attack *time.Time `json:"attack,omitempty"`
	Cast   *time.Time `json:"cast,omitempty"`
	Heal   *time.Time `json:"heal,omitempty"`
}

// LastUsed returns the last use of the given action kind, or nil
func (c Cooldowns) LastUsed(kind ActionKind) *time.Time {
	switch kind {
	case ActionAttack:
		return c.Attack
	case ActionCast:
		return c.Cast
	case ActionHeal:
		return c.Heal
	}
	return nil
}

// Duel is a bounded combat session between two characters
type Duel struct {
	// ID is the unique identifier for the duel
	ID string `json:"id"`

	// Challenger is the side that issued the challenge
	Challenger Combatant `json:"challenger"`

	// Opponent is the challenged side
	Opponent Combatant `json:"opponent"`

	// ChallengerUserID is the owner of the challenger character, pinned at creation
	ChallengerUserID string `json:"challengerUserId"`

	// Status is the lifecycle state of the duel
	Status DuelStatus `json:"status"`

	// StartedAt is when the duel was created
	StartedAt time.Time `json:"startedAt"`

	// EndedAt is when the duel reached a terminal status
	EndedAt *time.Time `json:"endedAt,omitempty"`

	// WinnerCharacterID is set only when the duel is Finished
	WinnerCharacterID string `json:"winnerCharacterId,omitempty"`
}

// SideOf returns which side the character fights on
func (d *Duel) SideOf(characterID string) (Side, bool) {
	switch characterID {
	case "":
		return "", false
	case d.Challenger.CharacterID:
		return SideChallenger, true
	case d.Opponent.CharacterID:
		return SideOpponent, true
	}
	return "", false
}

// Combatant returns the combat state for a side
func (d *Duel) Combatant(side Side) *Combatant {
	if side == SideOpponent {
		return &d.Opponent
	}
	return &d.Challenger
}

// IsActive reports whether the duel still accepts actions
func (d *Duel) IsActive() bool {
	return d.Status == DuelStatusActive
}

// Expired reports whether more than timeout has elapsed since the duel started
func (d *Duel) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(d.StartedAt) > timeout
}

// DuelAction is an immutable audit record of one applied action
type DuelAction struct {
	// ID is the unique identifier for the audit record
	ID string `json:"id"`

	// DuelID is the duel the action was applied to
	DuelID string `json:"duelId"`

	// ActorCharacterID is the character that acted
	ActorCharacterID string `json:"actorCharacterId"`

	// Action is the kind of action applied
	Action ActionKind `json:"action"`

	// Amount is the computed damage or healing
	Amount int `json:"amount"`

	// CreatedAt is when the action was committed
	CreatedAt time.Time `json:"createdAt"`
}
