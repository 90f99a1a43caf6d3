package models

import "time"

// ActionKind is one of the timed actions a combatant can take
type ActionKind string

const (
	// ActionAttack deals strength + agility damage to the enemy
	ActionAttack ActionKind = "attack"

	// ActionCast deals twice the intelligence as damage to the enemy
	ActionCast ActionKind = "cast"

	// ActionHeal restores faith hit points to the actor
	ActionHeal ActionKind = "heal"
)

// ActionKinds lists every supported action kind
var ActionKinds = []ActionKind{ActionAttack, ActionCast, ActionHeal}

// Valid reports whether the action kind is supported
func (a ActionKind) Valid() bool {
	switch a {
	case ActionAttack, ActionCast, ActionHeal:
		return true
	}
	return false
}

// Cooldown is the minimum time between two uses of this action by the same side
func (a ActionKind) Cooldown() time.Duration {
	if a == ActionAttack {
		return time.Second
	}
	return 2 * time.Second
}

// Amount computes the damage or healing produced from frozen stats
func (a ActionKind) Amount(s Stats) int {
	switch a {
	case ActionAttack:
		return s.Strength + s.Agility
	case ActionCast:
		return 2 * s.Intelligence
	case ActionHeal:
		return s.Faith
	}
	return 0
}

// IsHarmful reports whether the action targets the enemy
func (a ActionKind) IsHarmful() bool {
	return a == ActionAttack || a == ActionCast
}
