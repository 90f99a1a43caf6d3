package duel

import (
	"errors"
	"fmt"

	"github.com/KirkDiggler/duelhall/internal/models"
)

// ErrDuelNotFound is returned when a duel is not found
var ErrDuelNotFound = errors.New("duel not found")

// ErrInvalidTransition is returned when a transition names an unknown side or action
var ErrInvalidTransition = errors.New("invalid duel transition")

// Field names shared by the Redis hash and the SQLite columns.
const (
	fieldID                    = "id"
	fieldChallengerCharacterID = "challenger_character_id"
	fieldOpponentCharacterID   = "opponent_character_id"
	fieldChallengerUserID      = "challenger_user_id"
	fieldChallengerStrength    = "challenger_strength"
	fieldChallengerAgility     = "challenger_agility"
	fieldChallengerIntel       = "challenger_intelligence"
	fieldChallengerFaith       = "challenger_faith"
	fieldOpponentStrength      = "opponent_strength"
	fieldOpponentAgility       = "opponent_agility"
	fieldOpponentIntel         = "opponent_intelligence"
	fieldOpponentFaith         = "opponent_faith"
	fieldChallengerHP          = "challenger_hp"
	fieldOpponentHP            = "opponent_hp"
	fieldChallengerLastAttack  = "challenger_last_attack"
	fieldChallengerLastCast    = "challenger_last_cast"
	fieldChallengerLastHeal    = "challenger_last_heal"
	fieldOpponentLastAttack    = "opponent_last_attack"
	fieldOpponentLastCast      = "opponent_last_cast"
	fieldOpponentLastHeal      = "opponent_last_heal"
	fieldStatus                = "status"
	fieldStartedAt             = "started_at"
	fieldEndedAt               = "ended_at"
	fieldWinnerCharacterID     = "winner_character_id"
)

// transitionFields names the storage fields one transition touches
type transitionFields struct {
	selfHP   string
	enemyHP  string
	cooldown string
}

type transitionKey struct {
	side   models.Side
	action models.ActionKind
}

// transitionTable is the complete set of writable field combinations.
var transitionTable = map[transitionKey]transitionFields{
	{models.SideChallenger, models.ActionAttack}: {fieldChallengerHP, fieldOpponentHP, fieldChallengerLastAttack},
	{models.SideChallenger, models.ActionCast}:   {fieldChallengerHP, fieldOpponentHP, fieldChallengerLastCast},
	{models.SideChallenger, models.ActionHeal}:   {fieldChallengerHP, fieldOpponentHP, fieldChallengerLastHeal},
	{models.SideOpponent, models.ActionAttack}:   {fieldOpponentHP, fieldChallengerHP, fieldOpponentLastAttack},
	{models.SideOpponent, models.ActionCast}:     {fieldOpponentHP, fieldChallengerHP, fieldOpponentLastCast},
	{models.SideOpponent, models.ActionHeal}:     {fieldOpponentHP, fieldChallengerHP, fieldOpponentLastHeal},
}

// validateTransition checks the input and resolves its fields from transitionTable
func validateTransition(input *ApplyTransitionInput) (transitionFields, error) {
	if input == nil || input.DuelID == "" {
		return transitionFields{}, errors.New("input and duel ID cannot be empty")
	}
	fields, ok := transitionTable[transitionKey{input.Side, input.Action}]
	if !ok {
		return transitionFields{}, fmt.Errorf("%w: side %q action %q", ErrInvalidTransition, input.Side, input.Action)
	}
	if input.NewSelfHP < 0 || input.NewEnemyHP < 0 {
		return transitionFields{}, fmt.Errorf("%w: negative hp", ErrInvalidTransition)
	}
	if input.Cooldown < 0 {
		return transitionFields{}, fmt.Errorf("%w: negative cooldown", ErrInvalidTransition)
	}
	if input.ActorCharacterID == "" {
		return transitionFields{}, fmt.Errorf("%w: actor cannot be empty", ErrInvalidTransition)
	}
	return fields, nil
}

func validateCreate(input *CreateDuelInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if input.ChallengerCharacterID == "" || input.OpponentCharacterID == "" {
		return errors.New("character IDs cannot be empty")
	}
	if input.ChallengerUserID == "" {
		return errors.New("challenger user ID cannot be empty")
	}
	if input.ChallengerHP < 0 || input.OpponentHP < 0 {
		return errors.New("starting hp cannot be negative")
	}
	if input.StartedAt.IsZero() {
		return errors.New("started at cannot be zero")
	}
	return nil
}

func finishStatus(winnerCharacterID string) models.DuelStatus {
	if winnerCharacterID == "" {
		return models.DuelStatusDraw
	}
	return models.DuelStatusFinished
}
