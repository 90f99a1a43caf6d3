package duel

import (
	"time"

	"github.com/KirkDiggler/duelhall/internal/models"
)

// duelRecord is the flat storage shape of a duel.
// Timestamps are unix milliseconds; zero means unset.
type duelRecord struct {
	ID                    string `redis:"id"`
	ChallengerCharacterID string `redis:"challenger_character_id"`
	OpponentCharacterID   string `redis:"opponent_character_id"`
	ChallengerUserID      string `redis:"challenger_user_id"`

	ChallengerStrength     int `redis:"challenger_strength"`
	ChallengerAgility      int `redis:"challenger_agility"`
	ChallengerIntelligence int `redis:"challenger_intelligence"`
	ChallengerFaith        int `redis:"challenger_faith"`
	OpponentStrength       int `redis:"opponent_strength"`
	OpponentAgility        int `redis:"opponent_agility"`
	OpponentIntelligence   int `redis:"opponent_intelligence"`
	OpponentFaith          int `redis:"opponent_faith"`

	ChallengerHP int `redis:"challenger_hp"`
	OpponentHP   int `redis:"opponent_hp"`

	ChallengerLastAttack int64 `redis:"challenger_last_attack"`
	ChallengerLastCast   int64 `redis:"challenger_last_cast"`
	ChallengerLastHeal   int64 `redis:"challenger_last_heal"`
	OpponentLastAttack   int64 `redis:"opponent_last_attack"`
	OpponentLastCast     int64 `redis:"opponent_last_cast"`
	OpponentLastHeal     int64 `redis:"opponent_last_heal"`

	Status            string `redis:"status"`
	StartedAt         int64  `redis:"started_at"`
	EndedAt           int64  `redis:"ended_at"`
	WinnerCharacterID string `redis:"winner_character_id"`
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func optionalTime(value int64) *time.Time {
	if value == 0 {
		return nil
	}
	t := fromMillis(value)
	return &t
}

func newRecord(id string, input *CreateDuelInput) *duelRecord {
	return &duelRecord{
		ID:                     id,
		ChallengerCharacterID:  input.ChallengerCharacterID,
		OpponentCharacterID:    input.OpponentCharacterID,
		ChallengerUserID:       input.ChallengerUserID,
		ChallengerStrength:     input.ChallengerStats.Strength,
		ChallengerAgility:      input.ChallengerStats.Agility,
		ChallengerIntelligence: input.ChallengerStats.Intelligence,
		ChallengerFaith:        input.ChallengerStats.Faith,
		OpponentStrength:       input.OpponentStats.Strength,
		OpponentAgility:        input.OpponentStats.Agility,
		OpponentIntelligence:   input.OpponentStats.Intelligence,
		OpponentFaith:          input.OpponentStats.Faith,
		ChallengerHP:           input.ChallengerHP,
		OpponentHP:             input.OpponentHP,
		Status:                 string(models.DuelStatusActive),
		StartedAt:              toMillis(input.StartedAt),
	}
}

func (r *duelRecord) toModel() *models.Duel {
	return &models.Duel{
		ID: r.ID,
		Challenger: models.Combatant{
			CharacterID: r.ChallengerCharacterID,
			Stats: models.Stats{
				Strength:     r.ChallengerStrength,
				Agility:      r.ChallengerAgility,
				Intelligence: r.ChallengerIntelligence,
				Faith:        r.ChallengerFaith,
			},
			HP: r.ChallengerHP,
			Cooldowns: models.Cooldowns{
				Attack: optionalTime(r.ChallengerLastAttack),
				Cast:   optionalTime(r.ChallengerLastCast),
				Heal:   optionalTime(r.ChallengerLastHeal),
			},
		},
		Opponent: models.Combatant{
			CharacterID: r.OpponentCharacterID,
			Stats: models.Stats{
				Strength:     r.OpponentStrength,
				Agility:      r.OpponentAgility,
				Intelligence: r.OpponentIntelligence,
				Faith:        r.OpponentFaith,
			},
			HP: r.OpponentHP,
			Cooldowns: models.Cooldowns{
				Attack: optionalTime(r.OpponentLastAttack),
				Cast:   optionalTime(r.OpponentLastCast),
				Heal:   optionalTime(r.OpponentLastHeal),
			},
		},
		ChallengerUserID:  r.ChallengerUserID,
		Status:            models.DuelStatus(r.Status),
		StartedAt:         fromMillis(r.StartedAt),
		EndedAt:           optionalTime(r.EndedAt),
		WinnerCharacterID: r.WinnerCharacterID,
	}
}

// hashFields returns the initial Redis hash for a new duel. Unset
// cooldowns and end time are left out so they read back as zero.
func (r *duelRecord) hashFields() map[string]interface{} {
	return map[string]interface{}{
		fieldID:                    r.ID,
		fieldChallengerCharacterID: r.ChallengerCharacterID,
		fieldOpponentCharacterID:   r.OpponentCharacterID,
		fieldChallengerUserID:      r.ChallengerUserID,
		fieldChallengerStrength:    r.ChallengerStrength,
		fieldChallengerAgility:     r.ChallengerAgility,
		fieldChallengerIntel:       r.ChallengerIntelligence,
		fieldChallengerFaith:       r.ChallengerFaith,
		fieldOpponentStrength:      r.OpponentStrength,
		fieldOpponentAgility:       r.OpponentAgility,
		fieldOpponentIntel:         r.OpponentIntelligence,
		fieldOpponentFaith:         r.OpponentFaith,
		fieldChallengerHP:          r.ChallengerHP,
		fieldOpponentHP:            r.OpponentHP,
		fieldStatus:                r.Status,
		fieldStartedAt:             r.StartedAt,
	}
}
