package rest

import (
	"encoding/json"
	"net/http"

	"github.com/KirkDiggler/duelhall/internal/models"
	"github.com/KirkDiggler/duelhall/internal/services/duel"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`

	// Status is set for TIMEOUT, where the duel ended in a draw
	Status string `json:"status,omitempty"`
}

type challengeRequest struct {
	ChallengerCharacterID string `json:"challengerCharacterId"`
	OpponentCharacterID   string `json:"opponentCharacterId"`
}

type challengeResponse struct {
	DuelID string `json:"duelId"`
}

type actionRequest struct {
	ActorCharacterID string `json:"actorCharacterId"`
}

type actionResponse struct {
	Status models.DuelStatus `json:"status"`

	// Active outcome
	Action       models.ActionKind `json:"action,omitempty"`
	Amount       *int              `json:"amount,omitempty"`
	ChallengerHP *int              `json:"challengerHp,omitempty"`
	OpponentHP   *int              `json:"opponentHp,omitempty"`

	// Finished outcome
	WinnerCharacterID string             `json:"winnerCharacterId,omitempty"`
	Loot              *models.LootResult `json:"loot,omitempty"`
	LootConfirmed     *bool              `json:"lootConfirmed,omitempty"`
	LootError         string             `json:"lootError,omitempty"`
	LootDisplayName   string             `json:"lootDisplayName,omitempty"`
}

func newActionResponse(out *duel.ApplyActionOutput) actionResponse {
	if out.Status == models.DuelStatusFinished {
		confirmed := out.LootConfirmed
		return actionResponse{
			Status:            out.Status,
			WinnerCharacterID: out.WinnerCharacterID,
			Loot:              out.Loot,
			LootConfirmed:     &confirmed,
			LootError:         out.LootError,
			LootDisplayName:   out.LootDisplayName,
		}
	}

	amount, challengerHP, opponentHP := out.Amount, out.ChallengerHP, out.OpponentHP
	return actionResponse{
		Status:       out.Status,
		Action:       out.Action,
		Amount:       &amount,
		ChallengerHP: &challengerHP,
		OpponentHP:   &opponentHP,
	}
}

type duelResponse struct {
	Duel    *models.Duel         `json:"duel"`
	Actions []*models.DuelAction `json:"actions"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// statusFor maps a failure kind to its HTTP status
func statusFor(kind duel.Kind) int {
	switch kind {
	case duel.KindNotFound:
		return http.StatusNotFound
	case duel.KindForbidden:
		return http.StatusForbidden
	case duel.KindConflict:
		return http.StatusConflict
	case duel.KindTooManyRequests:
		return http.StatusTooManyRequests
	case duel.KindInvalidArgument:
		return http.StatusBadRequest
	case duel.KindUpstream:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
