package discord

import (
	"context"

	"github.com/KirkDiggler/duelhall/internal/models"
	"github.com/KirkDiggler/duelhall/internal/services/duel"
	"github.com/KirkDiggler/duelhall/internal/services/messaging"
	"github.com/rs/zerolog"
)

// flavor is optional narration added to a rendered reply
type flavor struct {
	Title string
	Line  string
}

// narrator asks the messaging service for flavor text. Narration never fails
// a reply: errors are logged and produce empty flavor.
type narrator struct {
	messaging messaging.Service
	logger    zerolog.Logger
}

func (n *narrator) outcome(ctx context.Context, out *duel.ApplyActionOutput, actorID string) flavor {
	if n == nil || n.messaging == nil || out == nil {
		return flavor{}
	}

	if out.Status == models.DuelStatusFinished {
		msg, err := n.messaging.GetOutcomeMessage(ctx, &messaging.GetOutcomeMessageInput{
			Status:     out.Status,
			WinnerName: out.WinnerCharacterID,
			LoserName:  out.LoserCharacterID,
			LootName:   out.LootDisplayName,
		})
		if err != nil {
			n.logger.Debug().Err(err).Str("duel_id", out.DuelID).Msg("no outcome message")
			return flavor{}
		}
		return flavor{Title: msg.Title, Line: msg.Message}
	}

	msg, err := n.messaging.GetActionMessage(ctx, &messaging.GetActionMessageInput{
		ActorName: actorID,
		Action:    out.Action,
		Amount:    out.Amount,
	})
	if err != nil {
		n.logger.Debug().Err(err).Str("duel_id", out.DuelID).Msg("no action message")
		return flavor{}
	}
	return flavor{Line: msg.Message}
}

func (n *narrator) failure(ctx context.Context, err error) flavor {
	if n == nil || n.messaging == nil {
		return flavor{}
	}

	e, ok := duel.AsError(err)
	if !ok {
		return flavor{}
	}

	msg, msgErr := n.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{ErrorCode: string(e.Code)})
	if msgErr != nil {
		n.logger.Debug().Err(msgErr).Str("code", string(e.Code)).Msg("no error message")
		return flavor{}
	}
	return flavor{Line: msg.Message}
}
