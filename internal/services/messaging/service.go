package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/duelhall/internal/dice"
	"github.com/KirkDiggler/duelhall/internal/models"
)

// service implements the Service interface
type service struct {
	picker Picker
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	var picker Picker
	if config != nil {
		picker = config.Picker
	}
	if picker == nil {
		picker = dice.New(nil)
	}

	return &service{
		picker: picker,
	}, nil
}

// GetActionMessage returns a line narrating an applied action
func (s *service) GetActionMessage(ctx context.Context, input *GetActionMessageInput) (*GetActionMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if !input.Action.Valid() {
		return nil, fmt.Errorf("unknown action %q", input.Action)
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneEpic
	}

	name := input.ActorName
	n := input.Amount
	var messages []string

	switch {
	case input.Lethal:
		messages = []string{
			fmt.Sprintf("%s lands the final blow for %d. It is over.", name, n),
			fmt.Sprintf("%s strikes true for %d and the hall falls silent.", name, n),
			fmt.Sprintf("One last %s from %s, %d damage, and their rival goes down.", input.Action, name, n),
		}

	case input.Action == models.ActionHeal:
		switch tone {
		case ToneFunny:
			messages = []string{
				fmt.Sprintf("%s slaps on a bandage. +%d HP, and a little dignity.", name, n),
				fmt.Sprintf("%s drinks something that is probably a potion. +%d HP.", name, n),
			}
		default:
			messages = []string{
				fmt.Sprintf("%s calls on their faith and mends %d HP.", name, n),
				fmt.Sprintf("A warm light surrounds %s, restoring %d HP.", name, n),
				fmt.Sprintf("%s catches their breath and recovers %d HP.", name, n),
			}
		}

	case input.Action == models.ActionCast:
		switch tone {
		case ToneFunny:
			messages = []string{
				fmt.Sprintf("%s waves their hands dramatically. Somehow that did %d damage.", name, n),
				fmt.Sprintf("%s mispronounces the incantation. Still %d damage!", name, n),
			}
		default:
			messages = []string{
				fmt.Sprintf("Arcane fire leaps from %s's hands for %d damage.", name, n),
				fmt.Sprintf("%s weaves a spell that tears through for %d.", name, n),
				fmt.Sprintf("The air crackles as %s unleashes %d damage.", name, n),
			}
		}

	default:
		switch tone {
		case ToneFunny:
			messages = []string{
				fmt.Sprintf("%s swings wildly and connects anyway. %d damage.", name, n),
				fmt.Sprintf("%s bonks their rival for %d. Rude.", name, n),
			}
		default:
			messages = []string{
				fmt.Sprintf("%s strikes for %d damage.", name, n),
				fmt.Sprintf("Steel rings as %s hits for %d.", name, n),
				fmt.Sprintf("%s lunges forward and deals %d damage.", name, n),
			}
		}
	}

	return &GetActionMessageOutput{
		Message: s.picker.Pick(messages),
		Tone:    tone,
	}, nil
}

// GetOutcomeMessage returns the title and line announcing how a duel ended
func (s *service) GetOutcomeMessage(ctx context.Context, input *GetOutcomeMessageInput) (*GetOutcomeMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	switch input.Status {
	case models.DuelStatusDraw:
		titles := []string{"Draw!", "Time!", "Stalemate"}
		messages := []string{
			"The sands ran out before either fighter fell.",
			"Both duelists walk away, neither one the victor.",
			"Time is up. Nobody wins this one.",
		}
		return &GetOutcomeMessageOutput{
			Title:   s.picker.Pick(titles),
			Message: s.picker.Pick(messages),
		}, nil

	case models.DuelStatusFinished:
		titles := []string{"Victory!", "Duel Won!", "Flawless!"}
		messages := []string{
			fmt.Sprintf("%s stands over %s, victorious.", input.WinnerName, input.LoserName),
			fmt.Sprintf("%s has bested %s.", input.WinnerName, input.LoserName),
			fmt.Sprintf("The crowd roars for %s. %s will need a moment.", input.WinnerName, input.LoserName),
		}
		message := s.picker.Pick(messages)
		if input.LootName != "" {
			message = fmt.Sprintf("%s They claim %s as a prize.", message, input.LootName)
		}
		return &GetOutcomeMessageOutput{
			Title:   s.picker.Pick(titles),
			Message: message,
		}, nil
	}

	return nil, fmt.Errorf("duel status %q has no outcome", input.Status)
}

// GetErrorMessage returns a user-friendly line for a rejected request
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	var messages []string
	switch input.ErrorCode {
	case "COOLDOWN":
		messages = []string{
			"Easy there. That move needs a second to come back.",
			"Your arms are still recovering from the last one.",
			"Patience! You just did that.",
		}
	case "TIMEOUT":
		messages = []string{
			"Too slow! The duel timed out and ends in a draw.",
			"The referee fell asleep. It's a draw.",
		}
	case "DUEL_NOT_ACTIVE":
		messages = []string{
			"This duel is already over. Let it rest.",
			"The fight is done. Go start a new one.",
		}
	case "NOT_A_PARTICIPANT", "FORBIDDEN":
		messages = []string{
			"That's not your fight to pick.",
			"Nice try, but you can't act for that character.",
		}
	case "SELF_CHALLENGE":
		messages = []string{
			"Fighting yourself? Bold, but no.",
			"You can't duel your own reflection.",
		}
	case "DUEL_NOT_FOUND", "CHARACTER_NOT_FOUND":
		messages = []string{
			"Couldn't find that. Double check the ID?",
			"Nothing by that ID in the hall.",
		}
	default:
		messages = []string{
			"Something went sideways. Try again in a moment.",
			"The hall is in chaos right now. Give it another go.",
		}
	}

	return &GetErrorMessageOutput{
		Message: s.picker.Pick(messages),
		Tone:    tone,
	}, nil
}
