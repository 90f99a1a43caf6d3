package discord

import (
	"context"
	"errors"

	"github.com/KirkDiggler/duelhall/internal/models"
	"github.com/KirkDiggler/duelhall/internal/services/duel"
	"github.com/KirkDiggler/duelhall/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Option names
const (
	optionChallenger = "challenger"
	optionOpponent   = "opponent"
	optionDuel       = "duel"
	optionActor      = "actor"
)

// DuelCommand handles the /duel command
type DuelCommand struct {
	BaseCommand
	duelService duel.Service
	narrator    *narrator
	logger      zerolog.Logger
}

// NewDuelCommand creates a new duel command handler. The messaging service is
// optional and only adds flavor text.
func NewDuelCommand(duelService duel.Service, messagingService messaging.Service, logger zerolog.Logger) *DuelCommand {
	actionOptions := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        optionDuel,
			Description: "Duel ID",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        optionActor,
			Description: "Your character ID in this duel",
			Required:    true,
		},
	}

	options := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "challenge",
			Description: "Challenge another character to a duel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionChallenger,
					Description: "Your character ID",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionOpponent,
					Description: "The character ID you challenge",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "status",
			Description: "Show a duel and its action log",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionDuel,
					Description: "Duel ID",
					Required:    true,
				},
			},
		},
	}
	for _, kind := range models.ActionKinds {
		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        string(kind),
			Description: actionDescriptions[kind],
			Options:     actionOptions,
		})
	}

	return &DuelCommand{
		BaseCommand: BaseCommand{
			Name:        "duel",
			Description: "Fight character duels",
			Options:     options,
		},
		duelService: duelService,
		narrator:    &narrator{messaging: messagingService, logger: logger},
		logger:      logger,
	}
}

var actionDescriptions = map[models.ActionKind]string{
	models.ActionAttack: "Strike for strength + agility damage",
	models.ActionCast:   "Cast for twice your intelligence as damage",
	models.ActionHeal:   "Heal yourself for your faith",
}

// Handle processes a Discord interaction for the duel command
func (c *DuelCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	sub := data.Options[0]
	resp, err := c.dispatch(callerFromInteraction(i), sub.Name, optionValues(sub.Options))
	if err != nil {
		return err
	}
	return RespondWithData(s, i, resp)
}

// dispatch runs a subcommand and renders its reply
func (c *DuelCommand) dispatch(caller duel.Caller, subcommand string, values map[string]string) (*discordgo.InteractionResponseData, error) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	switch subcommand {
	case "challenge":
		out, err := c.duelService.Challenge(ctx, &duel.ChallengeInput{
			Caller:                caller,
			ChallengerCharacterID: values[optionChallenger],
			OpponentCharacterID:   values[optionOpponent],
		})
		if err != nil {
			return c.failureData(ctx, err), nil
		}
		return renderChallenge(out), nil

	case "status":
		out, err := c.duelService.GetDuel(ctx, &duel.GetDuelInput{
			Caller: caller,
			DuelID: values[optionDuel],
		})
		if err != nil {
			return c.failureData(ctx, err), nil
		}
		return renderStatus(out), nil
	}

	action := models.ActionKind(subcommand)
	if !action.Valid() {
		return nil, errors.New("unknown subcommand")
	}

	out, err := c.duelService.ApplyAction(ctx, &duel.ApplyActionInput{
		Caller:           caller,
		DuelID:           values[optionDuel],
		Action:           action,
		ActorCharacterID: values[optionActor],
	})
	if err != nil {
		c.logger.Debug().Err(err).Str("duel_id", values[optionDuel]).Str("action", subcommand).Msg("action rejected")
		return c.failureData(ctx, err), nil
	}
	return renderOutcome(out, values[optionActor], c.narrator.outcome(ctx, out, values[optionActor])), nil
}

func optionValues(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]string {
	values := make(map[string]string, len(options))
	for _, opt := range options {
		values[opt.Name] = opt.StringValue()
	}
	return values
}

func (c *DuelCommand) failureData(ctx context.Context, err error) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{renderFailure(err, c.narrator.failure(ctx, err))},
		Flags:  discordgo.MessageFlagsEphemeral,
	}
}
