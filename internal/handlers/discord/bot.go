package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/duelhall/internal/services/duel"
	"github.com/KirkDiggler/duelhall/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// interactionTimeout bounds the service call behind one interaction.
// Discord expects an answer within three seconds.
const interactionTimeout = 2500 * time.Millisecond

// Bot represents the Discord bot instance
type Bot struct {
	session     *discordgo.Session
	commands    map[string]CommandHandler
	commandIDs  map[string]string // Maps command name to command ID
	duelService duel.Service
	narrator    *narrator
	config      *Config
	logger      zerolog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Duel service
	DuelService duel.Service

	// MessagingService adds flavor text. Defaults to the dice-backed service.
	MessagingService messaging.Service

	// Logger defaults to a disabled logger
	Logger *zerolog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.DuelService == nil {
		return nil, errors.New("duel service cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	messagingService := cfg.MessagingService
	if messagingService == nil {
		messagingService, err = messaging.NewService(&messaging.ServiceConfig{})
		if err != nil {
			return nil, fmt.Errorf("failed to create messaging service: %w", err)
		}
	}

	logger = logger.With().Str("component", "discord").Logger()

	bot := &Bot{
		session:     session,
		commands:    make(map[string]CommandHandler),
		commandIDs:  make(map[string]string),
		duelService: cfg.DuelService,
		narrator:    &narrator{messaging: messagingService, logger: logger},
		config:      cfg,
		logger:      logger,
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	duelCmd := NewDuelCommand(b.duelService, b.narrator.messaging, b.logger)
	if err := b.RegisterCommand(duelCmd); err != nil {
		return fmt.Errorf("failed to register duel command: %w", err)
	}

	b.logger.Info().Msg("discord bot is running")
	return nil
}

// Stop removes the registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn().Err(err).Str("command", cmdName).Str("command_id", cmdID).Msg("failed to delete command")
		} else {
			b.logger.Debug().Str("command", cmdName).Str("command_id", cmdID).Msg("deleted command")
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// An empty guild ID registers the command globally
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info().
		Str("command", cmd.GetName()).
		Str("command_id", createdCmd.ID).
		Str("guild_id", b.config.GuildID).
		Msg("registered command")

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		// Handle slash commands
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error().Err(err).Str("command", i.ApplicationCommandData().Name).Msg("failed to handle command")
			}
		}
	case discordgo.InteractionMessageComponent:
		// Handle the action buttons under a duel message
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.Error().Err(err).Msg("failed to handle component interaction")
		}
	}
}

// handleComponentInteraction applies the action encoded in a button
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	button, ok := parseActionButton(customID)
	if !ok {
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	out, err := b.duelService.ApplyAction(ctx, &duel.ApplyActionInput{
		Caller:           callerFromInteraction(i),
		DuelID:           button.DuelID,
		Action:           button.Action,
		ActorCharacterID: button.ActorCharacterID,
	})
	if err != nil {
		return RespondWithEphemeralEmbed(s, i, renderFailure(err, b.narrator.failure(ctx, err)))
	}

	// Replace the previous outcome so the buttons always act on fresh state
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: renderOutcome(out, button.ActorCharacterID, b.narrator.outcome(ctx, out, button.ActorCharacterID)),
	})
}
