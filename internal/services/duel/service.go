package duel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/duelhall/internal/clients/character"
	"github.com/KirkDiggler/duelhall/internal/common/clock"
	"github.com/KirkDiggler/duelhall/internal/models"
	duelRepo "github.com/KirkDiggler/duelhall/internal/repositories/duel"
	"github.com/KirkDiggler/duelhall/internal/stats"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/KirkDiggler/duelhall/internal/services/duel")

// service implements the Service interface
type service struct {
	repo        duelRepo.Repository
	characters  character.Client
	clock       clock.Clock
	duelTimeout time.Duration
	logger      zerolog.Logger
}

// New creates a new duel service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Repository == nil {
		return nil, ErrNilRepository
	}
	if cfg.CharacterClient == nil {
		return nil, ErrNilCharacterClient
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	timeout := cfg.DuelTimeout
	if timeout <= 0 {
		timeout = DefaultDuelTimeout
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &service{
		repo:        cfg.Repository,
		characters:  cfg.CharacterClient,
		clock:       cfg.Clock,
		duelTimeout: timeout,
		logger:      logger.With().Str("component", "duel_service").Logger(),
	}, nil
}

// Challenge starts an Active duel between two characters
func (s *service) Challenge(ctx context.Context, input *ChallengeInput) (*ChallengeOutput, error) {
	ctx, span := tracer.Start(ctx, "duel.Challenge")
	defer span.End()

	out, err := s.challenge(ctx, input)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.String("duel.id", out.DuelID))
	return out, nil
}

func (s *service) challenge(ctx context.Context, input *ChallengeInput) (*ChallengeOutput, error) {
	if input == nil || input.ChallengerCharacterID == "" || input.OpponentCharacterID == "" {
		return nil, ErrInvalidInput.wrap(errors.New("challenger and opponent character IDs are required"))
	}
	if input.Caller.UserID == "" {
		return nil, ErrInvalidInput.wrap(errors.New("caller user ID is required"))
	}
	if input.ChallengerCharacterID == input.OpponentCharacterID {
		return nil, ErrSelfChallenge
	}

	challenger, err := s.snapshot(ctx, input.ChallengerCharacterID)
	if err != nil {
		return nil, err
	}
	opponent, err := s.snapshot(ctx, input.OpponentCharacterID)
	if err != nil {
		return nil, err
	}

	if challenger.OwnerUserID != input.Caller.UserID {
		return nil, ErrForbidden
	}

	for _, snap := range []*models.CharacterSnapshot{challenger, opponent} {
		if snap.Health <= 0 {
			return nil, ErrInvalidInput.wrap(fmt.Errorf("character %s has no health left", snap.ID))
		}
	}

	created, err := s.repo.CreateDuel(ctx, &duelRepo.CreateDuelInput{
		ChallengerCharacterID: input.ChallengerCharacterID,
		OpponentCharacterID:   input.OpponentCharacterID,
		ChallengerUserID:      input.Caller.UserID,
		ChallengerStats:       challenger.CalculatedStats,
		OpponentStats:         opponent.CalculatedStats,
		ChallengerHP:          challenger.Health,
		OpponentHP:            opponent.Health,
		StartedAt:             s.clock.Now(),
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("challenger", input.ChallengerCharacterID).
			Str("opponent", input.OpponentCharacterID).
			Msg("failed to create duel")
		return nil, ErrStorage.wrap(err)
	}

	s.logger.Info().
		Str("duel_id", created.Duel.ID).
		Str("challenger", input.ChallengerCharacterID).
		Str("opponent", input.OpponentCharacterID).
		Msg("duel started")

	return &ChallengeOutput{
		DuelID: created.Duel.ID,
		Duel:   created.Duel,
	}, nil
}

// ApplyAction resolves one attack, cast or heal against a duel
func (s *service) ApplyAction(ctx context.Context, input *ApplyActionInput) (*ApplyActionOutput, error) {
	ctx, span := tracer.Start(ctx, "duel.ApplyAction")
	defer span.End()

	if input != nil {
		span.SetAttributes(
			attribute.String("duel.id", input.DuelID),
			attribute.String("duel.action", string(input.Action)),
			attribute.String("duel.actor", input.ActorCharacterID),
		)
	}

	out, err := s.applyAction(ctx, input)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.String("duel.status", string(out.Status)))
	return out, nil
}

func (s *service) applyAction(ctx context.Context, input *ApplyActionInput) (*ApplyActionOutput, error) {
	if input == nil || input.DuelID == "" || input.ActorCharacterID == "" {
		return nil, ErrInvalidInput.wrap(errors.New("duel ID and actor character ID are required"))
	}
	if !input.Action.Valid() {
		return nil, ErrInvalidAction.wrap(fmt.Errorf("action %q", input.Action))
	}

	duel, err := s.loadDuel(ctx, input.DuelID)
	if err != nil {
		return nil, err
	}

	side, ok := duel.SideOf(input.ActorCharacterID)
	if !ok {
		return nil, ErrNotAParticipant
	}
	if err := s.authorizeActor(ctx, duel, side, input.Caller); err != nil {
		return nil, err
	}

	if !duel.IsActive() {
		return nil, ErrDuelNotActive
	}

	now := s.clock.Now()

	if duel.Challenger.HP == 0 || duel.Opponent.HP == 0 {
		s.settleStranded(ctx, duel, now)
		return nil, ErrDuelNotActive
	}

	if duel.Expired(now, s.duelTimeout) {
		return nil, s.expire(ctx, duel, now)
	}

	self := duel.Combatant(side)
	enemy := duel.Combatant(side.Enemy())

	cooldown := input.Action.Cooldown()
	if last := self.Cooldowns.LastUsed(input.Action); last != nil && now.Sub(*last) < cooldown {
		return nil, ErrCooldown
	}

	amount := input.Action.Amount(self.Stats)

	newSelfHP, newEnemyHP := self.HP, enemy.HP
	if input.Action.IsHarmful() {
		newEnemyHP = max(0, enemy.HP-amount)
	} else {
		newSelfHP = self.HP + amount
	}

	applied, err := s.repo.ApplyTransition(ctx, &duelRepo.ApplyTransitionInput{
		DuelID:           duel.ID,
		Side:             side,
		Action:           input.Action,
		Cooldown:         cooldown,
		NewSelfHP:        newSelfHP,
		NewEnemyHP:       newEnemyHP,
		ActorCharacterID: input.ActorCharacterID,
		Amount:           amount,
		Now:              now,
	})
	if err != nil {
		switch {
		case errors.Is(err, duelRepo.ErrDuelNotFound):
			return nil, ErrDuelNotFound
		case errors.Is(err, duelRepo.ErrInvalidTransition):
			return nil, ErrInvalidAction.wrap(err)
		}
		s.logger.Error().Err(err).Str("duel_id", duel.ID).Str("action", string(input.Action)).Msg("failed to apply transition")
		return nil, ErrStorage.wrap(err)
	}
	if !applied.Applied {
		if applied.Rejection == duelRepo.RejectionNotActive {
			return nil, ErrDuelNotActive
		}
		return nil, ErrCooldown
	}

	out := &ApplyActionOutput{
		DuelID: duel.ID,
		Status: models.DuelStatusActive,
		Action: input.Action,
		Amount: amount,
	}
	if side == models.SideChallenger {
		out.ChallengerHP, out.OpponentHP = newSelfHP, newEnemyHP
	} else {
		out.ChallengerHP, out.OpponentHP = newEnemyHP, newSelfHP
	}

	s.logger.Debug().
		Str("duel_id", duel.ID).
		Str("action", string(input.Action)).
		Str("actor", input.ActorCharacterID).
		Int("amount", amount).
		Msg("action applied")

	if !input.Action.IsHarmful() || newEnemyHP > 0 {
		return out, nil
	}

	winnerID := self.CharacterID
	loserID := enemy.CharacterID

	finished, err := s.repo.FinishDuel(ctx, &duelRepo.FinishDuelInput{
		DuelID:            duel.ID,
		WinnerCharacterID: winnerID,
		Now:               now,
	})
	if err != nil {
		// the lethal transition is committed; the next access settles the duel
		s.logger.Error().Err(err).Str("duel_id", duel.ID).Msg("failed to finish duel")
		return nil, ErrStorage.wrap(err)
	}
	if !finished.Applied {
		s.logger.Warn().Str("duel_id", duel.ID).Msg("duel ended by another request before finish")
		return nil, ErrDuelNotActive
	}

	out.Status = models.DuelStatusFinished
	out.WinnerCharacterID = winnerID
	out.LoserCharacterID = loserID

	s.logger.Info().
		Str("duel_id", duel.ID).
		Str("winner", winnerID).
		Str("loser", loserID).
		Msg("duel finished")

	s.resolveLoot(ctx, duel.ID, winnerID, loserID, out)

	return out, nil
}

// GetDuel returns a duel and its audit trail to one of its participants
func (s *service) GetDuel(ctx context.Context, input *GetDuelInput) (*GetDuelOutput, error) {
	if input == nil || input.DuelID == "" {
		return nil, ErrInvalidInput.wrap(errors.New("duel ID is required"))
	}

	duel, err := s.loadDuel(ctx, input.DuelID)
	if err != nil {
		return nil, err
	}

	if input.Caller.UserID != duel.ChallengerUserID && !input.Caller.IsGameMaster() {
		opponent, err := s.snapshot(ctx, duel.Opponent.CharacterID)
		if err != nil {
			return nil, err
		}
		if opponent.OwnerUserID != input.Caller.UserID {
			return nil, ErrForbidden
		}
	}

	actions, err := s.repo.ListActions(ctx, &duelRepo.ListActionsInput{DuelID: duel.ID})
	if err != nil {
		return nil, ErrStorage.wrap(err)
	}

	return &GetDuelOutput{
		Duel:    duel,
		Actions: actions.Actions,
	}, nil
}

func (s *service) loadDuel(ctx context.Context, duelID string) (*models.Duel, error) {
	duel, err := s.repo.GetDuel(ctx, &duelRepo.GetDuelInput{DuelID: duelID})
	if err != nil {
		if errors.Is(err, duelRepo.ErrDuelNotFound) {
			return nil, ErrDuelNotFound
		}
		s.logger.Error().Err(err).Str("duel_id", duelID).Msg("failed to load duel")
		return nil, ErrStorage.wrap(err)
	}
	return duel, nil
}

func (s *service) snapshot(ctx context.Context, characterID string) (*models.CharacterSnapshot, error) {
	snap, err := s.characters.Snapshot(ctx, characterID)
	if err != nil {
		if errors.Is(err, character.ErrCharacterNotFound) {
			return nil, ErrCharacterNotFound.wrap(err)
		}
		return nil, ErrUpstream.wrap(err)
	}
	return snap, nil
}

// authorizeActor checks the caller may act for the given side. The challenger
// is pinned at creation; the opponent owner is re-read on every action.
func (s *service) authorizeActor(ctx context.Context, duel *models.Duel, side models.Side, caller Caller) error {
	if side == models.SideChallenger {
		if caller.UserID == "" || caller.UserID != duel.ChallengerUserID {
			return ErrForbidden
		}
		return nil
	}

	opponent, err := s.snapshot(ctx, duel.Opponent.CharacterID)
	if err != nil {
		return err
	}
	if caller.IsGameMaster() {
		return nil
	}
	if caller.UserID == "" || caller.UserID != opponent.OwnerUserID {
		return ErrForbidden
	}
	return nil
}

// expire ends an overdue duel in a draw
func (s *service) expire(ctx context.Context, duel *models.Duel, now time.Time) error {
	finished, err := s.repo.FinishDuel(ctx, &duelRepo.FinishDuelInput{
		DuelID: duel.ID,
		Now:    now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("duel_id", duel.ID).Msg("failed to expire duel")
		return ErrStorage.wrap(err)
	}
	if !finished.Applied {
		return ErrDuelNotActive
	}

	s.logger.Info().
		Str("duel_id", duel.ID).
		Dur("age", now.Sub(duel.StartedAt)).
		Msg("duel expired")
	return ErrTimeout
}

// settleStranded finishes an Active duel whose lethal action was committed
// but whose finish was not
func (s *service) settleStranded(ctx context.Context, duel *models.Duel, now time.Time) {
	winner, loser := duel.Challenger.CharacterID, duel.Opponent.CharacterID
	if duel.Challenger.HP == 0 {
		winner, loser = loser, winner
	}

	finished, err := s.repo.FinishDuel(ctx, &duelRepo.FinishDuelInput{
		DuelID:            duel.ID,
		WinnerCharacterID: winner,
		Now:               now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("duel_id", duel.ID).Msg("failed to settle duel")
		return
	}
	if !finished.Applied {
		return
	}

	s.logger.Info().Str("duel_id", duel.ID).Str("winner", winner).Msg("settled stranded duel")

	var out ApplyActionOutput
	s.resolveLoot(ctx, duel.ID, winner, loser, &out)
}

// resolveLoot asks for the loot transfer. Failure leaves the win in place.
func (s *service) resolveLoot(ctx context.Context, duelID, winnerID, loserID string, out *ApplyActionOutput) {
	loot, err := s.characters.ResolveDuelLoot(ctx, &character.ResolveDuelLootInput{
		DuelID:            duelID,
		WinnerCharacterID: winnerID,
		LoserCharacterID:  loserID,
	})
	if err != nil {
		s.logger.Warn().Err(err).
			Str("duel_id", duelID).
			Str("winner", winnerID).
			Str("loser", loserID).
			Msg("loot transfer not confirmed")
		out.LootConfirmed = false
		out.LootError = err.Error()
		return
	}

	out.Loot = loot
	out.LootConfirmed = true
	if loot != nil && loot.Transferred != nil {
		name := loot.Transferred.ItemName
		if name == "" {
			name = loot.Transferred.ItemID
		}
		out.LootDisplayName = stats.DisplayName(name, loot.Transferred.Bonus)
	}
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	if e, ok := AsError(err); ok {
		span.SetAttributes(attribute.String("duel.error_code", string(e.Code)))
		// expected rejections are not span errors
		switch e.Kind {
		case KindUpstream, KindStorage:
		default:
			return
		}
	}
	span.SetStatus(codes.Error, err.Error())
}
