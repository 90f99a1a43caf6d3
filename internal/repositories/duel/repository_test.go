package duel

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/duelhall/internal/models"
	"github.com/stretchr/testify/suite"
)

// repositoryContract holds the behaviour every Repository implementation
// must share. Store-specific suites embed it and set repo in SetupTest.
type repositoryContract struct {
	suite.Suite
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *repositoryContract) setupContract(repo Repository) {
	s.repo = repo
	s.ctx = context.Background()
	s.testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
}

func (s *repositoryContract) createTestDuel(challengerHP, opponentHP int) *models.Duel {
	out, err := s.repo.CreateDuel(s.ctx, &CreateDuelInput{
		ChallengerCharacterID: "char-challenger",
		OpponentCharacterID:   "char-opponent",
		ChallengerUserID:      "user-1",
		ChallengerStats:       models.Stats{Strength: 5, Agility: 5, Intelligence: 2, Faith: 3},
		OpponentStats:         models.Stats{Strength: 1, Agility: 2, Intelligence: 4, Faith: 6},
		ChallengerHP:          challengerHP,
		OpponentHP:            opponentHP,
		StartedAt:             s.testNow,
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Duel)
	return out.Duel
}

func (s *repositoryContract) attackInput(duelID string, now time.Time, newEnemyHP int) *ApplyTransitionInput {
	return &ApplyTransitionInput{
		DuelID:           duelID,
		Side:             models.SideChallenger,
		Action:           models.ActionAttack,
		Cooldown:         models.ActionAttack.Cooldown(),
		NewSelfHP:        30,
		NewEnemyHP:       newEnemyHP,
		ActorCharacterID: "char-challenger",
		Amount:           10,
		Now:              now,
	}
}

func (s *repositoryContract) TestCreateAndGetDuel() {
	created := s.createTestDuel(30, 20)
	s.NotEmpty(created.ID)

	got, err := s.repo.GetDuel(s.ctx, &GetDuelInput{DuelID: created.ID})
	s.Require().NoError(err)

	s.Equal(created.ID, got.ID)
	s.Equal("char-challenger", got.Challenger.CharacterID)
	s.Equal("char-opponent", got.Opponent.CharacterID)
	s.Equal("user-1", got.ChallengerUserID)
	s.Equal(models.Stats{Strength: 5, Agility: 5, Intelligence: 2, Faith: 3}, got.Challenger.Stats)
	s.Equal(models.Stats{Strength: 1, Agility: 2, Intelligence: 4, Faith: 6}, got.Opponent.Stats)
	s.Equal(30, got.Challenger.HP)
	s.Equal(20, got.Opponent.HP)
	s.Equal(models.DuelStatusActive, got.Status)
	s.True(s.testNow.Equal(got.StartedAt))
	s.Nil(got.EndedAt)
	s.Empty(got.WinnerCharacterID)
	s.Nil(got.Challenger.Cooldowns.Attack)
	s.Nil(got.Opponent.Cooldowns.Heal)
}

func (s *repositoryContract) TestGetDuelNotFound() {
	_, err := s.repo.GetDuel(s.ctx, &GetDuelInput{DuelID: "missing"})
	s.ErrorIs(err, ErrDuelNotFound)
}

func (s *repositoryContract) TestCreateDuelValidatesInput() {
	_, err := s.repo.CreateDuel(s.ctx, &CreateDuelInput{
		ChallengerCharacterID: "a",
		OpponentCharacterID:   "b",
		StartedAt:             s.testNow,
	})
	s.Error(err)
}

func (s *repositoryContract) TestApplyTransitionWritesStateAndAudit() {
	duel := s.createTestDuel(30, 20)

	out, err := s.repo.ApplyTransition(s.ctx, s.attackInput(duel.ID, s.testNow.Add(time.Second), 10))
	s.Require().NoError(err)
	s.True(out.Applied)
	s.Equal(RejectionNone, out.Rejection)
	s.Require().NotNil(out.Action)
	s.Equal(10, out.Action.Amount)

	got, err := s.repo.GetDuel(s.ctx, &GetDuelInput{DuelID: duel.ID})
	s.Require().NoError(err)
	s.Equal(30, got.Challenger.HP)
	s.Equal(10, got.Opponent.HP)
	s.Require().NotNil(got.Challenger.Cooldowns.Attack)
	s.True(s.testNow.Add(time.Second).Equal(*got.Challenger.Cooldowns.Attack))
	s.Nil(got.Challenger.Cooldowns.Cast)
	s.Nil(got.Opponent.Cooldowns.Attack)

	actions, err := s.repo.ListActions(s.ctx, &ListActionsInput{DuelID: duel.ID})
	s.Require().NoError(err)
	s.Require().Len(actions.Actions, 1)
	s.Equal(duel.ID, actions.Actions[0].DuelID)
	s.Equal("char-challenger", actions.Actions[0].ActorCharacterID)
	s.Equal(models.ActionAttack, actions.Actions[0].Action)
	s.Equal(10, actions.Actions[0].Amount)
}

func (s *repositoryContract) TestApplyTransitionCooldown() {
	duel := s.createTestDuel(30, 100)

	first, err := s.repo.ApplyTransition(s.ctx, s.attackInput(duel.ID, s.testNow, 90))
	s.Require().NoError(err)
	s.Require().True(first.Applied)

	// inside the window nothing is written
	tooSoon, err := s.repo.ApplyTransition(s.ctx, s.attackInput(duel.ID, s.testNow.Add(999*time.Millisecond), 80))
	s.Require().NoError(err)
	s.False(tooSoon.Applied)
	s.Equal(RejectionCooldown, tooSoon.Rejection)
	s.Nil(tooSoon.Action)

	got, err := s.repo.GetDuel(s.ctx, &GetDuelInput{DuelID: duel.ID})
	s.Require().NoError(err)
	s.Equal(90, got.Opponent.HP)

	// exactly the cooldown later is allowed
	onTime, err := s.repo.ApplyTransition(s.ctx, s.attackInput(duel.ID, s.testNow.Add(time.Second), 80))
	s.Require().NoError(err)
	s.True(onTime.Applied)

	actions, err := s.repo.ListActions(s.ctx, &ListActionsInput{DuelID: duel.ID})
	s.Require().NoError(err)
	s.Len(actions.Actions, 2)
}

func (s *repositoryContract) TestCooldownsAreIndependentPerActionAndSide() {
	duel := s.createTestDuel(30, 100)

	_, err := s.repo.ApplyTransition(s.ctx, s.attackInput(duel.ID, s.testNow, 90))
	s.Require().NoError(err)

	cast := s.attackInput(duel.ID, s.testNow, 80)
	cast.Action = models.ActionCast
	cast.Cooldown = models.ActionCast.Cooldown()
	out, err := s.repo.ApplyTransition(s.ctx, cast)
	s.Require().NoError(err)
	s.True(out.Applied)

	counter := &ApplyTransitionInput{
		DuelID:           duel.ID,
		Side:             models.SideOpponent,
		Action:           models.ActionAttack,
		Cooldown:         models.ActionAttack.Cooldown(),
		NewSelfHP:        80,
		NewEnemyHP:       27,
		ActorCharacterID: "char-opponent",
		Amount:           3,
		Now:              s.testNow,
	}
	out, err = s.repo.ApplyTransition(s.ctx, counter)
	s.Require().NoError(err)
	s.True(out.Applied)

	got, err := s.repo.GetDuel(s.ctx, &GetDuelInput{DuelID: duel.ID})
	s.Require().NoError(err)
	s.Equal(27, got.Challenger.HP)
	s.Equal(80, got.Opponent.HP)
	s.NotNil(got.Challenger.Cooldowns.Attack)
	s.NotNil(got.Challenger.Cooldowns.Cast)
	s.NotNil(got.Opponent.Cooldowns.Attack)
}

func (s *repositoryContract) TestApplyTransitionRejectsFinishedDuel() {
	duel := s.createTestDuel(30, 20)

	fin, err := s.repo.FinishDuel(s.ctx, &FinishDuelInput{DuelID: duel.ID, Now: s.testNow})
	s.Require().NoError(err)
	s.Require().True(fin.Applied)

	out, err := s.repo.ApplyTransition(s.ctx, s.attackInput(duel.ID, s.testNow, 10))
	s.Require().NoError(err)
	s.False(out.Applied)
	s.Equal(RejectionNotActive, out.Rejection)
}

func (s *repositoryContract) TestApplyTransitionRejectsDeadSide() {
	duel := s.createTestDuel(30, 5)

	lethal, err := s.repo.ApplyTransition(s.ctx, s.attackInput(duel.ID, s.testNow, 0))
	s.Require().NoError(err)
	s.Require().True(lethal.Applied)

	heal := &ApplyTransitionInput{
		DuelID:           duel.ID,
		Side:             models.SideOpponent,
		Action:           models.ActionHeal,
		Cooldown:         models.ActionHeal.Cooldown(),
		NewSelfHP:        6,
		NewEnemyHP:       30,
		ActorCharacterID: "char-opponent",
		Amount:           6,
		Now:              s.testNow,
	}
	out, err := s.repo.ApplyTransition(s.ctx, heal)
	s.Require().NoError(err)
	s.False(out.Applied)
	s.Equal(RejectionNotActive, out.Rejection)

	got, err := s.repo.GetDuel(s.ctx, &GetDuelInput{DuelID: duel.ID})
	s.Require().NoError(err)
	s.Equal(0, got.Opponent.HP)
}

func (s *repositoryContract) TestApplyTransitionRejectsUnknownFields() {
	duel := s.createTestDuel(30, 20)

	input := s.attackInput(duel.ID, s.testNow, 10)
	input.Side = models.Side("challenger_hp = 0; --")
	_, err := s.repo.ApplyTransition(s.ctx, input)
	s.ErrorIs(err, ErrInvalidTransition)

	input = s.attackInput(duel.ID, s.testNow, 10)
	input.Action = models.ActionKind("dance")
	_, err = s.repo.ApplyTransition(s.ctx, input)
	s.ErrorIs(err, ErrInvalidTransition)

	input = s.attackInput(duel.ID, s.testNow, -1)
	_, err = s.repo.ApplyTransition(s.ctx, input)
	s.ErrorIs(err, ErrInvalidTransition)
}

func (s *repositoryContract) TestApplyTransitionUnknownDuel() {
	_, err := s.repo.ApplyTransition(s.ctx, s.attackInput("missing", s.testNow, 10))
	s.ErrorIs(err, ErrDuelNotFound)
}

func (s *repositoryContract) TestFinishDuelWithWinner() {
	duel := s.createTestDuel(30, 20)
	endedAt := s.testNow.Add(time.Minute)

	out, err := s.repo.FinishDuel(s.ctx, &FinishDuelInput{
		DuelID:            duel.ID,
		WinnerCharacterID: "char-challenger",
		Now:               endedAt,
	})
	s.Require().NoError(err)
	s.True(out.Applied)

	got, err := s.repo.GetDuel(s.ctx, &GetDuelInput{DuelID: duel.ID})
	s.Require().NoError(err)
	s.Equal(models.DuelStatusFinished, got.Status)
	s.Equal("char-challenger", got.WinnerCharacterID)
	s.Require().NotNil(got.EndedAt)
	s.True(endedAt.Equal(*got.EndedAt))
}

func (s *repositoryContract) TestFinishDuelDoesNotOverwriteOutcome() {
	duel := s.createTestDuel(30, 20)

	first, err := s.repo.FinishDuel(s.ctx, &FinishDuelInput{DuelID: duel.ID, Now: s.testNow})
	s.Require().NoError(err)
	s.True(first.Applied)

	second, err := s.repo.FinishDuel(s.ctx, &FinishDuelInput{
		DuelID:            duel.ID,
		WinnerCharacterID: "char-challenger",
		Now:               s.testNow.Add(time.Minute),
	})
	s.Require().NoError(err)
	s.False(second.Applied)

	got, err := s.repo.GetDuel(s.ctx, &GetDuelInput{DuelID: duel.ID})
	s.Require().NoError(err)
	s.Equal(models.DuelStatusDraw, got.Status)
	s.Empty(got.WinnerCharacterID)
	s.True(s.testNow.Equal(*got.EndedAt))
}

func (s *repositoryContract) TestFinishDuelUnknownDuel() {
	_, err := s.repo.FinishDuel(s.ctx, &FinishDuelInput{DuelID: "missing", Now: s.testNow})
	s.ErrorIs(err, ErrDuelNotFound)
}

func (s *repositoryContract) TestConcurrentSameActionAppliesOnce() {
	duel := s.createTestDuel(30, 1000)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
		cooled  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := s.repo.ApplyTransition(s.ctx, s.attackInput(duel.ID, s.testNow, 990))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				return
			}
			if out.Applied {
				applied++
			} else if out.Rejection == RejectionCooldown {
				cooled++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, applied)
	s.Equal(workers-1, cooled)

	actions, err := s.repo.ListActions(s.ctx, &ListActionsInput{DuelID: duel.ID})
	s.Require().NoError(err)
	s.Len(actions.Actions, 1)
}

func (s *repositoryContract) TestListActionsEmpty() {
	duel := s.createTestDuel(30, 20)

	out, err := s.repo.ListActions(s.ctx, &ListActionsInput{DuelID: duel.ID})
	s.Require().NoError(err)
	s.Empty(out.Actions)
}
