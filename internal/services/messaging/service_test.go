package messaging

import (
	"context"
	"testing"

	"github.com/KirkDiggler/duelhall/internal/dice"
	"github.com/KirkDiggler/duelhall/internal/models"
	"github.com/stretchr/testify/suite"
)

// firstLine always picks the first candidate
type firstLine struct{}

func (firstLine) Pick(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

type MessagingServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	service Service
}

func (s *MessagingServiceTestSuite) SetupTest() {
	s.ctx = context.Background()

	svc, err := NewService(&ServiceConfig{Picker: firstLine{}})
	s.Require().NoError(err)
	s.service = svc
}

func (s *MessagingServiceTestSuite) TestActionMessage() {
	out, err := s.service.GetActionMessage(s.ctx, &GetActionMessageInput{
		ActorName: "Aria",
		Action:    models.ActionAttack,
		Amount:    12,
	})
	s.Require().NoError(err)
	s.Equal("Aria strikes for 12 damage.", out.Message)
	s.Equal(ToneEpic, out.Tone)
}

func (s *MessagingServiceTestSuite) TestHealMessage() {
	out, err := s.service.GetActionMessage(s.ctx, &GetActionMessageInput{
		ActorName: "Aria",
		Action:    models.ActionHeal,
		Amount:    4,
	})
	s.Require().NoError(err)
	s.Equal("Aria calls on their faith and mends 4 HP.", out.Message)
}

func (s *MessagingServiceTestSuite) TestLethalOverridesActionLines() {
	out, err := s.service.GetActionMessage(s.ctx, &GetActionMessageInput{
		ActorName: "Aria",
		Action:    models.ActionCast,
		Amount:    30,
		Lethal:    true,
	})
	s.Require().NoError(err)
	s.Equal("Aria lands the final blow for 30. It is over.", out.Message)
}

func (s *MessagingServiceTestSuite) TestFunnyTone() {
	out, err := s.service.GetActionMessage(s.ctx, &GetActionMessageInput{
		ActorName:     "Bram",
		Action:        models.ActionCast,
		Amount:        8,
		PreferredTone: ToneFunny,
	})
	s.Require().NoError(err)
	s.Equal(ToneFunny, out.Tone)
	s.Contains(out.Message, "8 damage")
}

func (s *MessagingServiceTestSuite) TestActionMessageRejectsUnknownAction() {
	_, err := s.service.GetActionMessage(s.ctx, &GetActionMessageInput{Action: "dance"})
	s.Error(err)

	_, err = s.service.GetActionMessage(s.ctx, nil)
	s.Error(err)
}

func (s *MessagingServiceTestSuite) TestOutcomeFinishedWithLoot() {
	out, err := s.service.GetOutcomeMessage(s.ctx, &GetOutcomeMessageInput{
		Status:     models.DuelStatusFinished,
		WinnerName: "Aria",
		LoserName:  "Bram",
		LootName:   "Sword of Strength",
	})
	s.Require().NoError(err)
	s.Equal("Victory!", out.Title)
	s.Equal("Aria stands over Bram, victorious. They claim Sword of Strength as a prize.", out.Message)
}

func (s *MessagingServiceTestSuite) TestOutcomeDraw() {
	out, err := s.service.GetOutcomeMessage(s.ctx, &GetOutcomeMessageInput{Status: models.DuelStatusDraw})
	s.Require().NoError(err)
	s.Equal("Draw!", out.Title)
}

func (s *MessagingServiceTestSuite) TestOutcomeRejectsActive() {
	_, err := s.service.GetOutcomeMessage(s.ctx, &GetOutcomeMessageInput{Status: models.DuelStatusActive})
	s.Error(err)
}

func (s *MessagingServiceTestSuite) TestErrorMessages() {
	out, err := s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{ErrorCode: "COOLDOWN"})
	s.Require().NoError(err)
	s.Equal("Easy there. That move needs a second to come back.", out.Message)
	s.Equal(ToneFunny, out.Tone)

	out, err = s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{ErrorCode: "SOMETHING_NEW"})
	s.Require().NoError(err)
	s.Equal("Something went sideways. Try again in a moment.", out.Message)
}

func TestMessagingServiceSuite(t *testing.T) {
	suite.Run(t, new(MessagingServiceTestSuite))
}

func TestDefaultPickerUsesDice(t *testing.T) {
	svc, err := NewService(&ServiceConfig{Picker: dice.New(&dice.Config{Seed: 3})})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := svc.GetOutcomeMessage(context.Background(), &GetOutcomeMessageInput{Status: models.DuelStatusDraw})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Title == "" || out.Message == "" {
		t.Fatalf("expected a title and message, got %+v", out)
	}
}
