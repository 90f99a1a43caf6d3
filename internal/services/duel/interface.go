package duel

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/duelhall/internal/services/duel Service

import "context"

// Service defines the interface for duel operations
type Service interface {
	// Challenge starts an Active duel between two characters
	Challenge(ctx context.Context, input *ChallengeInput) (*ChallengeOutput, error)

	// ApplyAction resolves one attack, cast or heal against a duel
	ApplyAction(ctx context.Context, input *ApplyActionInput) (*ApplyActionOutput, error)

	// GetDuel returns a duel and its audit trail to one of its participants
	GetDuel(ctx context.Context, input *GetDuelInput) (*GetDuelOutput, error)
}
