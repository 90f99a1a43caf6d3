package duel

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/duelhall/internal/repositories/duel Repository

import (
	"context"

	"github.com/KirkDiggler/duelhall/internal/models"
)

// Repository defines the interface for duel persistence
type Repository interface {
	// CreateDuel inserts a new Active duel
	CreateDuel(ctx context.Context, input *CreateDuelInput) (*CreateDuelOutput, error)

	// GetDuel retrieves a duel by ID
	GetDuel(ctx context.Context, input *GetDuelInput) (*models.Duel, error)

	// ApplyTransition atomically checks status and cooldown, then writes HP,
	// the cooldown timestamp and the audit record as one unit
	ApplyTransition(ctx context.Context, input *ApplyTransitionInput) (*ApplyTransitionOutput, error)

	// FinishDuel moves an Active duel to Finished or Draw
	FinishDuel(ctx context.Context, input *FinishDuelInput) (*FinishDuelOutput, error)

	// ListActions returns the audit trail of a duel in the order it was written
	ListActions(ctx context.Context, input *ListActionsInput) (*ListActionsOutput, error)
}
