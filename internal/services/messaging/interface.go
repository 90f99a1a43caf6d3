package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/duelhall/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetActionMessage returns a line narrating an applied action
	GetActionMessage(ctx context.Context, input *GetActionMessageInput) (*GetActionMessageOutput, error)

	// GetOutcomeMessage returns the title and line announcing how a duel ended
	GetOutcomeMessage(ctx context.Context, input *GetOutcomeMessageInput) (*GetOutcomeMessageOutput, error)

	// GetErrorMessage returns a user-friendly line for a rejected request
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
