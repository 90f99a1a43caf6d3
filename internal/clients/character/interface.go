package character

//go:generate mockgen -package=mocks -destination=mocks/mock_client.go github.com/KirkDiggler/duelhall/internal/clients/character Client

import (
	"context"

	"github.com/KirkDiggler/duelhall/internal/models"
)

// Client reads characters from, and sends duel outcomes to, the character service
type Client interface {
	// Snapshot returns the current state of a character
	Snapshot(ctx context.Context, characterID string) (*models.CharacterSnapshot, error)

	// ResolveDuelLoot asks the character service to move one item instance
	// from the loser to the winner. The service picks the item.
	ResolveDuelLoot(ctx context.Context, input *ResolveDuelLootInput) (*models.LootResult, error)
}
