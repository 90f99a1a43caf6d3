package duel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/duelhall/internal/common/uuid"
	"github.com/KirkDiggler/duelhall/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	duelKeyPrefix    = "duel:"
	actionsKeyPrefix = "duel_actions:"
)

// Script results shared by the transition and finish scripts
const (
	scriptNotFound  = -1
	scriptNotActive = 0
	scriptApplied   = 1
	scriptCooldown  = 2
)

// transitionScript is the check-and-set for one action. The status, cooldown
// and liveness checks run in the same server-side step as the writes.
//
// KEYS[1] duel hash, KEYS[2] audit list
// ARGV: self hp field, enemy hp field, cooldown field, new self hp,
// new enemy hp, now ms, cooldown ms, audit record json
var transitionScript = redis.NewScript(`
local status = redis.call('HGET', KEYS[1], 'status')
if not status then
  return -1
end
if status ~= 'Active' then
  return 0
end
local last = tonumber(redis.call('HGET', KEYS[1], ARGV[3]) or '0') or 0
if last > 0 and tonumber(ARGV[6]) - last < tonumber(ARGV[7]) then
  return 2
end
local challengerHp = tonumber(redis.call('HGET', KEYS[1], 'challenger_hp') or '0') or 0
local opponentHp = tonumber(redis.call('HGET', KEYS[1], 'opponent_hp') or '0') or 0
if challengerHp <= 0 or opponentHp <= 0 then
  return 0
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[4], ARGV[2], ARGV[5], ARGV[3], ARGV[6])
redis.call('RPUSH', KEYS[2], ARGV[8])
return 1
`)

// finishScript ends a duel only while it is still Active.
//
// KEYS[1] duel hash
// ARGV: terminal status, winner id (may be empty), now ms
var finishScript = redis.NewScript(`
local status = redis.call('HGET', KEYS[1], 'status')
if not status then
  return -1
end
if status ~= 'Active' then
  return 0
end
redis.call('HSET', KEYS[1], 'status', ARGV[1], 'winner_character_id', ARGV[2], 'ended_at', ARGV[3])
return 1
`)

// Config holds configuration for the Redis duel repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// UUIDGenerator generates duel and audit IDs. Defaults to random v4 UUIDs.
	UUIDGenerator uuid.UUID
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	uuid   uuid.UUID
}

// NewRedis creates a new Redis-backed duel repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.New()
	}

	return &redisRepository{
		client: cfg.RedisClient,
		uuid:   gen,
	}, nil
}

func duelKey(duelID string) string {
	return duelKeyPrefix + duelID
}

func actionsKey(duelID string) string {
	return actionsKeyPrefix + duelID
}

// CreateDuel stores a new Active duel hash
func (r *redisRepository) CreateDuel(ctx context.Context, input *CreateDuelInput) (*CreateDuelOutput, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	record := newRecord(r.uuid.NewUUID(), input)

	if err := r.client.HSet(ctx, duelKey(record.ID), record.hashFields()).Err(); err != nil {
		return nil, fmt.Errorf("failed to save duel: %w", err)
	}

	return &CreateDuelOutput{Duel: record.toModel()}, nil
}

// GetDuel retrieves a duel by ID from Redis
func (r *redisRepository) GetDuel(ctx context.Context, input *GetDuelInput) (*models.Duel, error) {
	if input == nil || input.DuelID == "" {
		return nil, errors.New("input and duel ID cannot be empty")
	}

	cmd := r.client.HGetAll(ctx, duelKey(input.DuelID))
	values, err := cmd.Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get duel: %w", err)
	}
	if len(values) == 0 {
		return nil, ErrDuelNotFound
	}

	var record duelRecord
	if err := cmd.Scan(&record); err != nil {
		return nil, fmt.Errorf("failed to decode duel: %w", err)
	}

	return record.toModel(), nil
}

// ApplyTransition runs the transition script against the duel hash
func (r *redisRepository) ApplyTransition(ctx context.Context, input *ApplyTransitionInput) (*ApplyTransitionOutput, error) {
	fields, err := validateTransition(input)
	if err != nil {
		return nil, err
	}

	action := &models.DuelAction{
		ID:               r.uuid.NewUUID(),
		DuelID:           input.DuelID,
		ActorCharacterID: input.ActorCharacterID,
		Action:           input.Action,
		Amount:           input.Amount,
		CreatedAt:        fromMillis(toMillis(input.Now)),
	}
	actionJSON, err := json.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal duel action: %w", err)
	}

	result, err := transitionScript.Run(ctx, r.client,
		[]string{duelKey(input.DuelID), actionsKey(input.DuelID)},
		fields.selfHP,
		fields.enemyHP,
		fields.cooldown,
		input.NewSelfHP,
		input.NewEnemyHP,
		toMillis(input.Now),
		input.Cooldown.Milliseconds(),
		string(actionJSON),
	).Int()
	if err != nil {
		return nil, fmt.Errorf("failed to apply transition: %w", err)
	}

	switch result {
	case scriptApplied:
		return &ApplyTransitionOutput{Applied: true, Action: action}, nil
	case scriptCooldown:
		return &ApplyTransitionOutput{Rejection: RejectionCooldown}, nil
	case scriptNotActive:
		return &ApplyTransitionOutput{Rejection: RejectionNotActive}, nil
	case scriptNotFound:
		return nil, ErrDuelNotFound
	}
	return nil, fmt.Errorf("unexpected transition result %d", result)
}

// FinishDuel runs the finish script against the duel hash
func (r *redisRepository) FinishDuel(ctx context.Context, input *FinishDuelInput) (*FinishDuelOutput, error) {
	if input == nil || input.DuelID == "" {
		return nil, errors.New("input and duel ID cannot be empty")
	}

	result, err := finishScript.Run(ctx, r.client,
		[]string{duelKey(input.DuelID)},
		string(finishStatus(input.WinnerCharacterID)),
		input.WinnerCharacterID,
		toMillis(input.Now),
	).Int()
	if err != nil {
		return nil, fmt.Errorf("failed to finish duel: %w", err)
	}

	switch result {
	case scriptApplied:
		return &FinishDuelOutput{Applied: true}, nil
	case scriptNotActive:
		return &FinishDuelOutput{Applied: false}, nil
	case scriptNotFound:
		return nil, ErrDuelNotFound
	}
	return nil, fmt.Errorf("unexpected finish result %d", result)
}

// ListActions retrieves the audit list of a duel
func (r *redisRepository) ListActions(ctx context.Context, input *ListActionsInput) (*ListActionsOutput, error) {
	if input == nil || input.DuelID == "" {
		return nil, errors.New("input and duel ID cannot be empty")
	}

	raw, err := r.client.LRange(ctx, actionsKey(input.DuelID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get duel actions: %w", err)
	}

	actions := make([]*models.DuelAction, 0, len(raw))
	for _, item := range raw {
		var action models.DuelAction
		if err := json.Unmarshal([]byte(item), &action); err != nil {
			return nil, fmt.Errorf("failed to unmarshal duel action: %w", err)
		}
		actions = append(actions, &action)
	}

	return &ListActionsOutput{Actions: actions}, nil
}
