package duel

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KirkDiggler/duelhall/internal/common/uuid"
	"github.com/KirkDiggler/duelhall/internal/models"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// transitionStatements holds one conditional UPDATE per entry of
// transitionTable, built once from the fixed field names.
var transitionStatements = func() map[transitionKey]string {
	stmts := make(map[transitionKey]string, len(transitionTable))
	for key, f := range transitionTable {
		stmts[key] = fmt.Sprintf(`UPDATE duels
   SET %[1]s = ?, %[2]s = ?, %[3]s = ?
 WHERE id = ?
   AND status = 'Active'
   AND (%[3]s IS NULL OR ? - %[3]s >= ?)
   AND challenger_hp > 0
   AND opponent_hp > 0`, f.selfHP, f.enemyHP, f.cooldown)
	}
	return stmts
}()

const selectDuelSQL = `SELECT
    id, challenger_character_id, opponent_character_id, challenger_user_id,
    challenger_strength, challenger_agility, challenger_intelligence, challenger_faith,
    opponent_strength, opponent_agility, opponent_intelligence, opponent_faith,
    challenger_hp, opponent_hp,
    challenger_last_attack, challenger_last_cast, challenger_last_heal,
    opponent_last_attack, opponent_last_cast, opponent_last_heal,
    status, started_at, ended_at, winner_character_id
  FROM duels
 WHERE id = ?`

// SQLiteConfig holds configuration for the SQLite duel repository
type SQLiteConfig struct {
	// Path is the database file
	Path string

	// UUIDGenerator generates duel and audit IDs. Defaults to random v4 UUIDs.
	UUIDGenerator uuid.UUID
}

// sqliteRepository implements the Repository interface using SQLite
type sqliteRepository struct {
	db   *sql.DB
	uuid uuid.UUID
}

// NewSQLite opens the database file and applies the embedded schema
func NewSQLite(cfg *SQLiteConfig) (*sqliteRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}

	dsn := "file:" + filepath.Clean(cfg.Path) +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// SQLite has a single writer; one connection keeps transactions queued
	// in the pool instead of failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.New()
	}

	return &sqliteRepository{db: db, uuid: gen}, nil
}

// Close closes the database handle
func (r *sqliteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CreateDuel inserts a new Active duel row
func (r *sqliteRepository) CreateDuel(ctx context.Context, input *CreateDuelInput) (*CreateDuelOutput, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	record := newRecord(r.uuid.NewUUID(), input)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO duels (
		   id, challenger_character_id, opponent_character_id, challenger_user_id,
		   challenger_strength, challenger_agility, challenger_intelligence, challenger_faith,
		   opponent_strength, opponent_agility, opponent_intelligence, opponent_faith,
		   challenger_hp, opponent_hp, status, started_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.ChallengerCharacterID, record.OpponentCharacterID, record.ChallengerUserID,
		record.ChallengerStrength, record.ChallengerAgility, record.ChallengerIntelligence, record.ChallengerFaith,
		record.OpponentStrength, record.OpponentAgility, record.OpponentIntelligence, record.OpponentFaith,
		record.ChallengerHP, record.OpponentHP, record.Status, record.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save duel: %w", err)
	}

	return &CreateDuelOutput{Duel: record.toModel()}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDuel(row rowScanner) (*duelRecord, error) {
	var (
		record    duelRecord
		cooldowns [6]sql.NullInt64
		endedAt   sql.NullInt64
		winner    sql.NullString
	)
	err := row.Scan(
		&record.ID, &record.ChallengerCharacterID, &record.OpponentCharacterID, &record.ChallengerUserID,
		&record.ChallengerStrength, &record.ChallengerAgility, &record.ChallengerIntelligence, &record.ChallengerFaith,
		&record.OpponentStrength, &record.OpponentAgility, &record.OpponentIntelligence, &record.OpponentFaith,
		&record.ChallengerHP, &record.OpponentHP,
		&cooldowns[0], &cooldowns[1], &cooldowns[2],
		&cooldowns[3], &cooldowns[4], &cooldowns[5],
		&record.Status, &record.StartedAt, &endedAt, &winner,
	)
	if err != nil {
		return nil, err
	}
	record.ChallengerLastAttack = cooldowns[0].Int64
	record.ChallengerLastCast = cooldowns[1].Int64
	record.ChallengerLastHeal = cooldowns[2].Int64
	record.OpponentLastAttack = cooldowns[3].Int64
	record.OpponentLastCast = cooldowns[4].Int64
	record.OpponentLastHeal = cooldowns[5].Int64
	record.EndedAt = endedAt.Int64
	record.WinnerCharacterID = winner.String
	return &record, nil
}

// GetDuel retrieves a duel by ID
func (r *sqliteRepository) GetDuel(ctx context.Context, input *GetDuelInput) (*models.Duel, error) {
	if input == nil || input.DuelID == "" {
		return nil, errors.New("input and duel ID cannot be empty")
	}

	record, err := scanDuel(r.db.QueryRowContext(ctx, selectDuelSQL, input.DuelID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDuelNotFound
		}
		return nil, fmt.Errorf("failed to get duel: %w", err)
	}
	return record.toModel(), nil
}

// ApplyTransition runs the conditional update and the audit insert in one transaction
func (r *sqliteRepository) ApplyTransition(ctx context.Context, input *ApplyTransitionInput) (*ApplyTransitionOutput, error) {
	if _, err := validateTransition(input); err != nil {
		return nil, err
	}
	stmt := transitionStatements[transitionKey{input.Side, input.Action}]

	now := toMillis(input.Now)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transition: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, stmt,
		input.NewSelfHP, input.NewEnemyHP, now,
		input.DuelID,
		now, input.Cooldown.Milliseconds(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to apply transition: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to apply transition: %w", err)
	}

	if affected == 0 {
		rejection, err := r.rejectionReason(ctx, tx, input.DuelID)
		if err != nil {
			return nil, err
		}
		return &ApplyTransitionOutput{Rejection: rejection}, nil
	}

	action := &models.DuelAction{
		ID:               r.uuid.NewUUID(),
		DuelID:           input.DuelID,
		ActorCharacterID: input.ActorCharacterID,
		Action:           input.Action,
		Amount:           input.Amount,
		CreatedAt:        fromMillis(now),
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO duel_actions (id, duel_id, actor_character_id, action_type, amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		action.ID, action.DuelID, action.ActorCharacterID, string(action.Action), action.Amount, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert duel action: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}

	return &ApplyTransitionOutput{Applied: true, Action: action}, nil
}

// rejectionReason tells a missing, ended or dead duel apart from a cooldown conflict
func (r *sqliteRepository) rejectionReason(ctx context.Context, tx *sql.Tx, duelID string) (Rejection, error) {
	var (
		status       string
		challengerHP int
		opponentHP   int
	)
	err := tx.QueryRowContext(ctx,
		`SELECT status, challenger_hp, opponent_hp FROM duels WHERE id = ?`, duelID,
	).Scan(&status, &challengerHP, &opponentHP)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RejectionNone, ErrDuelNotFound
		}
		return RejectionNone, fmt.Errorf("failed to read duel status: %w", err)
	}
	if status != string(models.DuelStatusActive) || challengerHP <= 0 || opponentHP <= 0 {
		return RejectionNotActive, nil
	}
	return RejectionCooldown, nil
}

// FinishDuel ends the duel only while it is still Active
func (r *sqliteRepository) FinishDuel(ctx context.Context, input *FinishDuelInput) (*FinishDuelOutput, error) {
	if input == nil || input.DuelID == "" {
		return nil, errors.New("input and duel ID cannot be empty")
	}

	var winner sql.NullString
	if input.WinnerCharacterID != "" {
		winner = sql.NullString{String: input.WinnerCharacterID, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE duels
		    SET status = ?, winner_character_id = ?, ended_at = ?
		  WHERE id = ? AND status = 'Active'`,
		string(finishStatus(input.WinnerCharacterID)), winner, toMillis(input.Now), input.DuelID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to finish duel: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to finish duel: %w", err)
	}
	if affected > 0 {
		return &FinishDuelOutput{Applied: true}, nil
	}

	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM duels WHERE id = ?`, input.DuelID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDuelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to finish duel: %w", err)
	}
	return &FinishDuelOutput{Applied: false}, nil
}

// ListActions returns the audit trail of a duel
func (r *sqliteRepository) ListActions(ctx context.Context, input *ListActionsInput) (*ListActionsOutput, error) {
	if input == nil || input.DuelID == "" {
		return nil, errors.New("input and duel ID cannot be empty")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, duel_id, actor_character_id, action_type, amount, created_at
		   FROM duel_actions
		  WHERE duel_id = ?
		  ORDER BY seq`,
		input.DuelID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get duel actions: %w", err)
	}
	defer rows.Close()

	actions := []*models.DuelAction{}
	for rows.Next() {
		var (
			action    models.DuelAction
			kind      string
			createdAt int64
		)
		if err := rows.Scan(&action.ID, &action.DuelID, &action.ActorCharacterID, &kind, &action.Amount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan duel action: %w", err)
		}
		action.Action = models.ActionKind(kind)
		action.CreatedAt = fromMillis(createdAt)
		actions = append(actions, &action)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get duel actions: %w", err)
	}

	return &ListActionsOutput{Actions: actions}, nil
}
