package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mysticarcade/backend/internal/database"
	"github.com/mysticarcade/backend/internal/models"
)

var (
	// ErrPlayerNotFound is returned when a player is not found
	ErrPlayerNotFound = errors.New("player not found")
	// ErrPlayerExists is returned when trying to create a player that already exists
	ErrPlayerExists = errors.New("player already exists")
)

const playerColumns = `id, email, password_hash, tier, orbs, max_orbs, last_regen_at,
		xp, level, streak, last_login_at, achievements, created_at, updated_at`

// PlayerRepository handles player database operations
type PlayerRepository struct {
	db *database.DB
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *database.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// DB exposes the underlying handle for transaction-scoped callers
func (r *PlayerRepository) DB() *database.DB {
	return r.db
}

// Create creates a new player with a full orb pool
func (r *PlayerRepository) Create(ctx context.Context, player *models.Player) error {
	if player.ID == "" {
		player.ID = uuid.New().String()
	}
	if player.Tier == "" {
		player.Tier = models.TierFree
	}
	if player.Level < 1 {
		player.Level = 1
	}
	if player.Achievements == nil {
		player.Achievements = []string{}
	}
	now := time.Now()
	player.CreatedAt = now
	player.UpdatedAt = now
	if player.LastRegenAt.IsZero() {
		player.LastRegenAt = now
	}

	query := `
		INSERT INTO players (id, email, password_hash, tier, orbs, max_orbs, last_regen_at,
			xp, level, streak, last_login_at, achievements, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.Exec(ctx, query,
		player.ID, player.Email, player.PasswordHash, player.Tier,
		player.Orbs, player.MaxOrbs, player.LastRegenAt,
		player.XP, player.Level, player.Streak, player.LastLoginAt,
		player.Achievements, player.CreatedAt, player.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrPlayerExists
		}
		return fmt.Errorf("failed to create player: %w", err)
	}

	return nil
}

// GetByID retrieves a player by ID
func (r *PlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return r.scanPlayer(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a player by email
func (r *PlayerRepository) GetByEmail(ctx context.Context, email string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE email = $1`
	return r.scanPlayer(r.db.QueryRow(ctx, query, email))
}

// GetForUpdateTx reads a player inside tx with a row lock, serializing
// concurrent balance mutations on the same account.
func (r *PlayerRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1 FOR UPDATE`
	return r.scanPlayer(tx.QueryRow(ctx, query, id))
}

// UpdateOrbsTx persists an orb balance mutation inside tx
func (r *PlayerRepository) UpdateOrbsTx(ctx context.Context, tx pgx.Tx, id string, orbs int, lastRegenAt time.Time) error {
	query := `
		UPDATE players
		SET orbs = $2, last_regen_at = $3, updated_at = $4
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, query, id, orbs, lastRegenAt, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update orbs: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// UpdateProgressTx persists xp/level/streak/achievements inside tx
func (r *PlayerRepository) UpdateProgressTx(ctx context.Context, tx pgx.Tx, player *models.Player) error {
	query := `
		UPDATE players
		SET xp = $2, level = $3, streak = $4, last_login_at = $5, achievements = $6, updated_at = $7
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, query,
		player.ID, player.XP, player.Level, player.Streak,
		player.LastLoginAt, player.Achievements, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// UpdateTier updates a player's tier and adjusts the orb cap accordingly
func (r *PlayerRepository) UpdateTier(ctx context.Context, id string, tier string, maxOrbs int) error {
	if !models.IsValidTier(tier) {
		return fmt.Errorf("invalid tier: %s", tier)
	}

	query := `UPDATE players SET tier = $2, max_orbs = $3, updated_at = $4 WHERE id = $1`
	rowsAffected, err := r.db.Exec(ctx, query, id, tier, maxOrbs, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update tier: %w", err)
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// Delete deletes a player
func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	rowsAffected, err := r.db.Exec(ctx, "DELETE FROM players WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// scanPlayer scans one player row, mapping absence to ErrPlayerNotFound
func (r *PlayerRepository) scanPlayer(row pgx.Row) (*models.Player, error) {
	var p models.Player
	err := row.Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.Tier,
		&p.Orbs, &p.MaxOrbs, &p.LastRegenAt,
		&p.XP, &p.Level, &p.Streak, &p.LastLoginAt,
		&p.Achievements, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
	return &p, nil
}

// isUniqueViolation checks if an error is a unique constraint violation
func isUniqueViolation(err error) bool {
	// PostgreSQL unique violation error code is 23505
	if err == nil {
		return false
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "23505")
}
