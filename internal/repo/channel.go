package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/esterlin12/tvplus/internal/models"
	"github.com/lib/pq"
)

// MaxListed caps every channel listing.
const MaxListed = 1000

const channelColumns = `id, name, description, logo, urls, category, is_active, created_by, created_at, updated_at`

// ========================
// REPOSITORY STRUCT
// ========================

type ChannelRepo struct {
	DB *sql.DB
}

func NewChannelRepo(db *sql.DB) *ChannelRepo {
	return &ChannelRepo{DB: db}
}

// ========================
// CREATE CHANNEL
// ========================

func (r *ChannelRepo) Create(ctx context.Context, c *models.Channel) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO channels (id, name, description, logo, urls, category, is_active, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.Description, c.Logo, pq.Array(c.URLs), c.Category, c.IsActive, c.CreatedBy, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert channel: %w", err)
	}
	return nil
}

// ========================
// GET ACTIVE CHANNEL BY ID
// ========================

func (r *ChannelRepo) GetActive(ctx context.Context, id string) (*models.Channel, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+channelColumns+` FROM channels WHERE id = $1 AND is_active = TRUE`,
		id,
	)
	return scanChannel(row)
}

// ========================
// LIST ACTIVE CHANNELS (newest first)
// ========================

// ListActive returns active channels matching filter. Category and Owner match exactly;
// Search is a case-insensitive substring match on name or description.
func (r *ChannelRepo) ListActive(ctx context.Context, filter models.ChannelFilter) ([]models.Channel, error) {
	var (
		where = []string{"is_active = TRUE"}
		args  []any
	)
	if filter.Owner != "" {
		args = append(args, filter.Owner)
		where = append(where, fmt.Sprintf("created_by = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	args = append(args, MaxListed)

	query := `SELECT ` + channelColumns + ` FROM channels WHERE ` + strings.Join(where, " AND ") +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	defer rows.Close()

	channels := []models.Channel{}
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, *c)
	}
	return channels, rows.Err()
}

// ========================
// REPLACE ACTIVE CHANNEL
// ========================

// Replace overwrites every mutable field of an active channel and returns the stored row.
func (r *ChannelRepo) Replace(ctx context.Context, id string, f models.ChannelFields, now models.Timestamp) (*models.Channel, error) {
	row := r.DB.QueryRowContext(ctx,
		`UPDATE channels
		 SET name = $1, description = $2, logo = $3, urls = $4, category = $5, updated_at = $6
		 WHERE id = $7 AND is_active = TRUE
		 RETURNING `+channelColumns,
		f.Name, f.Description, f.Logo, pq.Array(f.URLs), f.Category, now, id,
	)
	return scanChannel(row)
}

// ========================
// SOFT DELETE CHANNEL
// ========================

func (r *ChannelRepo) Deactivate(ctx context.Context, id string, now models.Timestamp) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE channels SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active = TRUE`,
		now, id,
	)
	if err != nil {
		return fmt.Errorf("deactivate channel: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrChannelNotFound
	}
	return nil
}

// ========================
// DISTINCT CATEGORIES
// ========================

func (r *ChannelRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT DISTINCT category FROM channels WHERE is_active = TRUE AND category IS NOT NULL ORDER BY category`,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ========================
// COUNT ACTIVE CHANNELS
// ========================

func (r *ChannelRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM channels WHERE is_active = TRUE`).Scan(&n)
	return n, err
}

func scanChannel(s scanner) (*models.Channel, error) {
	c := &models.Channel{}
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Logo,
		pq.Array(&c.URLs),
		&c.Category,
		&c.IsActive,
		&c.CreatedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("scan channel: %w", err)
	}
	if c.URLs == nil {
		c.URLs = []string{}
	}
	return c, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
