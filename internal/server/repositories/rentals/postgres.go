// Package rentals provides PostgreSQL-backed storage for rental listings.
package rentals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rentals/internal/common"
	"github.com/dmitrijs2005/rentals/internal/dbx"
	"github.com/dmitrijs2005/rentals/internal/server/models"
)

// PostgresRepository implements rental storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns every rental ordered by id.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Rental, error) {
	query := `
		SELECT id, name, surface, price, picture, description, owner_id, created_at, updated_at
		FROM rentals
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select rentals: %w", err)
	}
	defer rows.Close()

	result := []*models.Rental{}
	for rows.Next() {
		var item models.Rental
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Surface, &item.Price, &item.Picture, &item.Description,
			&item.OwnerID, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns the rental or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Rental, error) {
	query := `
		SELECT id, name, surface, price, picture, description, owner_id, created_at, updated_at
		FROM rentals
		WHERE id = $1
	`
	var item models.Rental
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Surface, &item.Price, &item.Picture, &item.Description,
		&item.OwnerID, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	query := `
		INSERT INTO rentals (name, surface, price, picture, description, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		rental.Name, rental.Surface, rental.Price, rental.Picture, rental.Description, rental.OwnerID,
	).Scan(&rental.ID, &rental.CreatedAt, &rental.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rental, nil
}

// Update rewrites the editable fields of rental (everything except picture
// and owner) and bumps updated_at. An unknown id yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	query := `
		UPDATE rentals
		SET name = $1, surface = $2, price = $3, description = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		rental.Name, rental.Surface, rental.Price, rental.Description, rental.ID,
	).Scan(&rental.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rental, nil
}
