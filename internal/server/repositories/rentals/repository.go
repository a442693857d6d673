package rentals

import (
	"context"

	"github.com/dmitrijs2005/rentals/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Rental, error)
	GetByID(ctx context.Context, id int64) (*models.Rental, error)
	Create(ctx context.Context, rental *models.Rental) (*models.Rental, error)
	Update(ctx context.Context, rental *models.Rental) (*models.Rental, error)
}
