package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/rentals/internal/common"
	"github.com/dmitrijs2005/rentals/internal/server/auth"
	"github.com/dmitrijs2005/rentals/internal/server/models"
	"github.com/dmitrijs2005/rentals/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/rentals/internal/server/storage"
)

// RentalInput carries the editable fields of a rental.
type RentalInput struct {
	Name        string
	Surface     int
	Price       float64
	Description string
}

func (in RentalInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	case utf8.RuneCountInString(strings.TrimSpace(in.Name)) > models.MaxRentalNameLen:
		return fmt.Errorf("%w: name longer than %d characters", common.ErrorValidation, models.MaxRentalNameLen)
	case in.Surface < 0:
		return fmt.Errorf("%w: surface must not be negative", common.ErrorValidation)
	case in.Price < 0:
		return fmt.Errorf("%w: price must not be negative", common.ErrorValidation)
	case utf8.RuneCountInString(in.Description) > models.MaxDescriptionLen:
		return fmt.Errorf("%w: description longer than %d characters", common.ErrorValidation, models.MaxDescriptionLen)
	}
	return nil
}

// Picture is an uploaded image file.
type Picture struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type RentalService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      storage.ImageStore
}

func NewRentalService(db *sql.DB, m repomanager.RepositoryManager, images storage.ImageStore) *RentalService {
	return &RentalService{db: db, repomanager: m, images: images}
}

func (s *RentalService) List(ctx context.Context) ([]*models.Rental, error) {
	return s.repomanager.Rentals(s.db).List(ctx)
}

// Get returns the rental with id, or common.ErrorNotFound.
func (s *RentalService) Get(ctx context.Context, id int64) (*models.Rental, error) {
	return s.repomanager.Rentals(s.db).GetByID(ctx, id)
}

// Create uploads the picture and stores a rental owned by the caller. If the
// insert fails the uploaded picture is deleted again.
func (s *RentalService) Create(ctx context.Context, p auth.Principal, in RentalInput, pic Picture) (*models.Rental, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if pic.Body == nil || pic.Size == 0 {
		return nil, fmt.Errorf("%w: picture is required", common.ErrorValidation)
	}

	owner, err := s.owner(ctx, p)
	if err != nil {
		return nil, err
	}

	url, err := s.images.Upload(ctx, pic.Filename, pic.ContentType, pic.Body, pic.Size)
	if err != nil {
		return nil, err
	}

	rental := &models.Rental{
		Name:        strings.TrimSpace(in.Name),
		Surface:     in.Surface,
		Price:       in.Price,
		Picture:     url,
		Description: in.Description,
		OwnerID:     owner.ID,
	}
	created, err := s.repomanager.Rentals(s.db).Create(ctx, rental)
	if err != nil {
		// the row never landed, so nothing references the picture
		if derr := s.images.Delete(context.WithoutCancel(ctx), url); derr != nil {
			return nil, errors.Join(err, fmt.Errorf("remove orphaned picture: %w", derr))
		}
		return nil, err
	}
	return created, nil
}

// Update rewrites the editable fields of rental id. Only its owner may do
// so; anyone else gets common.ErrorForbidden.
func (s *RentalService) Update(ctx context.Context, p auth.Principal, id int64, in RentalInput) (*models.Rental, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Rentals(s.db)
	rental, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.owner(ctx, p)
	if err != nil {
		return nil, err
	}
	if rental.OwnerID != owner.ID {
		return nil, common.ErrorForbidden
	}

	rental.Name = strings.TrimSpace(in.Name)
	rental.Surface = in.Surface
	rental.Price = in.Price
	rental.Description = in.Description
	return repo.Update(ctx, rental)
}

func (s *RentalService) owner(ctx context.Context, p auth.Principal) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, p.Identity)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, auth.ErrIdentityNotFound
		}
		return nil, err
	}
	return user, nil
}
