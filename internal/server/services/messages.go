package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/rentals/internal/common"
	"github.com/dmitrijs2005/rentals/internal/dbx"
	"github.com/dmitrijs2005/rentals/internal/server/models"
	"github.com/dmitrijs2005/rentals/internal/server/repositories/repomanager"
)

// MessageInput is an inquiry about a rental. Zero ids mean "absent".
type MessageInput struct {
	Message  string
	UserID   int64
	RentalID int64
}

type MessageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewMessageService(db *sql.DB, m repomanager.RepositoryManager) *MessageService {
	return &MessageService{db: db, repomanager: m}
}

// Send stores the message after checking, inside one transaction, that both
// the user and the rental exist. Missing or unknown ids and an empty message
// yield common.ErrorValidation.
func (s *MessageService) Send(ctx context.Context, in MessageInput) (*models.Message, error) {
	switch {
	case in.UserID <= 0:
		return nil, fmt.Errorf("%w: user_id is required", common.ErrorValidation)
	case in.RentalID <= 0:
		return nil, fmt.Errorf("%w: rental_id is required", common.ErrorValidation)
	case strings.TrimSpace(in.Message) == "":
		return nil, fmt.Errorf("%w: message is required", common.ErrorValidation)
	case utf8.RuneCountInString(in.Message) > models.MaxMessageLen:
		return nil, fmt.Errorf("%w: message longer than %d characters", common.ErrorValidation, models.MaxMessageLen)
	}

	var out *models.Message
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).GetByID(ctx, in.UserID); err != nil {
			return notFoundAsValidation(err, "user", in.UserID)
		}
		if _, err := s.repomanager.Rentals(tx).GetByID(ctx, in.RentalID); err != nil {
			return notFoundAsValidation(err, "rental", in.RentalID)
		}

		msg, err := s.repomanager.Messages(tx).Create(ctx, &models.Message{
			RentalID: in.RentalID,
			UserID:   in.UserID,
			Message:  in.Message,
		})
		if err != nil {
			return err
		}
		out = msg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func notFoundAsValidation(err error, what string, id int64) error {
	if errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("%w: %s %d not found", common.ErrorValidation, what, id)
	}
	return err
}
