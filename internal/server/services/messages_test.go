package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/rentals/internal/common"
	"github.com/dmitrijs2005/rentals/internal/server/models"
	"github.com/dmitrijs2005/rentals/internal/server/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageService_Send(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := memory.NewRepositoryManager()
	u := seedUser(t, rm, "ann@x.com")
	r, err := rm.Rentals(nil).Create(context.Background(), &models.Rental{Name: "Loft", OwnerID: u.ID})
	require.NoError(t, err)

	s := NewMessageService(db, rm)
	msg, err := s.Send(context.Background(), MessageInput{Message: "is it free?", UserID: u.ID, RentalID: r.ID})
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)

	sent := rm.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "is it free?", sent[0].Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageService_UnknownIDsRollBack(t *testing.T) {
	rm := memory.NewRepositoryManager()
	u := seedUser(t, rm, "ann@x.com")

	tests := []struct {
		name string
		in   MessageInput
	}{
		{"unknown user", MessageInput{Message: "hi", UserID: 999, RentalID: 1}},
		{"unknown rental", MessageInput{Message: "hi", UserID: u.ID, RentalID: 999}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newSQLMockDB(t)
			mock.ExpectBegin()
			mock.ExpectRollback()

			_, err := NewMessageService(db, rm).Send(context.Background(), tt.in)
			require.ErrorIs(t, err, common.ErrorValidation)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
	assert.Empty(t, rm.SentMessages())
}

func TestMessageService_MissingFields(t *testing.T) {
	s := NewMessageService(nil, memory.NewRepositoryManager())

	for _, in := range []MessageInput{
		{Message: "hi", RentalID: 1},
		{Message: "hi", UserID: 1},
		{Message: "  ", UserID: 1, RentalID: 1},
		{Message: strings.Repeat("m", models.MaxMessageLen+1), UserID: 1, RentalID: 1},
	} {
		_, err := s.Send(context.Background(), in)
		require.ErrorIs(t, err, common.ErrorValidation)
	}
}
