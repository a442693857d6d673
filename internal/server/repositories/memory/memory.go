// Package memory is an in-process RepositoryManager. It keeps the same
// contracts as the PostgreSQL repositories (unique email, ErrorNotFound,
// ordered listing) and is safe for concurrent use. Transactions are not
// modelled: every DBTX argument is ignored.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/rentals/internal/common"
	"github.com/dmitrijs2005/rentals/internal/dbx"
	"github.com/dmitrijs2005/rentals/internal/server/models"
	"github.com/dmitrijs2005/rentals/internal/server/repositories/messages"
	"github.com/dmitrijs2005/rentals/internal/server/repositories/rentals"
	"github.com/dmitrijs2005/rentals/internal/server/repositories/users"
)

// store keeps one id sequence per table, like BIGSERIAL columns.
type store struct {
	mu        sync.Mutex
	now       func() time.Time
	users     map[int64]models.User
	emails    map[string]int64
	rentals   map[int64]models.Rental
	messages  []models.Message
	userSeq   int64
	rentalSeq int64
	msgSeq    int64
}

// RepositoryManager hands out repositories over one shared store.
type RepositoryManager struct {
	s *store
}

func NewRepositoryManager() *RepositoryManager {
	return &RepositoryManager{s: &store{
		now:     time.Now,
		users:   map[int64]models.User{},
		emails:  map[string]int64{},
		rentals: map[int64]models.Rental{},
	}}
}

func (m *RepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *RepositoryManager) Users(dbx.DBTX) users.Repository              { return userRepo{m.s} }
func (m *RepositoryManager) Rentals(dbx.DBTX) rentals.Repository          { return rentalRepo{m.s} }
func (m *RepositoryManager) Messages(dbx.DBTX) messages.Repository        { return messageRepo{m.s} }

// DeleteUser drops a user, leaving any tokens issued for it dangling.
func (m *RepositoryManager) DeleteUser(id int64) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if u, ok := m.s.users[id]; ok {
		delete(m.s.emails, u.Email)
		delete(m.s.users, id)
	}
}

// SentMessages returns a copy of every stored message.
func (m *RepositoryManager) SentMessages() []models.Message {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return append([]models.Message(nil), m.s.messages...)
}

type userRepo struct{ s *store }

func (r userRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.emails[u.Email]; taken {
		return nil, common.ErrorAlreadyExists
	}
	r.s.userSeq++
	u.ID = r.s.userSeq
	u.CreatedAt = r.s.now().UTC()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = *u
	r.s.emails[u.Email] = u.ID
	return u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.s.emails[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := r.s.users[id]
	return &u, nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

type rentalRepo struct{ s *store }

func (r rentalRepo) List(context.Context) ([]*models.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*models.Rental, 0, len(r.s.rentals))
	for _, item := range r.s.rentals {
		out = append(out, &item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r rentalRepo) GetByID(_ context.Context, id int64) (*models.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.rentals[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &item, nil
}

func (r rentalRepo) Create(_ context.Context, rental *models.Rental) (*models.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.rentalSeq++
	rental.ID = r.s.rentalSeq
	rental.CreatedAt = r.s.now().UTC()
	rental.UpdatedAt = rental.CreatedAt
	r.s.rentals[rental.ID] = *rental
	return rental, nil
}

func (r rentalRepo) Update(_ context.Context, rental *models.Rental) (*models.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.rentals[rental.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cur.Name = rental.Name
	cur.Surface = rental.Surface
	cur.Price = rental.Price
	cur.Description = rental.Description
	cur.UpdatedAt = r.s.now().UTC()
	r.s.rentals[cur.ID] = cur

	rental.UpdatedAt = cur.UpdatedAt
	return rental, nil
}

type messageRepo struct{ s *store }

func (r messageRepo) Create(_ context.Context, msg *models.Message) (*models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.msgSeq++
	msg.ID = r.s.msgSeq
	msg.CreatedAt = r.s.now().UTC()
	r.s.messages = append(r.s.messages, *msg)
	return msg, nil
}
