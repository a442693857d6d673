package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/rentals/internal/common"
	"github.com/dmitrijs2005/rentals/internal/server/auth"
	"github.com/dmitrijs2005/rentals/internal/server/repositories/memory"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testKey(t *testing.T) auth.SigningKey {
	t.Helper()
	k, err := auth.NewSigningKey("test-secret")
	if err != nil {
		t.Fatalf("NewSigningKey: %v", err)
	}
	return k
}

func newAuthService(t *testing.T, rm *memory.RepositoryManager) *AuthService {
	t.Helper()
	s, err := NewAuthService(nil, rm, auth.NewBcryptHasher(bcrypt.MinCost), auth.NewIssuer(testKey(t)))
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return s
}

type fakeImageStore struct {
	url      string
	err      error
	calls    int
	filename string
	body     []byte
	deleted  []string
	delErr   error
}

func (f *fakeImageStore) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return f.delErr
}

func (f *fakeImageStore) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	f.calls++
	f.filename = filename
	f.body, _ = io.ReadAll(body)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

var errUpload = errors.Join(common.ErrorUploadFailed, errors.New("bucket missing"))
