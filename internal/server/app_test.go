package server

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/rentals/internal/common"
	"github.com/dmitrijs2005/rentals/internal/server/auth"
	"github.com/dmitrijs2005/rentals/internal/server/config"
	"github.com/dmitrijs2005/rentals/internal/server/repositories/memory"
	"github.com/dmitrijs2005/rentals/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/rentals/internal/server/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type nopImages struct{}

func (nopImages) Delete(context.Context, string) error { return nil }

func (nopImages) Upload(context.Context, string, string, io.Reader, int64) (string, error) {
	return "https://img.example/x.png", nil
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.SecretKey = "app-test-secret"
	c.BcryptCost = bcrypt.MinCost
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCHealthAddr = "127.0.0.1:0"
	c.LogLevel = "error"
	c.ShutdownTimeout = time.Second
	return c
}

// stubDeps swaps the database, repositories and object storage for
// in-process fakes for the duration of the test.
func stubDeps(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	origOpen, origRM, origImages := openDB, newRepositoryManager, newImageStore
	t.Cleanup(func() {
		openDB, newRepositoryManager, newImageStore = origOpen, origRM, origImages
	})

	openDB = func(context.Context, string) (*sql.DB, error) { return db, nil }
	newRepositoryManager = func() repomanager.RepositoryManager { return memory.NewRepositoryManager() }
	newImageStore = func(context.Context, *config.Config) (storage.ImageStore, error) { return nopImages{}, nil }
	return mock
}

func TestNewApp_MissingSecretFailsBeforeIO(t *testing.T) {
	opened := false
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(context.Context, string) (*sql.DB, error) {
		opened = true
		return nil, errors.New("should not be called")
	}

	c := testConfig()
	c.SecretKey = ""

	_, err := NewApp(context.Background(), c)
	assert.ErrorIs(t, err, auth.ErrMissingSigningKey)
	assert.False(t, opened)
}

func TestNewApp_DBError(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(context.Context, string) (*sql.DB, error) { return nil, errors.New("dial tcp: refused") }

	_, err := NewApp(context.Background(), testConfig())
	assert.ErrorContains(t, err, "db init error")
}

func TestNewApp_ImageStoreError(t *testing.T) {
	mock := stubDeps(t)
	mock.ExpectClose()
	newImageStore = func(context.Context, *config.Config) (storage.ImageStore, error) {
		return nil, common.ErrorUploadFailed
	}

	_, err := NewApp(context.Background(), testConfig())
	assert.ErrorIs(t, err, common.ErrorUploadFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApp_HandlerServesAuthFlow(t *testing.T) {
	stubDeps(t)

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	body := bytes.NewBufferString(`{"name":"Zoe","email":"zoe@example.com","password":"pw"}`)
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	app.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rentals", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	mock := stubDeps(t)
	mock.ExpectPing()
	mock.ExpectClose()

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
