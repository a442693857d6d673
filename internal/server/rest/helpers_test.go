package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/rentals/internal/common"
	"github.com/dmitrijs2005/rentals/internal/logging"
	"github.com/dmitrijs2005/rentals/internal/server/auth"
	"github.com/dmitrijs2005/rentals/internal/server/models"
	"github.com/dmitrijs2005/rentals/internal/server/repositories/memory"
	"github.com/dmitrijs2005/rentals/internal/server/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "rest-test-secret"

type testEnv struct {
	handler  http.Handler
	repo     *memory.RepositoryManager
	images   *fakeImageStore
	messages *fakeMessageService
	metrics  *Metrics
	issuer   *auth.Issuer
	key      auth.SigningKey
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	key, err := auth.NewSigningKey(testSecret)
	require.NoError(t, err)

	rm := memory.NewRepositoryManager()
	issuer := auth.NewIssuer(key)
	authSvc, err := services.NewAuthService(nil, rm, auth.NewBcryptHasher(bcrypt.MinCost), issuer)
	require.NoError(t, err)

	images := &fakeImageStore{url: "https://img.example/rentals/pic.png"}
	msgs := &fakeMessageService{}
	metrics := NewMetrics()

	h := &Handlers{
		Auth:           authSvc,
		Users:          services.NewUserService(nil, rm),
		Rentals:        services.NewRentalService(nil, rm, images),
		Messages:       msgs,
		Logger:         logging.Discard(),
		MaxUploadBytes: 1 << 20,
	}

	return &testEnv{
		handler:  NewRouter(h, auth.NewVerifier(key), metrics, logging.Discard()),
		repo:     rm,
		images:   images,
		messages: msgs,
		metrics:  metrics,
		issuer:   issuer,
		key:      key,
	}
}

// do sends a JSON request (body may be nil) with an optional bearer token.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns its token.
func (e *testEnv) register(t *testing.T, name, email, password string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/register", registerRequest{Name: name, Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out tokenResponse
	decode(t, rec, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var out errorResponse
	decode(t, rec, &out)
	return out.Error
}

type fakeImageStore struct {
	url   string
	err   error
	calls int
	name  string
	body  []byte
}

func (f *fakeImageStore) Delete(context.Context, string) error { return nil }

func (f *fakeImageStore) Upload(_ context.Context, filename, _ string, body io.Reader, _ int64) (string, error) {
	f.calls++
	f.name = filename
	f.body, _ = io.ReadAll(body)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeMessageService struct {
	got []services.MessageInput
	err error
}

func (f *fakeMessageService) Send(_ context.Context, in services.MessageInput) (*models.Message, error) {
	f.got = append(f.got, in)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Message{ID: int64(len(f.got)), RentalID: in.RentalID, UserID: in.UserID, Message: in.Message, CreatedAt: time.Now()}, nil
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}
