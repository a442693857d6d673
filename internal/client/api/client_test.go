package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second)
}

func TestRegister(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, map[string]string{"name": "Ann", "email": "ann@example.com", "password": "pw"}, in)

		_, _ = w.Write([]byte(`{"token":"tok-1"}`))
	})

	token, err := c.Register(context.Background(), "Ann", "ann@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	})

	_, err := c.Login(context.Background(), "ann@example.com", "bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "invalid credentials", apiErr.Message)
}

func TestMe(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-2", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":7,"name":"Ann","email":"ann@example.com"}`))
	})

	u, err := c.Me(context.Background(), "tok-2")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "ann@example.com", u.Email)
}

func TestBadRequest(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"identity already exists"}`))
	})

	_, err := c.Register(context.Background(), "Ann", "ann@example.com", "pw")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Login(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrUnavailable)
}
