package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0Rorschach1/midterm-exam/internal/domain"
)

func TestClient_CreateURL(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/urls", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req domain.CreateURLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://example.com", req.URL)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.CreateURLResponse{
			ShortCode:   "abc123",
			ShortURL:    "http://localhost:8080/abc123",
			OriginalURL: req.URL,
			CreatedAt:   createdAt,
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	result, err := c.CreateURL(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "abc123", result.ShortCode)
	assert.Equal(t, "https://example.com", result.OriginalURL)
	assert.True(t, createdAt.Equal(result.CreatedAt))
}

func TestClient_CreateURL_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad input", http.StatusBadRequest)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	result, err := c.CreateURL(context.Background(), "not-a-url")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "status 400")
}

func TestClient_GetURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/urls/abc123", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.URLEntry{
			ID:          1,
			ShortCode:   "abc123",
			OriginalURL: "https://example.com",
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	entry, err := c.GetURL(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", entry.ShortCode)
	assert.Equal(t, "https://example.com", entry.OriginalURL)
}

func TestClient_GetURL_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	entry, err := c.GetURL(context.Background(), "missing")
	require.Error(t, err)
	assert.Nil(t, entry)
	assert.Contains(t, err.Error(), "not found")
}

func TestClient_DeleteURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/urls/abc123", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	err := c.DeleteURL(context.Background(), "abc123")
	assert.NoError(t, err)
}

func TestClient_DeleteURL_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	err := c.DeleteURL(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestClient_ListURLs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/urls", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]*domain.URLEntry{
			{ID: 1, ShortCode: "abc123", OriginalURL: "https://example1.com"},
			{ID: 2, ShortCode: "def456", OriginalURL: "https://example2.com"},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	entries, err := c.ListURLs(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "abc123", entries[0].ShortCode)
	assert.Equal(t, "def456", entries[1].ShortCode)
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	c := NewClient(server.URL)
	_, err := c.ListURLs(ctx)
	assert.Error(t, err)
}
