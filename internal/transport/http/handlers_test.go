package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/0Rorschach1/midterm-exam/internal/domain"
	"github.com/0Rorschach1/midterm-exam/internal/repository"
	"github.com/0Rorschach1/midterm-exam/internal/service/mocks"
	"github.com/0Rorschach1/midterm-exam/internal/shortener"
)

const testServerURL = "http://localhost:8080"

func newTestHandler() (*Handler, *mocks.URLShortener) {
	svc := new(mocks.URLShortener)
	return NewHandler(svc, testServerURL, nil), svc
}

func TestCreateURL_Success(t *testing.T) {
	handler, svc := newTestHandler()

	createdAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	entry := &domain.URLEntry{
		ID:          1,
		ShortCode:   "abc123",
		OriginalURL: "https://example.com",
		CreatedAt:   createdAt,
	}

	svc.On("CreateShortURL", mock.Anything, "https://example.com").Return(entry, nil).Once()

	body, _ := json.Marshal(domain.CreateURLRequest{URL: "https://example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/urls", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateURL(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response domain.CreateURLResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "abc123", response.ShortCode)
	assert.Equal(t, testServerURL+"/abc123", response.ShortURL)
	assert.Equal(t, "https://example.com", response.OriginalURL)
	assert.True(t, createdAt.Equal(response.CreatedAt))

	svc.AssertExpectations(t)
}

func TestCreateURL_InvalidJSON(t *testing.T) {
	handler, svc := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/urls", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()

	handler.CreateURL(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateShortURL", mock.Anything, mock.Anything)
}

func TestCreateURL_MissingURL(t *testing.T) {
	handler, svc := newTestHandler()

	body, _ := json.Marshal(domain.CreateURLRequest{URL: ""})
	req := httptest.NewRequest(http.MethodPost, "/api/urls", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateURL(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateShortURL", mock.Anything, mock.Anything)
}

func TestCreateURL_InvalidURL(t *testing.T) {
	handler, svc := newTestHandler()

	svc.On("CreateShortURL", mock.Anything, "not-a-url").
		Return(nil, assert.AnError).Once()

	body, _ := json.Marshal(domain.CreateURLRequest{URL: "not-a-url"})
	req := httptest.NewRequest(http.MethodPost, "/api/urls", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateURL(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestCreateURL_GenerationExhausted(t *testing.T) {
	handler, svc := newTestHandler()

	svc.On("CreateShortURL", mock.Anything, "https://example.com").
		Return(nil, shortener.ErrGenerationExhausted).Once()

	body, _ := json.Marshal(domain.CreateURLRequest{URL: "https://example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/urls", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateURL(w, req)

	// Exhaustion is a service-side failure, not a client error
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	svc.AssertExpectations(t)
}

func TestCreateURL_MethodNotAllowed(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/urls", nil)
	w := httptest.NewRecorder()

	handler.CreateURL(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestGetURL_Success(t *testing.T) {
	handler, svc := newTestHandler()

	entry := &domain.URLEntry{
		ID:          1,
		ShortCode:   "abc123",
		OriginalURL: "https://example.com",
		CreatedAt:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	svc.On("GetURLInfo", mock.Anything, "abc123").Return(entry, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/urls/abc123", nil)
	w := httptest.NewRecorder()

	handler.GetURL(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got domain.URLEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, entry.ShortCode, got.ShortCode)
	assert.Equal(t, entry.OriginalURL, got.OriginalURL)

	svc.AssertExpectations(t)
}

func TestGetURL_NotFound(t *testing.T) {
	handler, svc := newTestHandler()

	svc.On("GetURLInfo", mock.Anything, "missing").
		Return(nil, repository.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/urls/missing", nil)
	w := httptest.NewRecorder()

	handler.GetURL(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertExpectations(t)
}

func TestGetURL_ServiceError(t *testing.T) {
	handler, svc := newTestHandler()

	svc.On("GetURLInfo", mock.Anything, "abc123").
		Return(nil, assert.AnError).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/urls/abc123", nil)
	w := httptest.NewRecorder()

	handler.GetURL(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	svc.AssertExpectations(t)
}

func TestDeleteURL_Success(t *testing.T) {
	handler, svc := newTestHandler()

	svc.On("DeleteShortURL", mock.Anything, "abc123").Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/urls/abc123", nil)
	w := httptest.NewRecorder()

	handler.DeleteURL(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}

func TestDeleteURL_NotFound(t *testing.T) {
	handler, svc := newTestHandler()

	svc.On("DeleteShortURL", mock.Anything, "missing").
		Return(repository.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/urls/missing", nil)
	w := httptest.NewRecorder()

	handler.DeleteURL(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertExpectations(t)
}

func TestListURLs_Success(t *testing.T) {
	handler, svc := newTestHandler()

	entries := []*domain.URLEntry{
		{ID: 1, ShortCode: "abc123", OriginalURL: "https://example1.com"},
		{ID: 2, ShortCode: "def456", OriginalURL: "https://example2.com"},
	}

	svc.On("GetAllURLs", mock.Anything).Return(entries, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/urls", nil)
	w := httptest.NewRecorder()

	handler.ListURLs(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []*domain.URLEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "abc123", got[0].ShortCode)
	assert.Equal(t, "def456", got[1].ShortCode)

	svc.AssertExpectations(t)
}

func TestListURLs_ServiceError(t *testing.T) {
	handler, svc := newTestHandler()

	svc.On("GetAllURLs", mock.Anything).Return(nil, assert.AnError).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/urls", nil)
	w := httptest.NewRecorder()

	handler.ListURLs(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	svc.AssertExpectations(t)
}

func TestRedirect_Success(t *testing.T) {
	handler, svc := newTestHandler()

	svc.On("GetOriginalURL", mock.Anything, "abc123").
		Return("https://example.com", nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/abc123", nil)
	w := httptest.NewRecorder()

	handler.Redirect(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com", w.Header().Get("Location"))
	svc.AssertExpectations(t)
}

func TestRedirect_NotFound(t *testing.T) {
	handler, svc := newTestHandler()

	svc.On("GetOriginalURL", mock.Anything, "missing").
		Return("", repository.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	w := httptest.NewRecorder()

	handler.Redirect(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertExpectations(t)
}

func TestRedirect_ReservedPaths(t *testing.T) {
	handler, svc := newTestHandler()

	for _, path := range []string{"/", "/api/urls", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()

		handler.Redirect(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code, "path %s", path)
	}

	svc.AssertNotCalled(t, "GetOriginalURL", mock.Anything, mock.Anything)
}

func TestURLsHandler_MethodDispatch(t *testing.T) {
	handler, svc := newTestHandler()

	svc.On("GetAllURLs", mock.Anything).Return([]*domain.URLEntry{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/urls", nil)
	w := httptest.NewRecorder()
	handler.URLsHandler(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPut, "/api/urls", nil)
	w = httptest.NewRecorder()
	handler.URLsHandler(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	svc.AssertExpectations(t)
}

func TestServer_Routes(t *testing.T) {
	svc := new(mocks.URLShortener)
	server := NewServer(svc, "8080", testServerURL, false, nil)

	svc.On("GetOriginalURL", mock.Anything, "abc123").
		Return("https://example.com", nil).Once()

	ts := httptest.NewServer(server.server.Handler)
	defer ts.Close()

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(ts.URL + "/abc123")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	// Metrics endpoint is wired
	resp, err = client.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	svc.AssertExpectations(t)
}

func TestServer_Port(t *testing.T) {
	server := NewServer(new(mocks.URLShortener), "9090", testServerURL, false, nil)
	assert.Equal(t, "9090", server.Port())
}
