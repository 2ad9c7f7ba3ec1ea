package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avikram/studysync/internal/domain/catalog"
	"github.com/avikram/studysync/internal/infrastructure/logging"
	"github.com/avikram/studysync/internal/shared/types"
)

func newTestRouter(t *testing.T) (*gin.Engine, *catalog.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.NewManager(context.Background(), nil)
	require.NoError(t, err)

	handlers := NewHandlers(cat, logging.NewNop())

	router := gin.New()
	router.GET("/health", handlers.Health)
	api := router.Group("/api")
	api.GET("/getSession", handlers.ListSessions)
	api.POST("/createSession", handlers.CreateSession)
	api.PUT("/:id", handlers.UpdateSession)
	api.DELETE("/delete/:id", handlers.DeleteSession)
	api.PATCH("/toggle/:id", handlers.ToggleSession)
	api.PATCH("/mark/:id", handlers.MarkSession)

	return router, cat
}

func do(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateAndList(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/createSession", types.Draft{
		Title: "Algebra Review", Subject: "Math", Date: "2024-06-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	var created types.Session
	require.NoError(t, json.Unmarshal(body["session"], &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, types.StatusPlanned, created.Status)

	w = do(t, router, http.MethodGet, "/api/getSession", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body = decode(t, w)
	var sessions []types.Session
	require.NoError(t, json.Unmarshal(body["sessions"], &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, "Algebra Review", sessions[0].Title)
}

func TestListEmptyIsArray(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/getSession", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sessions":[]`)
}

func TestCreateValidationError(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/createSession", types.Draft{Subject: "Math"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate(t *testing.T) {
	router, cat := newTestRouter(t)
	s, err := cat.Create(context.Background(), types.Draft{Title: "Algebra", Subject: "Math", Date: "2024-06-01"})
	require.NoError(t, err)

	w := do(t, router, http.MethodPut, "/api/"+s.ID, types.Draft{
		Title: "Algebra II", Subject: "Math", Date: "2024-06-02", Priority: types.PriorityHigh,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	var updated types.Session
	require.NoError(t, json.Unmarshal(body["updatedSession"], &updated))
	assert.Equal(t, "Algebra II", updated.Title)
	assert.Equal(t, types.PriorityHigh, updated.Priority)
}

func TestDeleteUnknownID(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodDelete, "/api/delete/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleAndMark(t *testing.T) {
	router, cat := newTestRouter(t)
	s, err := cat.Create(context.Background(), types.Draft{Title: "Algebra", Subject: "Math", Date: "2024-06-01"})
	require.NoError(t, err)

	w := do(t, router, http.MethodPatch, "/api/toggle/"+s.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	var toggled types.Session
	require.NoError(t, json.Unmarshal(body["updatedSession"], &toggled))
	assert.True(t, toggled.Bookmarked)

	w = do(t, router, http.MethodPatch, "/api/mark/"+s.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body = decode(t, w)
	var marked types.Session
	require.NoError(t, json.Unmarshal(body["updatedSession"], &marked))
	assert.Equal(t, types.StatusCompleted, marked.Status)
	assert.NotNil(t, marked.CompletionDate)
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
