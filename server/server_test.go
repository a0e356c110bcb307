package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-server/confs"
	"portfolio-server/entities"
	"portfolio-server/repositories"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() confs.Config {
	return confs.Config{
		Host:          "127.0.0.1",
		Port:          5000,
		StorageDriver: confs.DriverMemory,
		SeedContent:   true,
		LogLevel:      "error",
		LogFormat:     "json",
		DedupWindow:   time.Minute,
		SweepInterval: time.Minute,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(testConfig(), repositories.NewMemStorage(true))
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "memory", body["storage"])
}

func TestPortfolioRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/portfolio/hero", "")
	require.Equal(t, http.StatusOK, rec.Code)
	hero := decodeBody[entities.PortfolioContent](t, rec)
	assert.Equal(t, "hero", hero.Section)

	rec = doJSON(t, s, http.MethodGet, "/api/portfolio/skills", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, s, http.MethodPut, "/api/portfolio/hero", `{"section":"hero","title":"X"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	raw := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "X", raw["title"])
	assert.Nil(t, raw["description"])
	assert.Nil(t, raw["content"])
	assert.Nil(t, raw["imageUrl"])
	assert.Nil(t, raw["metadata"])
	assert.EqualValues(t, hero.ID, raw["id"])

	rec = doJSON(t, s, http.MethodPut, "/api/portfolio/hero", `{"title":false}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"title"`)

	rec = doJSON(t, s, http.MethodPut, "/api/portfolio/hero", `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/projects", `{"title":"T","description":"D","featured":false,"tags":"solo"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[entities.Project](t, rec)
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, []string{"solo"}, created.Tags)

	rec = doJSON(t, s, http.MethodGet, "/api/projects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	projects := decodeBody[[]entities.Project](t, rec)
	require.Len(t, projects, 4)
	assert.Equal(t, created.ID, projects[0].ID)

	rec = doJSON(t, s, http.MethodPut, "/api/projects/4", `{"featured":true,"id":99}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[entities.Project](t, rec)
	assert.Equal(t, 4, updated.ID)
	assert.True(t, updated.Featured)
	assert.Equal(t, []string{"solo"}, updated.Tags)

	rec = doJSON(t, s, http.MethodPut, "/api/projects/99", `{"featured":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, s, http.MethodPut, "/api/projects/abc", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/projects", `{"title":"T"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"description"`)

	rec = doJSON(t, s, http.MethodDelete, "/api/projects/4", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/projects/4", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/projects", "")
	assert.Len(t, decodeBody[[]entities.Project](t, rec), 3)
}

func TestContactRoutes(t *testing.T) {
	s := newTestServer(t)
	body := `{"name":"Ada","email":"ada@example.com","projectType":"freelance","message":"hi"}`

	rec := doJSON(t, s, http.MethodPost, "/api/contact", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	first := decodeBody[struct {
		Message   string           `json:"message"`
		Duplicate bool             `json:"duplicate"`
		Contact   entities.Contact `json:"contact"`
	}](t, rec)
	assert.Equal(t, "Message sent successfully", first.Message)
	assert.False(t, first.Duplicate)
	assert.Equal(t, 1, first.Contact.ID)
	assert.Equal(t, "Ada", first.Contact.Name)

	rec = doJSON(t, s, http.MethodPost, "/api/contact", body)
	require.Equal(t, http.StatusOK, rec.Code)
	again := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, again["duplicate"])
	assert.EqualValues(t, first.Contact.ID, again["contact"].(map[string]any)["id"])

	rec = doJSON(t, s, http.MethodPost, "/api/contact", `{"name":"Ada"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/contact", "")
	require.Equal(t, http.StatusOK, rec.Code)
	contacts := decodeBody[[]entities.Contact](t, rec)
	require.Len(t, contacts, 1)
	assert.Equal(t, "freelance", contacts[0].ProjectType)

	rec = doJSON(t, s, http.MethodGet, "/api/cache/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"duplicates":1`)
}

func TestUserRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/users", `{"username":"ada","password":"secret"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")

	rec = doJSON(t, s, http.MethodPost, "/api/users", `{"username":"ada","password":"again"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"ada"`)

	rec = doJSON(t, s, http.MethodGet, "/api/users?username=ada", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/users/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLiveUpdatesReachConnectedPages(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.live.Count() == 1 }, time.Second, 10*time.Millisecond)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/portfolio/about", strings.NewReader(`{"title":"New"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event map[string]any
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "content_updated", event["type"])
	assert.Equal(t, "about", event["section"])

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "pong", event["type"])
}
