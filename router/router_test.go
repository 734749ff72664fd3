package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Praveen5612/skill-survey-bot/catalog"
	"github.com/Praveen5612/skill-survey-bot/internal/survey/repository"
	"github.com/Praveen5612/skill-survey-bot/internal/survey/service"
	"github.com/Praveen5612/skill-survey-bot/pkg/logger"
	"github.com/Praveen5612/skill-survey-bot/resume"
	"github.com/Praveen5612/skill-survey-bot/socket"
	"github.com/Praveen5612/skill-survey-bot/store"
)

func TestMain(m *testing.M) {
	logger.Init("error")
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()

	st := store.Open(filepath.Join(dir, "data.json"))
	repo := repository.NewSurveyRepository(st)
	cat := catalog.New(filepath.Join(dir, "processes.csv"), filepath.Join(dir, "users.csv"))
	corpus := resume.NewCorpus(filepath.Join(dir, "resumes"))
	hub := socket.NewHub()
	go hub.Run()
	svc := service.NewSurveyService(repo, cat, corpus, hub)

	server := httptest.NewServer(Setup(svc, hub))
	t.Cleanup(server.Close)
	return server
}

func signToken(t *testing.T, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("router-test-secret"))
	require.NoError(t, err)
	return signed
}

func TestHealthzIsOpen(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPIRequiresAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "router-test-secret")
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/surveys")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPIWithToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "router-test-secret")
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/surveys", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin@example.com"))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(body))
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/api/surveys", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
