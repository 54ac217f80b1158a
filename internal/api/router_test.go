package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"college-qa/internal/api/handlers"
	"college-qa/internal/qa"
	"college-qa/internal/repository"
	"college-qa/internal/service"
	"college-qa/pkg/auth"
	"college-qa/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const knowledgeJSON = `{
  "faqs": [
    {"question": "What is the application deadline?", "answer": "March 1.", "keywords": ["deadline", "apply", "date"], "category": "deadlines"},
    {"question": "How much is the tuition fee?", "answer": "It varies.", "keywords": ["tuition", "fees", "cost"], "category": "fees"}
  ],
  "contact_info": {"phone": "555-0100"}
}`

type testServer struct {
	app        *fiber.App
	jwtManager *auth.JWTManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	hash, err := auth.HashPassword("letmein")
	require.NoError(t, err)
	return newTestServerWithAdmin(t, config.AdminConfig{Username: "admin", PasswordHash: hash})
}

func newTestServerWithAdmin(t *testing.T, admin config.AdminConfig) *testServer {
	t.Helper()
	logger := zap.NewNop()

	path := filepath.Join(t.TempDir(), "knowledge_base.json")
	require.NoError(t, os.WriteFile(path, []byte(knowledgeJSON), 0o644))

	knowledge := service.NewKnowledgeService(repository.NewFileKnowledgeLoader(path, logger), nil, logger)
	require.NoError(t, knowledge.Reload(context.Background()))

	jwtManager := auth.NewJWTManager("secret", time.Hour, 24*time.Hour)

	synth := qa.NewSynthesizer(qa.WithRandom(func(int) int { return 1 }))
	qaService := service.NewQAService(knowledge, synth, false, logger)
	authService := service.NewAuthService(admin, jwtManager, logger)

	app := SetupRouter(
		handlers.NewQAHandler(qaService, knowledge, logger),
		handlers.NewAdminHandler(authService, knowledge, logger),
		jwtManager,
		&config.ServerConfig{CORSAllowOrigins: "*"},
		logger,
	)
	return &testServer{app: app, jwtManager: jwtManager}
}

func (s *testServer) do(t *testing.T, method, target, body, token string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestAsk(t *testing.T) {
	s := newTestServer(t)

	t.Run("high confidence", func(t *testing.T) {
		code, body := s.do(t, http.MethodPost, "/ask", `{"question": "What is the application deadline?"}`, "")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "March 1.", body["answer"])
		assert.Equal(t, "knowledge_base", body["source"])
		assert.Equal(t, "deadlines", body["category"])
		assert.Equal(t, "deadline", body["intent"])
		assert.Equal(t, "What is the application deadline?", body["original_question"])
		assert.NotContains(t, body, "contact_info")
	})

	t.Run("fallback", func(t *testing.T) {
		code, body := s.do(t, http.MethodPost, "/ask", `{"question": "hello there"}`, "")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "fallback", body["source"])
		assert.Equal(t, "unknown", body["category"])
		assert.Equal(t, qa.FallbackAnswers()[1], body["answer"])
		assert.EqualValues(t, 0, body["confidence"])
		assert.Equal(t, map[string]any{"phone": "555-0100"}, body["contact_info"])
	})

	t.Run("blank question", func(t *testing.T) {
		code, body := s.do(t, http.MethodPost, "/ask", `{"question": "   "}`, "")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Please provide a question", body["error"])
	})

	t.Run("missing question", func(t *testing.T) {
		code, _ := s.do(t, http.MethodPost, "/ask", `{}`, "")
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("malformed body", func(t *testing.T) {
		code, body := s.do(t, http.MethodPost, "/ask", `{"question":`, "")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Invalid request body", body["error"])
	})
}

func TestSuggestionsAndFAQs(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/suggestions", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["suggestions"], len(qa.PopularQuestions()))

	req := httptest.NewRequest(http.MethodGet, "/api/faqs", nil)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var faqs []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&faqs))
	require.Len(t, faqs, 2)
	assert.Equal(t, "What is the application deadline?", faqs[0]["question"])

	code, body = s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, body["faqs"])
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)

	t.Run("reload requires token", func(t *testing.T) {
		code, _ := s.do(t, http.MethodPost, "/api/v1/admin/reload", "", "")
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("bad credentials", func(t *testing.T) {
		code, _ := s.do(t, http.MethodPost, "/api/v1/admin/auth/login", `{"username":"admin","password":"nope"}`, "")
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("login validation", func(t *testing.T) {
		code, body := s.do(t, http.MethodPost, "/api/v1/admin/auth/login", `{"username":"admin"}`, "")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, body["error"], "password")
	})

	code, body := s.do(t, http.MethodPost, "/api/v1/admin/auth/login", `{"username":"admin","password":"letmein"}`, "")
	require.Equal(t, http.StatusOK, code)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)

	t.Run("reload", func(t *testing.T) {
		code, body := s.do(t, http.MethodPost, "/api/v1/admin/reload", "", token)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "reloaded", body["status"])
		assert.EqualValues(t, 2, body["faqs"])
	})

	t.Run("create faq on file source", func(t *testing.T) {
		code, _ := s.do(t, http.MethodPost, "/api/v1/admin/faqs", `{"question":"Q?","answer":"A."}`, token)
		assert.Equal(t, http.StatusConflict, code)
	})

	t.Run("create faq validation", func(t *testing.T) {
		code, _ := s.do(t, http.MethodPost, "/api/v1/admin/faqs", `{"question":"Q?"}`, token)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("non admin role", func(t *testing.T) {
		other, err := s.jwtManager.GenerateToken("viewer", "viewer")
		require.NoError(t, err)
		code, _ := s.do(t, http.MethodPost, "/api/v1/admin/reload", "", other)
		assert.Equal(t, http.StatusForbidden, code)
	})
}

func TestAdminRoutesDisabledWithoutPasswordHash(t *testing.T) {
	s := newTestServerWithAdmin(t, config.AdminConfig{Username: "admin"})

	forged, err := s.jwtManager.GenerateToken("anyone", auth.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name   string
		target string
		body   string
		token  string
	}{
		{name: "login", target: "/api/v1/admin/auth/login", body: `{"username":"admin","password":""}`},
		{name: "reload with admin token", target: "/api/v1/admin/reload", token: forged},
		{name: "create faq with admin token", target: "/api/v1/admin/faqs", body: `{"question":"Q?","answer":"A."}`, token: forged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := s.do(t, http.MethodPost, tt.target, tt.body, tt.token)
			assert.Equal(t, http.StatusNotFound, code)
		})
	}

	code, body := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}
