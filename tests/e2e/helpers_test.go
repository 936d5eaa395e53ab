//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/reading-copilot/internal/adapter/postgres"
	sentencerepo "github.com/heartmarshall/reading-copilot/internal/adapter/postgres/sentence"
	"github.com/heartmarshall/reading-copilot/internal/adapter/postgres/testhelper"
	textrepo "github.com/heartmarshall/reading-copilot/internal/adapter/postgres/text"
	"github.com/heartmarshall/reading-copilot/internal/adapter/provider/openai"
	"github.com/heartmarshall/reading-copilot/internal/adapter/provider/pdf"
	"github.com/heartmarshall/reading-copilot/internal/adapter/provider/webpage"
	ai "github.com/heartmarshall/reading-copilot/internal/analysis"
	"github.com/heartmarshall/reading-copilot/internal/app"
	authpkg "github.com/heartmarshall/reading-copilot/internal/auth"
	"github.com/heartmarshall/reading-copilot/internal/config"
	"github.com/heartmarshall/reading-copilot/internal/resilience"
	"github.com/heartmarshall/reading-copilot/internal/service/analysis"
	"github.com/heartmarshall/reading-copilot/internal/service/reading"
	"github.com/heartmarshall/reading-copilot/internal/transport/middleware"
	"github.com/heartmarshall/reading-copilot/internal/transport/rest"
)

// analysisReply is what the fake model answers for every sentence.
const analysisReply = "```json\n" + `{
  "translation": "译文。",
  "insight": {"tag": "Vocab", "text": "A rare word."},
  "knowledge": [
    {"key": "serendipity", "word": "serendipity", "def": "n. 机缘巧合；意外发现", "clue": "a happy accident", "diff": 5}
  ]
}` + "\n```"

// ---------------------------------------------------------------------------
// Test server
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
	llm    *fakeLLM
}

type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// fakeLLM is an OpenAI-compatible chat completions endpoint.
type fakeLLM struct {
	srv   *httptest.Server
	calls atomic.Int32
	// fail makes every request answer 500.
	fail atomic.Bool
}

func newFakeLLM(t *testing.T) *fakeLLM {
	t.Helper()
	f := &fakeLLM{}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeLLM) serve(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	if f.fail.Load() {
		http.Error(w, `{"error":{"message":"upstream down"}}`, http.StatusInternalServerError)
		return
	}

	var req struct {
		Stream bool `json:"stream"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.Stream {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, part := range []string{"Think ", "about ", "it."} {
			fmt.Fprint(w, chunkLine(part))
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-e2e",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "test-model",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": analysisReply},
		}},
	})
	_, _ = w.Write(b)
}

func chunkLine(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-e2e",
		"object":  "chat.completion.chunk",
		"created": 1700000000,
		"model":   "test-model",
		"choices": []map[string]any{{"index": 0, "delta": map[string]any{"content": content}}},
	})
	return "data: " + string(b) + "\n\n"
}

// setupTestServer wires the full HTTP stack over a containerised database
// and a fake model endpoint. Authentication is required.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	texts := textrepo.New(pool)
	sentences := sentencerepo.New(pool)
	txm := postgres.NewTxManager(pool)

	readingService := reading.NewService(logger, texts, sentences, txm,
		webpage.New(5*time.Second, 1<<20), nil,
		reading.Defaults{PageSize: 20, MaxPageSize: 100},
	).WithPDF(pdf.New(0))

	llm := newFakeLLM(t)
	provider, err := openai.New(openai.Config{
		APIKey:  "sk-test",
		BaseURL: llm.srv.URL + "/v1/",
		Model:   "test-model",
		Timeout: 5 * time.Second,
		Breaker: resilience.BreakerConfig{MaxFailures: 2, ResetTimeout: time.Minute},
	}, logger)
	require.NoError(t, err)

	limiter := ai.NewLimiter(100, time.Minute, time.Minute)
	t.Cleanup(limiter.Stop)

	analysisService := analysis.NewService(logger, analysis.Deps{
		AI:        provider,
		Texts:     texts,
		Sentences: sentences,
		Limiter:   limiter,
	}, 2)

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)

	mux := app.NewRouter(app.Handlers{
		Health:  rest.NewHealthHandler(pool, "test-version").WithLLM(provider),
		Reading: rest.NewReadingHandler(readingService, logger),
		AI:      rest.NewAIHandler(analysisService, logger),
	})

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		}),
		middleware.Auth(jwtMgr, uuid.Nil, logger),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    jwtMgr,
		llm:    llm,
	}
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// newUserToken returns an access token for a fresh user id.
func newUserToken(t *testing.T, ts *testServer) (string, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	tok, err := ts.jwt.GenerateAccessToken(userID, "user")
	require.NoError(t, err)
	return tok, userID
}

// do sends a JSON request and returns the response; the caller closes the body.
func (ts *testServer) do(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, ts.URL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// doJSON sends a request, checks the status and decodes the body into out.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string, wantStatus int, out any) http.Header {
	t.Helper()

	resp := ts.do(t, method, path, body, token)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, wantStatus, resp.StatusCode, "body: %s", raw)

	if out != nil {
		require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
	}
	return resp.Header
}

// upload posts a single-file multipart form; the caller closes the body.
func (ts *testServer) upload(t *testing.T, path, filename string, data []byte, token string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, ts.URL+path, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// errorCode extracts error.code from an error response body.
func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error.Code
}

type textBody struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Content         string          `json:"content"`
	ScaffoldingData json.RawMessage `json:"scaffolding_data"`
	ReadingMode     string          `json:"reading_mode"`
	ScaffoldLevel   int             `json:"scaffold_level"`
	VocabLevel      string          `json:"vocab_level"`
}

type sentenceBody struct {
	ID             int64           `json:"id"`
	TextID         int64           `json:"text_id"`
	SentenceIndex  int             `json:"sentence_index"`
	ParagraphIndex *int            `json:"paragraph_index"`
	Content        string          `json:"content"`
	Translation    *string         `json:"translation"`
	Analysis       json.RawMessage `json:"analysis"`
}

// createText posts a text and returns it.
func createText(t *testing.T, ts *testServer, token, title, content string) textBody {
	t.Helper()
	var out textBody
	ts.doJSON(t, http.MethodPost, "/texts", map[string]any{"title": title, "content": content}, token, http.StatusCreated, &out)
	require.NotZero(t, out.ID)
	return out
}

func listSentences(t *testing.T, ts *testServer, token string, textID int64) []sentenceBody {
	t.Helper()
	var out []sentenceBody
	ts.doJSON(t, http.MethodGet, fmt.Sprintf("/texts/%d/sentences", textID), nil, token, http.StatusOK, &out)
	return out
}

func sseLines(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "data: ") {
			out = append(out, strings.TrimPrefix(line, "data: "))
		}
	}
	return out
}
