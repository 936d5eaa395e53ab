package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	ai "github.com/heartmarshall/reading-copilot/internal/analysis"
	"github.com/heartmarshall/reading-copilot/internal/domain"
	"github.com/heartmarshall/reading-copilot/internal/service/analysis"
)

var errAIDisabled = errors.New("the analysis service is not configured")

// analysisService defines the AI operations used by AIHandler.
type analysisService interface {
	AnalyzeSentence(ctx context.Context, input analysis.AnalyzeInput) (*analysis.AnalyzeResult, error)
	AnalyzeText(ctx context.Context, textID int64) (*analysis.BatchResult, error)
	Chat(ctx context.Context, input analysis.ChatInput) (string, error)
	ChatStream(ctx context.Context, input analysis.ChatInput) (<-chan ai.Chunk, error)
}

// AIHandler serves sentence analysis and the reading coach chat. A nil
// service answers every request with 503.
type AIHandler struct {
	svc analysisService
	log *slog.Logger
}

// NewAIHandler creates an AIHandler.
func NewAIHandler(svc analysisService, logger *slog.Logger) *AIHandler {
	return &AIHandler{svc: svc, log: logger.With("handler", "ai")}
}

type chatRequest struct {
	Paragraph    string `json:"paragraph"`
	SystemPrompt string `json:"system_prompt"`
	UserQuery    string `json:"user_query"`
	Chip         string `json:"chip"`
}

func (req chatRequest) input() analysis.ChatInput {
	return analysis.ChatInput{
		Paragraph:    req.Paragraph,
		SystemPrompt: req.SystemPrompt,
		Query:        req.UserQuery,
		Chip:         req.Chip,
	}
}

type chatResponse struct {
	Content string `json:"content"`
}

type analyzeResponse struct {
	Sentence sentenceResponse `json:"sentence"`
	Source   string           `json:"source"`
}

type batchResponse struct {
	*analysis.BatchResult
	RetryAfterSeconds int `json:"retry_after_seconds,omitempty"`
}

// AnalyzeSentence handles POST /sentences/{id}/analyze[?force=true].
func (h *AIHandler) AnalyzeSentence(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		handleError(w, r, h.log, errAIDisabled)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid sentence id")
		return
	}
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))

	res, err := h.svc.AnalyzeSentence(r.Context(), analysis.AnalyzeInput{SentenceID: id, Force: force})
	if err != nil {
		if pe, ok := ai.IsParseError(err); ok {
			h.log.WarnContext(r.Context(), "unreadable analysis response",
				slog.Int64("sentence_id", id),
				slog.String("raw", pe.Raw),
			)
		}
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Sentence: toSentenceResponse(res.Sentence),
		Source:   string(res.Source),
	})
}

// AnalyzeText handles POST /texts/{id}/analyze. A batch stopped by the rate
// limit still answers 200 and carries Retry-After.
func (h *AIHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		handleError(w, r, h.log, errAIDisabled)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid text id")
		return
	}

	res, err := h.svc.AnalyzeText(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := batchResponse{BatchResult: res}
	if res.RateLimited {
		resp.RetryAfterSeconds = (&domain.RateLimitError{RetryAfter: res.RetryAfter}).RetryAfterSeconds()
		w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfterSeconds))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Chat handles POST /ai/chat.
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		handleError(w, r, h.log, errAIDisabled)
		return
	}
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	answer, err := h.svc.Chat(r.Context(), req.input())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Content: answer})
}

// ChatStream handles POST /ai/chat/stream. Errors before the first chunk
// are plain JSON errors; later failures arrive in-band as "data: [ERROR]".
func (h *AIHandler) ChatStream(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		handleError(w, r, h.log, errAIDisabled)
		return
	}
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	ctx := r.Context()
	chunks, err := h.svc.ChatStream(ctx, req.input())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	sse, err := newSSEWriter(w)
	if err != nil {
		h.log.ErrorContext(ctx, "event stream unsupported", slog.String("error", err.Error()))
		drain(chunks)
		return
	}

	for c := range chunks {
		if c.Err != nil {
			h.log.WarnContext(ctx, "chat stream failed", slog.String("error", c.Err.Error()))
			_ = sse.Error(c.Err.Error())
			drain(chunks)
			return
		}
		if err := sse.Data(c.Text); err != nil {
			// Client went away; the provider stops once ctx is cancelled.
			drain(chunks)
			return
		}
	}

	if ctx.Err() == nil {
		_ = sse.Done()
	}
}

// Chips handles GET /ai/chips.
func (h *AIHandler) Chips(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ai.Chips)
}

func drain(ch <-chan ai.Chunk) {
	go func() {
		for range ch {
		}
	}()
}
