package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/reading-copilot/internal/config"
	"github.com/heartmarshall/reading-copilot/internal/domain"
	"github.com/heartmarshall/reading-copilot/internal/service/reading"
	"github.com/heartmarshall/reading-copilot/internal/smarttext"
)

// readingService defines the reading operations used by ReadingHandler.
type readingService interface {
	ListTexts(ctx context.Context) ([]domain.Text, error)
	GetText(ctx context.Context, textID int64) (*domain.Text, error)
	CreateText(ctx context.Context, input reading.CreateTextInput) (*domain.Text, error)
	UpdateText(ctx context.Context, input reading.UpdateTextInput) (*domain.Text, error)
	DeleteText(ctx context.Context, textID int64) error
	UpdateProgress(ctx context.Context, input reading.UpdateProgressInput) (*domain.Text, error)
	ListSentences(ctx context.Context, input reading.ListSentencesInput) ([]domain.Sentence, *domain.ParagraphPage, error)
	UpdateSentence(ctx context.Context, input reading.UpdateSentenceInput) (*domain.Sentence, error)
	RenderParagraphs(ctx context.Context, input reading.RenderInput) ([]reading.RenderedParagraph, *domain.ParagraphPage, error)
	ImportFromURL(ctx context.Context, input reading.ImportInput) (*domain.Text, error)
	ImportPDF(ctx context.Context, input reading.ImportPDFInput) (*domain.Text, error)
}

// ReadingHandler serves texts, sentences, progress and rendering.
type ReadingHandler struct {
	svc readingService
	log *slog.Logger
}

// NewReadingHandler creates a ReadingHandler.
func NewReadingHandler(svc readingService, logger *slog.Logger) *ReadingHandler {
	return &ReadingHandler{svc: svc, log: logger.With("handler", "reading")}
}

type createTextRequest struct {
	Title           string          `json:"title"`
	Content         string          `json:"content"`
	ScaffoldingData json.RawMessage `json:"scaffolding_data"`
}

type updateTextRequest struct {
	Title           *string         `json:"title"`
	Content         *string         `json:"content"`
	ScaffoldingData json.RawMessage `json:"scaffolding_data"`
}

type progressRequest struct {
	ReadingMode        *domain.ReadingMode   `json:"reading_mode"`
	ScaffoldLevel      *domain.ScaffoldLevel `json:"scaffold_level"`
	VocabLevel         *domain.VocabLevel    `json:"vocab_level"`
	CurrentParagraphID *int                  `json:"current_paragraph_id"`
}

type updateSentenceRequest struct {
	Translation *string          `json:"translation"`
	Analysis    *domain.Analysis `json:"analysis"`
}

type importRequest struct {
	URL string `json:"url"`
}

type renderResponse struct {
	Paragraphs []reading.RenderedParagraph `json:"paragraphs"`
	Page       pageResponse                `json:"page"`
}

type pageResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ListTexts handles GET /texts.
func (h *ReadingHandler) ListTexts(w http.ResponseWriter, r *http.Request) {
	texts, err := h.svc.ListTexts(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]textResponse, 0, len(texts))
	for i := range texts {
		out = append(out, toTextResponse(&texts[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetText handles GET /texts/{id}.
func (h *ReadingHandler) GetText(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid text id")
		return
	}

	text, err := h.svc.GetText(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTextResponse(text))
}

// CreateText handles POST /texts.
func (h *ReadingHandler) CreateText(w http.ResponseWriter, r *http.Request) {
	var req createTextRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	text, err := h.svc.CreateText(r.Context(), reading.CreateTextInput{
		Title:           req.Title,
		Content:         req.Content,
		ScaffoldingData: nullToEmpty(req.ScaffoldingData),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTextResponse(text))
}

// UpdateText handles PUT /texts/{id}. An explicit null scaffolding_data
// clears it; an absent one leaves it unchanged.
func (h *ReadingHandler) UpdateText(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid text id")
		return
	}
	var req updateTextRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	text, err := h.svc.UpdateText(r.Context(), reading.UpdateTextInput{
		TextID:          id,
		Title:           req.Title,
		Content:         req.Content,
		ScaffoldingData: req.ScaffoldingData,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTextResponse(text))
}

// DeleteText handles DELETE /texts/{id}.
func (h *ReadingHandler) DeleteText(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid text id")
		return
	}

	if err := h.svc.DeleteText(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateProgress handles PATCH /texts/{id}/progress.
func (h *ReadingHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid text id")
		return
	}
	var req progressRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	text, err := h.svc.UpdateProgress(r.Context(), reading.UpdateProgressInput{
		TextID:             id,
		ReadingMode:        req.ReadingMode,
		ScaffoldLevel:      req.ScaffoldLevel,
		VocabLevel:         req.VocabLevel,
		CurrentParagraphID: req.CurrentParagraphID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTextResponse(text))
}

// ListSentences handles GET /texts/{id}/sentences. With paragraph_page or
// around_sentence_id the response is one page of paragraphs described by
// the X-Paragraph-* headers.
func (h *ReadingHandler) ListSentences(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid text id")
		return
	}
	page, ok1 := queryInt(r, "paragraph_page")
	size, ok2 := queryInt(r, "paragraph_page_size")
	around, ok3 := queryInt64(r, "around_sentence_id")
	if !ok1 || !ok2 || !ok3 {
		badRequest(w, "invalid paging parameters")
		return
	}

	input := reading.ListSentencesInput{TextID: id, Page: page, AroundSentenceID: around}
	if size != nil {
		input.PageSize = *size
	}

	sentences, p, err := h.svc.ListSentences(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	setPageHeaders(w.Header(), p)
	writeJSON(w, http.StatusOK, toSentenceResponses(sentences))
}

// Render handles GET /texts/{id}/render: one page of annotated paragraphs.
// mode, level and vocab_level override the saved progress; revealed and
// toggled carry comma-separated knowledge keys.
func (h *ReadingHandler) Render(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid text id")
		return
	}
	page, ok1 := queryInt(r, "paragraph_page")
	size, ok2 := queryInt(r, "paragraph_page_size")
	level, ok3 := queryInt(r, "level")
	active, ok4 := queryInt64(r, "active_sentence_id")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		badRequest(w, "invalid query parameters")
		return
	}

	q := r.URL.Query()
	input := reading.RenderInput{
		TextID:           id,
		ActiveSentenceID: active,
		Toggles: smarttext.ToggleState{
			RevealedKeys: keySet(q.Get("revealed")),
			Toggled:      keySet(q.Get("toggled")),
		},
	}
	if page != nil {
		input.Page = *page
	}
	if size != nil {
		input.PageSize = *size
	}
	if v := q.Get("mode"); v != "" {
		m := domain.ReadingMode(v)
		input.Mode = &m
	}
	if level != nil {
		l := domain.ScaffoldLevel(*level)
		input.Level = &l
	}
	if v := q.Get("vocab_level"); v != "" {
		vl := domain.VocabLevel(strings.ToUpper(v))
		input.VocabLevel = &vl
	}

	paragraphs, p, err := h.svc.RenderParagraphs(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	setPageHeaders(w.Header(), p)
	writeJSON(w, http.StatusOK, renderResponse{
		Paragraphs: paragraphs,
		Page:       pageResponse{Page: p.Page, PageSize: p.PageSize, Total: p.Total, TotalPages: p.TotalPages},
	})
}

// UpdateSentence handles PUT /sentences/{id}.
func (h *ReadingHandler) UpdateSentence(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid sentence id")
		return
	}
	var req updateSentenceRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	sentence, err := h.svc.UpdateSentence(r.Context(), reading.UpdateSentenceInput{
		SentenceID:  id,
		Translation: req.Translation,
		Analysis:    req.Analysis,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSentenceResponse(sentence))
}

// Import handles POST /texts/import.
func (h *ReadingHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	text, err := h.svc.ImportFromURL(r.Context(), reading.ImportInput{URL: req.URL})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTextResponse(text))
}

// ImportPDF handles POST /texts/import/pdf, a multipart form with a "file"
// part and an optional "title" field.
func (h *ReadingHandler) ImportPDF(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handleError(w, r, h.log, domain.NewValidationError("file", fmt.Sprintf("exceeds %d bytes", tooLarge.Limit)))
			return
		}
		badRequest(w, "multipart form with a file part is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		badRequest(w, "upload could not be read")
		return
	}

	text, err := h.svc.ImportPDF(r.Context(), reading.ImportPDFInput{
		Filename: header.Filename,
		Title:    r.FormValue("title"),
		Data:     data,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTextResponse(text))
}

func keySet(raw string) map[string]bool {
	keys := config.SplitList(raw)
	if len(keys) == 0 {
		return nil
	}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// nullToEmpty treats an explicit JSON null like an absent document.
func nullToEmpty(raw json.RawMessage) json.RawMessage {
	if string(raw) == "null" {
		return nil
	}
	return raw
}
