package app

import (
	"net/http"

	"github.com/heartmarshall/reading-copilot/internal/transport/rest"
)

// Handlers groups the HTTP handlers mounted by NewRouter. A nil Metrics
// handler leaves the scrape endpoint unmounted.
type Handlers struct {
	Health      *rest.HealthHandler
	Reading     *rest.ReadingHandler
	AI          *rest.AIHandler
	Metrics     http.Handler
	MetricsPath string
}

const pdfImportPath = "/texts/import/pdf"

// NewRouter registers every route on a new ServeMux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		mux.Handle("GET "+h.MetricsPath, h.Metrics)
	}

	mux.HandleFunc("GET /texts", h.Reading.ListTexts)
	mux.HandleFunc("POST /texts", h.Reading.CreateText)
	mux.HandleFunc("POST /texts/import", h.Reading.Import)
	mux.HandleFunc("POST "+pdfImportPath, h.Reading.ImportPDF)
	mux.HandleFunc("GET /texts/{id}", h.Reading.GetText)
	mux.HandleFunc("PUT /texts/{id}", h.Reading.UpdateText)
	mux.HandleFunc("DELETE /texts/{id}", h.Reading.DeleteText)
	mux.HandleFunc("PATCH /texts/{id}/progress", h.Reading.UpdateProgress)
	mux.HandleFunc("GET /texts/{id}/sentences", h.Reading.ListSentences)
	mux.HandleFunc("GET /texts/{id}/render", h.Reading.Render)
	mux.HandleFunc("PUT /sentences/{id}", h.Reading.UpdateSentence)

	mux.HandleFunc("POST /sentences/{id}/analyze", h.AI.AnalyzeSentence)
	mux.HandleFunc("POST /texts/{id}/analyze", h.AI.AnalyzeText)
	mux.HandleFunc("POST /ai/chat", h.AI.Chat)
	mux.HandleFunc("POST /ai/chat/stream", h.AI.ChatStream)
	mux.HandleFunc("GET /ai/chips", h.AI.Chips)

	return mux
}
