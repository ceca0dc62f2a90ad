package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/weconnect/agrisearch/internal/history"
	"github.com/weconnect/agrisearch/internal/log"
	"github.com/weconnect/agrisearch/internal/rag"
)

// MaxQuestionLength bounds the request body question.
const MaxQuestionLength = 2000

// Asker answers one cultivation question.
type Asker interface {
	Ask(ctx context.Context, question string) (*rag.RAGResult, error)
}

// SearchHandler handles the search and history endpoints.
type SearchHandler struct {
	asker  Asker
	store  *history.Store
	logger log.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(asker Asker, store *history.Store, logger log.Logger) *SearchHandler {
	return &SearchHandler{asker: asker, store: store, logger: logger}
}

// RegisterRoutes registers search routes on the given mux.
func (h *SearchHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ai/search", h.search)
	mux.HandleFunc("GET /api/ai/search/history", h.listHistory)
}

// SearchRequest is the request body for a search.
type SearchRequest struct {
	Question string `json:"question"`
}

// search answers one question and records the exchange.
//
// Status mapping:
//   - empty question → 422
//   - moderation-flagged question → 400
//   - retrieval or upstream failure → 500
func (h *SearchHandler) search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", "request body must be JSON with a question field")
		return
	}
	if len(req.Question) > MaxQuestionLength {
		writeError(w, http.StatusBadRequest, "invalid request", "question too long (max 2000 bytes)")
		return
	}

	result, err := h.asker.Ask(r.Context(), req.Question)
	if err != nil {
		h.writeAskError(w, err)
		return
	}

	entry := h.store.Add(req.Question, result)
	writeJSON(w, http.StatusOK, entry)
}

// writeAskError maps pipeline error kinds to HTTP statuses. The user-facing
// message travels in the error so clients can show it directly.
func (h *SearchHandler) writeAskError(w http.ResponseWriter, err error) {
	var ragErr *rag.Error
	if !errors.As(err, &ragErr) {
		h.logger.Error("search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", "질문 처리 중 오류가 발생했습니다.")
		return
	}

	switch ragErr.Kind() {
	case rag.KindEmptyQuery:
		writeError(w, http.StatusUnprocessableEntity, "empty question", ragErr.Message())
	case rag.KindInappropriateQuery:
		writeError(w, http.StatusBadRequest, "inappropriate question", ragErr.Message())
	default:
		h.logger.Error("search failed", "kind", ragErr.Kind(), "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", ragErr.Message())
	}
}

// HistoryResponse is the response body for the history endpoint.
type HistoryResponse struct {
	History []history.Entry `json:"history"`
	Total   int             `json:"total"`
}

// listHistory returns the recorded exchanges, oldest first.
func (h *SearchHandler) listHistory(w http.ResponseWriter, _ *http.Request) {
	entries := h.store.List()
	writeJSON(w, http.StatusOK, HistoryResponse{History: entries, Total: len(entries)})
}
