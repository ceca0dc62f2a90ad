package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/weconnect/agrisearch/internal/log"
	"github.com/weconnect/agrisearch/internal/suggest"
)

// MaxDraftLength bounds the suggestion request body content.
const MaxDraftLength = 10000

// Suggester proposes follow-up sentences for a draft.
type Suggester interface {
	Suggest(ctx context.Context, content string) ([]string, error)
}

// SuggestHandler handles the sentence suggestion endpoint.
type SuggestHandler struct {
	suggester Suggester
	logger    log.Logger
}

// NewSuggestHandler creates a new suggestion handler.
func NewSuggestHandler(suggester Suggester, logger log.Logger) *SuggestHandler {
	return &SuggestHandler{suggester: suggester, logger: logger}
}

// RegisterRoutes registers suggestion routes on the given mux.
func (h *SuggestHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ai/suggest", h.suggest)
}

// SuggestRequest is the request body for a suggestion.
type SuggestRequest struct {
	Content string `json:"content"`
}

// SuggestResponse is the response body for a suggestion.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

func (h *SuggestHandler) suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", "request body must be JSON with a content field")
		return
	}
	if len(req.Content) > MaxDraftLength {
		writeError(w, http.StatusBadRequest, "invalid request", "content too long (max 10000 bytes)")
		return
	}

	suggestions, err := h.suggester.Suggest(r.Context(), req.Content)
	if err != nil {
		if errors.Is(err, suggest.ErrEmptyDraft) {
			writeError(w, http.StatusUnprocessableEntity, "empty content", "작성 중인 내용을 입력해주세요.")
			return
		}
		h.logger.Error("suggestion failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", "문장 제안 중 오류가 발생했습니다.")
		return
	}

	writeJSON(w, http.StatusOK, SuggestResponse{Suggestions: suggestions})
}
