package rag

import (
	"context"
	"strings"
)

// User-facing messages for gate failures. Kept in Korean to match the
// product's answer language.
const (
	msgEmptyQuery         = "질문을 입력해주세요."
	msgInappropriateQuery = "부적절하거나 안전하지 않은 내용이 포함되어 답변할 수 없습니다."
	msgModerationFailed   = "질문 검수 중 오류가 발생했습니다"
)

// Gate validates a raw query before any retrieval work runs: trim, reject
// empty, then a moderation check. Both checks happen up front so invalid
// input never costs an embedding or vector store call.
type Gate struct {
	moderator Moderator
}

// NewGate creates a query gate backed by the given moderation service.
func NewGate(moderator Moderator) *Gate {
	return &Gate{moderator: moderator}
}

// Check returns the trimmed query, or a KindEmptyQuery, KindInappropriateQuery
// or KindService error.
func (g *Gate) Check(ctx context.Context, raw string) (string, error) {
	query := strings.TrimSpace(raw)
	if query == "" {
		return "", NewError(KindEmptyQuery, msgEmptyQuery, nil)
	}

	flagged, err := g.moderator.Moderate(ctx, query)
	if err != nil {
		return "", NewError(KindService, msgModerationFailed, err)
	}
	if flagged {
		return "", NewError(KindInappropriateQuery, msgInappropriateQuery, nil)
	}

	return query, nil
}
