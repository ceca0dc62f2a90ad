// Package suggest proposes follow-up sentences for a farm notice draft.
// One stateless chat completion per call; the service always returns exactly
// two suggestions for a non-empty draft.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Defaults for the suggestion completion. A smaller model is enough for two
// short sentences.
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 200

	suggestionCount = 2
)

// ErrEmptyDraft indicates the draft was empty after trimming.
var ErrEmptyDraft = errors.New("draft content is empty")

const systemPrompt = "당신은 농장 공지사항 작성을 돕는 AI 비서입니다. " +
	"농장주가 작성 중인 내용을 보고, 자연스럽게 이어질 수 있는 짧고 명확한 문장 2개를 제안합니다. " +
	"각 문장은 1-2줄 정도로 간결하게 작성하고, 농장 운영, 작물 재배, 회원 안내 등의 맥락에 적합해야 합니다."

// ChatCompleter is the completion call the service consumes.
type ChatCompleter interface {
	ChatComplete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error)
}

// Config carries the sampling parameters. Zero values fall back to defaults.
type Config struct {
	Temperature float32
	MaxTokens   int
}

// Service generates sentence suggestions.
type Service struct {
	completer ChatCompleter
	cfg       Config
	logger    *slog.Logger
}

// New creates a suggestion service.
func New(completer ChatCompleter, cfg Config, logger *slog.Logger) *Service {
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{completer: completer, cfg: cfg, logger: logger}
}

// Suggest returns exactly two follow-up sentences for the draft. Short model
// output is padded with empty strings; long output is cut to two.
func (s *Service) Suggest(ctx context.Context, content string) ([]string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyDraft
	}

	raw, err := s.completer.ChatComplete(ctx, systemPrompt, buildPrompt(content), s.cfg.Temperature, s.cfg.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("generating suggestions: %w", err)
	}

	suggestions := parseSuggestions(raw)
	for len(suggestions) < suggestionCount {
		suggestions = append(suggestions, "")
	}
	return suggestions[:suggestionCount], nil
}

func buildPrompt(content string) string {
	return fmt.Sprintf(
		"다음은 농장주가 작성 중인 공지사항 내용입니다:\n\n```\n%s\n```\n\n"+
			"이 내용 뒤에 자연스럽게 이어질 수 있는 문장 2개를 제안해주세요.\n"+
			"각 문장은 1-2줄로 간결하게 작성하고, 번호 없이 줄바꿈으로 구분해주세요.\n"+
			"농장 운영, 작물 재배, 회원 안내 등의 맥락에 맞춰주세요.",
		content)
}

// parseSuggestions splits the completion into lines and strips list markers
// the model adds despite being asked not to ("1. ", "- ", "* ", "• ").
func parseSuggestions(text string) []string {
	var suggestions []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cleaned := line
		switch {
		case len(line) > 2 && line[0] >= '0' && line[0] <= '9' && strings.ContainsRune(".):", rune(line[1])):
			cleaned = strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "), strings.HasPrefix(line, "• "):
			cleaned = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(strings.TrimPrefix(line, "- "), "* "), "• "))
		}

		if cleaned != "" {
			suggestions = append(suggestions, cleaned)
		}
	}
	return suggestions
}
