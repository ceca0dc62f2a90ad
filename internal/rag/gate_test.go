package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_Check_TrimsQuery(t *testing.T) {
	moderator := &mockModerator{}
	gate := NewGate(moderator)

	query, err := gate.Check(context.Background(), "  토마토 재배법  \n")

	require.NoError(t, err)
	assert.Equal(t, "토마토 재배법", query)
	assert.Equal(t, "토마토 재배법", moderator.lastText)
}

func TestGate_Check_EmptyAfterTrim(t *testing.T) {
	moderator := &mockModerator{}
	gate := NewGate(moderator)

	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := gate.Check(context.Background(), raw)

		require.Error(t, err)
		assert.True(t, IsKind(err, KindEmptyQuery))
	}
	assert.Zero(t, moderator.callCount)
}

func TestGate_Check_Flagged(t *testing.T) {
	gate := NewGate(&mockModerator{flagged: true})

	_, err := gate.Check(context.Background(), "나쁜 질문")

	require.Error(t, err)
	assert.True(t, IsKind(err, KindInappropriateQuery))

	var ragErr *Error
	require.ErrorAs(t, err, &ragErr)
	assert.Equal(t, msgInappropriateQuery, ragErr.Message())
}

func TestGate_Check_ModerationError(t *testing.T) {
	cause := errors.New("api timeout")
	gate := NewGate(&mockModerator{err: cause})

	_, err := gate.Check(context.Background(), "질문")

	require.Error(t, err)
	assert.True(t, IsKind(err, KindService))
	assert.ErrorIs(t, err, cause)
}
