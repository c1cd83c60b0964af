package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotFailureMatchesItsKindOnly(t *testing.T) {
	cases := []struct {
		failure *BotFailure
		match   error
	}{
		{NewIllegalMoveFailure("state", "abc"), ErrIllegalMove},
		{NewIllegalIndexFailure("state", 120), ErrIllegalMove},
		{NewTimeoutFailure("state"), ErrMoveTimeout},
		{NewErrorFailure("state", errors.New("exit status 1")), ErrBotError},
	}

	all := []error{ErrIllegalMove, ErrMoveTimeout, ErrBotError}
	for _, tc := range cases {
		for _, sentinel := range all {
			assert.Equal(t, sentinel == tc.match, errors.Is(tc.failure, sentinel),
				"%s against %v", tc.failure.Kind, sentinel)
		}
	}
}

func TestBotFailureSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("game 3: %w", NewTimeoutFailure("0,0"))

	var failure *BotFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, FailureTimeout, failure.Kind)
	assert.Equal(t, "0,0", failure.GameState)
	assert.ErrorIs(t, err, ErrMoveTimeout)
}

func TestBotFailureUnwrapsCause(t *testing.T) {
	cause := errors.New("exec: permission denied")
	failure := NewErrorFailure("state", cause)

	assert.ErrorIs(t, failure, cause)
	assert.Contains(t, failure.Error(), "permission denied")
}

func TestIllegalMoveCarriesMove(t *testing.T) {
	raw := NewIllegalMoveFailure("state", "abc")
	require.NotNil(t, raw.Move)
	assert.Equal(t, "abc", *raw.Move)

	index := NewIllegalIndexFailure("state", -4)
	require.NotNil(t, index.Move)
	assert.Equal(t, "-4", *index.Move)

	assert.Nil(t, NewTimeoutFailure("state").Move)
}

func TestBotFailureJSONOmitsCause(t *testing.T) {
	failure := NewErrorFailure("0,1", errors.New("boom"))

	data, err := json.Marshal(failure)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"error","game_state":"0,1"}`, string(data))
}

func TestUnknownKindDoesNotPanic(t *testing.T) {
	var failure BotFailure
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"exploded","game_state":"0,0","move":"7"}`), &failure))

	assert.NotPanics(t, func() { _ = failure.Error() })
	assert.Equal(t, `bot failed for an unknown reason: move "7"`, failure.Error())
	assert.ErrorIs(t, &failure, ErrUnknownFailure)
	for _, sentinel := range []error{ErrIllegalMove, ErrMoveTimeout, ErrBotError} {
		assert.NotErrorIs(t, &failure, sentinel)
	}
}
