package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidBotID(t *testing.T) {
	valid := []string{"bot.py", "alice-v2", "my_bot"}
	invalid := []string{"", ".", "..", "../bot", "dir/bot", `dir\bot`, "/bin/sh"}

	for _, id := range valid {
		assert.True(t, ValidBotID(id), id)
	}
	for _, id := range invalid {
		assert.False(t, ValidBotID(id), id)
	}
}

func TestJobValidate(t *testing.T) {
	assert.NoError(t, (&Job{UserID: "u1", BotID: "bot"}).Validate())
	assert.ErrorIs(t, (&Job{BotID: "bot"}).Validate(), ErrInvalidJob)
	assert.ErrorIs(t, (&Job{UserID: "u1", BotID: "../bot"}).Validate(), ErrInvalidJob)
}
