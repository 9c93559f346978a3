package translate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(SetLanguage("en-US"))
	assert.Equal("stack empty", From("stack empty"))
	assert.Equal("line 3 'x'", From("line %d '%v'", 3, "x"))
}

func TestSetLanguage(t *testing.T) {
	assert := assert.New(t)

	assert.Error(SetLanguage("not a language tag!"))
	assert.NoError(SetLanguage("en"))
}

func TestError(t *testing.T) {
	assert := assert.New(t)

	require.NoError(t, message.SetString(language.German, "stack underflow", "Stapelunterlauf"))
	t.Cleanup(func() { SetLanguage("en-US") })

	// Created before the language is chosen.
	err := Error("stack underflow")

	assert.NoError(SetLanguage("en-US"))
	assert.Equal("stack underflow", err.Error())

	assert.NoError(SetLanguage("de"))
	assert.Equal("Stapelunterlauf", err.Error())

	other := Error("stack underflow")
	assert.False(errors.Is(other, err))
	assert.True(errors.Is(err, err))
}
