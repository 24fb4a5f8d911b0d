package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHex(t *testing.T) {
	tok, err := NewHex(10)
	assert.NoError(t, err)
	assert.Len(t, tok, 20)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]+$`), tok)

	other, err := NewHex(10)
	assert.NoError(t, err)
	assert.NotEqual(t, tok, other)
}

func TestNewHex_RejectsInvalidLength(t *testing.T) {
	_, err := NewHex(0)
	assert.Error(t, err)
	_, err = NewHex(-3)
	assert.Error(t, err)
}
