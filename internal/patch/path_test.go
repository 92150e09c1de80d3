package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath_Keys(t *testing.T) {
	tokens, err := ParsePath("/contact/email")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, Token{Kind: TokenKey, Key: "contact"}, tokens[0])
	assert.Equal(t, Token{Kind: TokenKey, Key: "email"}, tokens[1])
}

func TestParsePath_IndexAndAppend(t *testing.T) {
	tokens, err := ParsePath("/experience/0/responsibilities/-")
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, TokenIndex, tokens[1].Kind)
	assert.Equal(t, 0, tokens[1].Index)
	assert.Equal(t, TokenAppend, tokens[3].Kind)
}

func TestParsePath_Invalid(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"no leading slash", "contact/email"},
		{"empty segment", "/contact//email"},
		{"append mid-path", "/skills/-/languages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePath(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestParsePath_NegativeNumberIsKey(t *testing.T) {
	tokens, err := ParsePath("/experience/-1")
	require.NoError(t, err)
	assert.Equal(t, TokenKey, tokens[1].Kind)
	assert.Equal(t, "-1", tokens[1].Key)
}
