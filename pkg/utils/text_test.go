package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   \t\n"))
	assert.Equal(t, "hello world", Normalize("  Hello   WORLD  "))
	assert.Equal(t, "a b c", Normalize("a\tb\nc"))
}

func TestTextSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, TextSimilarity("", ""))
	assert.Equal(t, 0.0, TextSimilarity("", "something"))
	assert.Equal(t, 0.0, TextSimilarity("something", "  "))
	assert.Equal(t, 1.0, TextSimilarity("Hello World", "hello   world"))
	assert.Less(t, TextSimilarity("api dashboard", "mobiele app"), SimilarityThreshold)
}

func TestSimilar(t *testing.T) {
	assert.True(t, Similar("SSO login", "sso login"))
	assert.True(t, Similar("", ""))
	assert.False(t, Similar("", "pricing on request"))
	assert.False(t, Similar("basic plan", "enterprise contract"))
}

func TestNormalizeList(t *testing.T) {
	got := NormalizeList([]string{"  Webhooks ", "", "API", "  ", "sso"})
	assert.Equal(t, []string{"api", "sso", "webhooks"}, got)

	assert.Empty(t, NormalizeList(nil))
	assert.Empty(t, NormalizeList([]string{"", "   "}))
}

func TestTokenize(t *testing.T) {
	got := Tokenize("B2B SaaS voor B2B teams")
	assert.Len(t, got, 4)
	assert.Contains(t, got, "b2b")
	assert.Contains(t, got, "saas")
	assert.Empty(t, Tokenize(""))
}
