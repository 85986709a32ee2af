package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharPoolNotEmpty(t *testing.T) {
	require.NotEmpty(t, charPool)
	for _, r := range charPool {
		assert.GreaterOrEqual(t, r, rune(0x4E00), "pool should contain only ideographs")
	}
}

func TestUniqueChars_DistinctAndExcludesTaken(t *testing.T) {
	taken := uniqueChars(4, nil)

	more := uniqueChars(4, taken)
	require.Len(t, more, 4)

	seen := make(map[string]bool)
	for _, c := range taken {
		seen[c] = true
	}
	for _, c := range more {
		assert.False(t, seen[c], "character %q sampled twice", c)
		seen[c] = true
	}
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t, "请依次点击: 喝、同", BuildPrompt([]string{"喝", "同"}))
	assert.Equal(t, "请依次点击: 喝", BuildPrompt([]string{"喝"}))
}
