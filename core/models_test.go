package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("In the beginning was the Word")
		id2 := IDFromContent("In the beginning was the Word")
		assert.Equal(t, id1, id2)
	})

	t.Run("different content different ids", func(t *testing.T) {
		id1 := IDFromContent("faith")
		id2 := IDFromContent("hope")
		assert.NotEqual(t, id1, id2)
	})
}

func TestPassageID(t *testing.T) {
	// The same quotation in two works must not collide.
	text := "He is not a tame lion."
	id1 := PassageID("The Lion, the Witch and the Wardrobe", text)
	id2 := PassageID("The Last Battle", text)
	assert.NotEqual(t, id1, id2)

	// Same source and text always hashes the same.
	assert.Equal(t, id1, PassageID("The Lion, the Witch and the Wardrobe", text))
}

func TestSuggestedFiltersEmpty(t *testing.T) {
	assert.True(t, SuggestedFilters{}.Empty())

	assert.False(t, SuggestedFilters{Concepts: []string{"Concept/Faith"}}.Empty())
	assert.False(t, SuggestedFilters{ScriptureRefs: []string{"John 14:6"}}.Empty())
	assert.False(t, SuggestedFilters{Authors: []string{"John Calvin"}}.Empty())
}
