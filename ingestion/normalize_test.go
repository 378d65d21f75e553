package ingestion

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeScriptureRefs(t *testing.T) {
	logger := slog.Default()

	t.Run("verse gains chapter form", func(t *testing.T) {
		got := normalizeScriptureRefs([]string{"Jn. 3:16"}, logger)
		assert.Equal(t, []string{"John 3", "John 3:16"}, got)
	})

	t.Run("abbreviations canonicalized", func(t *testing.T) {
		got := normalizeScriptureRefs([]string{"1 cor 13", "Ps 23:1"}, logger)
		assert.Equal(t, []string{"1 Corinthians 13", "Psalms 23", "Psalms 23:1"}, got)
	})

	t.Run("unresolvable refs dropped", func(t *testing.T) {
		got := normalizeScriptureRefs([]string{"Tobit 4:7", "John 1:1"}, logger)
		assert.Equal(t, []string{"John 1", "John 1:1"}, got)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		got := normalizeScriptureRefs([]string{"John 3:16", "Jn 3:16", "John 3"}, logger)
		assert.Equal(t, []string{"John 3", "John 3:16"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, normalizeScriptureRefs(nil, logger))
	})
}
