package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDocuments(t *testing.T) {
	t.Run("valid lines", func(t *testing.T) {
		input := `{"text":"first","source":"A","author":"X","metadata":{"concepts":["Concept/Faith"]}}

{"text":"second","source":"B","structure_path":["Book I"],"metadata":{"scripture_references":["Jn. 3:16"]}}
`
		docs, err := ReadDocuments(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, docs, 2)

		assert.Equal(t, "first", docs[0].Text)
		assert.Equal(t, []string{"Concept/Faith"}, docs[0].Metadata.Concepts)
		assert.Equal(t, []string{"Book I"}, docs[1].StructurePath)
		assert.Equal(t, []string{"Jn. 3:16"}, docs[1].Metadata.ScriptureRefs)
	})

	t.Run("malformed line reports its number", func(t *testing.T) {
		input := "{\"text\":\"ok\",\"source\":\"A\"}\nnot json\n"
		_, err := ReadDocuments(strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("empty input", func(t *testing.T) {
		docs, err := ReadDocuments(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}
