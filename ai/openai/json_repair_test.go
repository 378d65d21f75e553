package openai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences(`{"a":1}`))
}

func TestRepairJSON(t *testing.T) {
	t.Run("missing opening quote on key", func(t *testing.T) {
		broken := `{intent": "x", "concepts": []}`
		fixed := repairJSON(broken)

		var out map[string]any
		require.NoError(t, json.Unmarshal([]byte(fixed), &out))
		assert.Equal(t, "x", out["intent"])
	})

	t.Run("valid json untouched", func(t *testing.T) {
		valid := `{"intent": "x", "concepts": ["a"]}`
		assert.Equal(t, valid, repairJSON(valid))
	})
}
