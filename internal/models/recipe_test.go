package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Lines
	}{
		{"array form", `["water","salt"]`, Lines{"water", "salt"}},
		{"string form", `"water\nsalt"`, Lines{"water", "salt"}},
		{"single line string", `"boil it"`, Lines{"boil it"}},
		{"empty array", `[]`, Lines{}},
		{"empty string", `""`, Lines{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Lines
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinesUnmarshalJSONRejectsOtherTypes(t *testing.T) {
	var got Lines
	assert.Error(t, json.Unmarshal([]byte(`42`), &got))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &got))
}

func TestLinesJoin(t *testing.T) {
	assert.Equal(t, "water\nsalt", Lines{"water", "salt"}.Join())
	assert.Equal(t, "", Lines{}.Join())
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"water", "salt"}, SplitLines("water\nsalt"))
	assert.Equal(t, []string{}, SplitLines(""))
	assert.Equal(t, []string{"only"}, SplitLines("only"))
}

func TestRecipeLineAccessors(t *testing.T) {
	recipe := Recipe{
		Ingredients:  "water\nsalt",
		Instructions: "boil\nserve",
	}
	assert.Equal(t, []string{"water", "salt"}, recipe.IngredientLines())
	assert.Equal(t, []string{"boil", "serve"}, recipe.InstructionLines())
}
