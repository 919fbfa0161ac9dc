package mines

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameStateString(t *testing.T) {
	assert.Equal(t, "not-started", NotStarted.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "won", Won.String())
	assert.Equal(t, "lost", Lost.String())
	assert.Equal(t, "GameState(9)", GameState(9).String())
}

func TestGameStateTerminal(t *testing.T) {
	assert.False(t, NotStarted.Terminal())
	assert.False(t, Running.Terminal())
	assert.True(t, Won.Terminal())
	assert.True(t, Lost.Terminal())
}

func TestGameStateJSON(t *testing.T) {
	b, err := json.Marshal(map[string]GameState{"state": Lost})
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"lost"}`, string(b))

	var s GameState
	require.NoError(t, json.Unmarshal([]byte(`"won"`), &s))
	assert.Equal(t, Won, s)
	assert.Error(t, json.Unmarshal([]byte(`"draw"`), &s))
}
