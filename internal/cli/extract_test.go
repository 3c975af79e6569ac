package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RandomGgames/obschunk/internal/scenes"
)

// Test Plan for collection selection:
// - Valid numeric input selects the corresponding collection
// - Out-of-range and non-numeric input re-prompts until valid
// - End of input without a valid selection is an error

func testCollections() []scenes.Collection {
	return []scenes.Collection{
		{Name: "Recording", Path: "/scenes/Recording.json"},
		{Name: "Streaming", Path: "/scenes/Streaming.json"},
	}
}

func TestChooseCollection_ValidSelection(t *testing.T) {
	var out bytes.Buffer

	selected, err := chooseCollection(strings.NewReader("2\n"), &out, testCollections())

	require.NoError(t, err)
	assert.Equal(t, "Streaming", selected.Name)
	assert.Contains(t, out.String(), "1: Recording")
	assert.Contains(t, out.String(), "2: Streaming")
}

func TestChooseCollection_RetriesUntilValid(t *testing.T) {
	var out bytes.Buffer

	selected, err := chooseCollection(strings.NewReader("0\nseven\n99\n1\n"), &out, testCollections())

	require.NoError(t, err)
	assert.Equal(t, "Recording", selected.Name)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid selection"))
}

func TestChooseCollection_EndOfInput(t *testing.T) {
	var out bytes.Buffer

	_, err := chooseCollection(strings.NewReader(""), &out, testCollections())

	assert.Error(t, err)
}
