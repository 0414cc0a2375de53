package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teclalabs/paperscope/core"
)

func TestMarshalUnmarshalPaper(t *testing.T) {
	in := &core.Paper{
		Title:    "YOLO-X: Real-Time Detection",
		Authors:  []string{"A. Author"},
		Abstract: "We present a fast detector.",
		PDF:      "https://example.com/paper.pdf",
		Vector:   []float32{0.5, -0.25},
	}

	data := MarshalPaper(in)
	out, err := UnmarshalPaper(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestUnmarshalPaper_Garbage(t *testing.T) {
	_, err := UnmarshalPaper([]byte{0xff, 0xff, 0xff, 0xff, 0xff})
	assert.Error(t, err)
}

func TestMarshalUnmarshalID(t *testing.T) {
	in := core.IDFromTitle("Some Paper")

	data := MarshalID(in)
	out, err := UnmarshalID(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
