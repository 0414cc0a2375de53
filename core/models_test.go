package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{
			name:  "same title produces same ID",
			title: "YOLO-X: Real-Time Detection",
		},
		{
			name:  "empty string",
			title: "",
		},
		{
			name:  "long title",
			title: "A Much Longer Paper Title That Should Still Hash Consistently Across Calls",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromTitle(tt.title)
			id2 := IDFromTitle(tt.title)

			if id1 != id2 {
				t.Errorf("IDFromTitle() produced different IDs for same title: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromTitle_Different(t *testing.T) {
	id1 := IDFromTitle("Paper One")
	id2 := IDFromTitle("Paper Two")

	if id1 == id2 {
		t.Errorf("IDFromTitle() produced same ID for different titles")
	}
}

func TestPaper_ID(t *testing.T) {
	paper := &Paper{Title: "Diffusion Models for Image Synthesis"}
	assert.Equal(t, IDFromTitle(paper.Title), paper.ID())
}

func TestPaper_EmbeddingText(t *testing.T) {
	paper := &Paper{
		Title:    "YOLO-X: Real-Time Detection",
		Abstract: "We present a fast detector.",
	}
	assert.Equal(t, "YOLO-X: Real-Time Detection We present a fast detector.", paper.EmbeddingText())
}

func TestPaper_JSONExcludesVector(t *testing.T) {
	paper := &Paper{
		Title:  "Some Paper",
		Vector: []float32{0.1, 0.2},
	}

	data, err := json.Marshal(paper)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "0.1")
	assert.Contains(t, string(data), `"title":"Some Paper"`)
}

func TestPaper_JSONRoundTrip(t *testing.T) {
	in := &Paper{
		Title:          "Some Paper",
		Authors:        []string{"A. Author", "B. Author"},
		Abstract:       "An abstract.",
		PDF:            "https://example.com/paper.pdf",
		PosterSession:  "Poster Session 3",
		PosterLocation: "Hall D #42",
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Paper
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in.Title, out.Title)
	assert.Equal(t, in.Authors, out.Authors)
	assert.Equal(t, in.PosterLocation, out.PosterLocation)
	assert.Empty(t, out.Supp)
}
