package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpisode_Clone(t *testing.T) {
	pubDate := "Mon, 01 Sep 2025 11:00:00 GMT"
	original := Episode{Title: "One", PubDate: &pubDate, AudioURL: "https://example.com/1.mp3"}

	clone := original.Clone()
	require.NotNil(t, clone.PubDate)
	assert.NotSame(t, original.PubDate, clone.PubDate)

	*clone.PubDate = "changed"
	assert.Equal(t, "Mon, 01 Sep 2025 11:00:00 GMT", *original.PubDate)
}

func TestCloneEpisodes(t *testing.T) {
	episodes := []Episode{{Title: "One"}, {Title: "Two"}}

	clones := CloneEpisodes(episodes)
	clones[0].Title = "changed"

	assert.Equal(t, "One", episodes[0].Title)
	assert.Len(t, CloneEpisodes(nil), 0)
}

func TestEpisode_JSONNullPubDate(t *testing.T) {
	data, err := json.Marshal(Episode{Title: "One", AudioURL: "https://example.com/1.mp3"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"One","description":"","pubDate":null,"audioUrl":"https://example.com/1.mp3"}`, string(data))
}

func TestEpisode_CloneCopiesMetadata(t *testing.T) {
	number, explicit, duration := 7, true, "00:30:00"
	original := Episode{
		Title:         "Seven",
		AudioURL:      "https://example.com/7.mp3",
		Duration:      &duration,
		EpisodeNumber: &number,
		Explicit:      &explicit,
		Categories:    []string{"Tech"},
		Keywords:      []string{"go"},
	}

	clone := original.Clone()
	*clone.Duration = "changed"
	*clone.EpisodeNumber = 8
	*clone.Explicit = false
	clone.Categories[0] = "changed"
	clone.Keywords[0] = "changed"

	assert.Equal(t, "00:30:00", *original.Duration)
	assert.Equal(t, 7, *original.EpisodeNumber)
	assert.True(t, *original.Explicit)
	assert.Equal(t, []string{"Tech"}, original.Categories)
	assert.Equal(t, []string{"go"}, original.Keywords)
}

func TestPodcastInfo_Clone(t *testing.T) {
	artwork := "https://example.com/art.jpg"
	original := PodcastInfo{Title: "Show", Artwork: &artwork}

	clone := original.Clone()
	*clone.Artwork = "changed"

	assert.Equal(t, "https://example.com/art.jpg", *original.Artwork)
	assert.Nil(t, PodcastInfo{}.Clone().Artwork)
}
