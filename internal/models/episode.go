package models

// Episode is a feed item reshaped to the fields clients rely on.
// AudioURL is always set; items without a playable enclosure are dropped.
// Everything after AudioURL is optional metadata and omitted when the feed
// does not provide it.
type Episode struct {
	Title       string  `json:"title" example:"Episode 42: The Answer"`
	Description string  `json:"description" example:"We talk about everything."`
	PubDate     *string `json:"pubDate" example:"Mon, 01 Sep 2025 11:00:00 GMT"`
	AudioURL    string  `json:"audioUrl" example:"https://example.com/episode42.mp3"`

	Duration      *string  `json:"duration,omitempty" example:"00:42:17"`
	EpisodeLink   *string  `json:"episodeLink,omitempty" example:"https://example.com/episodes/42"`
	Image         *string  `json:"image,omitempty" example:"https://example.com/episode42.jpg"`
	EpisodeNumber *int     `json:"episodeNumber,omitempty" example:"42"`
	Season        *int     `json:"season,omitempty" example:"3"`
	Explicit      *bool    `json:"explicit,omitempty" example:"false"`
	FileSize      *string  `json:"fileSize,omitempty" example:"40583168"`
	Format        *string  `json:"format,omitempty" example:"audio/mpeg"`
	HasTranscript bool     `json:"hasTranscript,omitempty"`
	TranscriptURL *string  `json:"transcriptUrl,omitempty" example:"https://example.com/episode42.vtt"`
	ShowNotesURL  *string  `json:"showNotesUrl,omitempty" example:"https://example.com/episode42/notes"`
	Categories    []string `json:"categories,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
}

// Clone returns a copy of e that shares no memory with it.
func (e Episode) Clone() Episode {
	e.PubDate = cloneString(e.PubDate)
	e.Duration = cloneString(e.Duration)
	e.EpisodeLink = cloneString(e.EpisodeLink)
	e.Image = cloneString(e.Image)
	e.FileSize = cloneString(e.FileSize)
	e.Format = cloneString(e.Format)
	e.TranscriptURL = cloneString(e.TranscriptURL)
	e.ShowNotesURL = cloneString(e.ShowNotesURL)
	if e.EpisodeNumber != nil {
		n := *e.EpisodeNumber
		e.EpisodeNumber = &n
	}
	if e.Season != nil {
		n := *e.Season
		e.Season = &n
	}
	if e.Explicit != nil {
		b := *e.Explicit
		e.Explicit = &b
	}
	e.Categories = cloneStrings(e.Categories)
	e.Keywords = cloneStrings(e.Keywords)
	return e
}

// CloneEpisodes copies a slice of episodes element by element.
func CloneEpisodes(episodes []Episode) []Episode {
	out := make([]Episode, len(episodes))
	for i, episode := range episodes {
		out[i] = episode.Clone()
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
