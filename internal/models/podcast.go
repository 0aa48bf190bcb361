package models

// Podcast is a search result reshaped to the fields clients rely on.
// FeedURL is always set; results without one are dropped before they get here.
type Podcast struct {
	PodcastName string  `json:"podcastName" example:"The Tech Show"`
	FeedURL     string  `json:"feedUrl" example:"https://example.com/rss.xml"`
	Artwork     *string `json:"artwork" example:"https://example.com/artwork600.jpg"`
	ArtistName  string  `json:"artistName" example:"John Smith"`
}

// PodcastInfo describes the show a feed belongs to, taken from the channel.
type PodcastInfo struct {
	Title       string  `json:"title" example:"The Tech Show"`
	Description string  `json:"description" example:"Weekly conversations about technology."`
	Artwork     *string `json:"artwork" example:"https://example.com/artwork.jpg"`
}

// Clone returns a copy of p that shares no memory with it.
func (p PodcastInfo) Clone() PodcastInfo {
	p.Artwork = cloneString(p.Artwork)
	return p
}
