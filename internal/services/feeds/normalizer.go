package feeds

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/killallgit/rewise-api/internal/models"
	"github.com/killallgit/rewise-api/pkg/input"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

const (
	// MaxEpisodes is how many items are taken from the top of a feed.
	MaxEpisodes = 20

	maxTitleLength       = 200
	maxDescriptionLength = 1000

	untitled       = "Untitled"
	unknownPodcast = "Unknown Podcast"
	noDescription  = "No description available"
)

// Normalized is a feed reshaped for clients. Issues lists problems that did
// not stop the feed from being served, such as skipped items.
type Normalized struct {
	Podcast  models.PodcastInfo
	Episodes []models.Episode
	Issues   []string
}

// NormalizeFeed reshapes the channel and its first limit items.
func NormalizeFeed(feed *gofeed.Feed, limit int) Normalized {
	if feed == nil {
		return Normalized{
			Podcast:  models.PodcastInfo{Title: unknownPodcast, Description: noDescription},
			Episodes: []models.Episode{},
		}
	}

	n := &normalizer{}
	podcast := n.podcastInfo(feed)
	n.fallbackImage = podcast.Artwork
	episodes := n.items(feed.Items, limit)

	return Normalized{
		Podcast:  podcast,
		Episodes: episodes,
		Issues:   n.issues,
	}
}

// NormalizeItems reshapes the first limit items of a feed, in feed order,
// dropping any item without a playable audio URL. The result is never nil.
func NormalizeItems(items []*gofeed.Item, limit int) []models.Episode {
	n := &normalizer{}
	return n.items(items, limit)
}

type normalizer struct {
	fallbackImage *string
	issues        []string
}

func (n *normalizer) issuef(format string, args ...interface{}) {
	n.issues = append(n.issues, fmt.Sprintf(format, args...))
}

func (n *normalizer) podcastInfo(feed *gofeed.Feed) models.PodcastInfo {
	title := input.Sanitize(feed.Title, maxTitleLength)
	if title == "" {
		title = unknownPodcast
	}

	candidates := []string{feed.Description}
	if feed.ITunesExt != nil {
		candidates = append(candidates, feed.ITunesExt.Summary)
	}
	description := firstText(candidates, noDescription)

	var artwork *string
	if feed.Image != nil {
		if link := strings.TrimSpace(feed.Image.URL); link != "" {
			if input.ValidURL(link) {
				artwork = &link
			} else {
				n.issuef("Podcast artwork URL is invalid")
			}
		}
	}

	return models.PodcastInfo{
		Title:       title,
		Description: description,
		Artwork:     artwork,
	}
}

func (n *normalizer) items(items []*gofeed.Item, limit int) []models.Episode {
	if limit <= 0 || limit > MaxEpisodes {
		limit = MaxEpisodes
	}
	if len(items) > limit {
		items = items[:limit]
	}

	episodes := make([]models.Episode, 0, len(items))
	for i, item := range items {
		if episode, ok := n.item(i+1, item); ok {
			episodes = append(episodes, episode)
		}
	}
	return episodes
}

func (n *normalizer) item(position int, item *gofeed.Item) (models.Episode, bool) {
	if item == nil {
		n.issuef("Item %d skipped: empty item", position)
		return models.Episode{}, false
	}

	enclosure := playableEnclosure(item)
	if enclosure == nil {
		n.issuef("Item %d skipped: no playable audio enclosure", position)
		return models.Episode{}, false
	}

	title := input.Sanitize(item.Title, maxTitleLength)
	if title == "" {
		title = untitled
	}

	episode := models.Episode{
		Title:       title,
		Description: description(item),
		PubDate:     pubDate(item),
		AudioURL:    strings.TrimSpace(enclosure.URL),
		EpisodeLink: validURL(item.Link),
		FileSize:    nonEmpty(enclosure.Length),
		Format:      nonEmpty(enclosure.Type),
		Categories:  trimmedList(item.Categories),
	}
	if item.Image != nil {
		episode.Image = validURL(item.Image.URL)
	}
	if episode.Image == nil && n.fallbackImage != nil {
		image := *n.fallbackImage
		episode.Image = &image
	}

	if itunes := item.ITunesExt; itunes != nil {
		episode.Duration = nonEmpty(itunes.Duration)
		episode.EpisodeNumber = n.intField(position, "episode number", itunes.Episode)
		episode.Season = n.intField(position, "season", itunes.Season)
		episode.Explicit = n.explicit(position, itunes.Explicit)
		episode.Keywords = trimmedList(strings.Split(itunes.Keywords, ","))
	}

	episode.TranscriptURL = extensionAttr(item.Extensions, "podcast", "transcript", "url", nil)
	episode.HasTranscript = episode.TranscriptURL != nil
	episode.ShowNotesURL = extensionAttr(item.Extensions, "atom", "link", "href", map[string]string{"rel": "show-notes"})

	return episode, true
}

func (n *normalizer) intField(position int, name, raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		n.issuef("Item %d: invalid %s %q", position, name, input.Truncate(raw, 20))
		return nil
	}
	return &value
}

func (n *normalizer) explicit(position int, raw string) *bool {
	var value bool
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return nil
	case "yes", "true", "explicit":
		value = true
	case "no", "false", "clean":
		value = false
	default:
		n.issuef("Item %d: invalid explicit flag %q", position, input.Truncate(raw, 20))
		return nil
	}
	return &value
}

// description walks content snippet, iTunes summary, then raw description.
func description(item *gofeed.Item) string {
	candidates := []string{item.Content}
	if item.ITunesExt != nil {
		candidates = append(candidates, item.ITunesExt.Summary)
	}
	candidates = append(candidates, item.Description)
	return firstText(candidates, noDescription)
}

func firstText(candidates []string, fallback string) string {
	for _, candidate := range candidates {
		if text := input.Sanitize(plainText(candidate), maxDescriptionLength); text != "" {
			return text
		}
	}
	return fallback
}

func pubDate(item *gofeed.Item) *string {
	for _, candidate := range []string{item.Published, item.Updated} {
		if trimmed := nonEmpty(candidate); trimmed != nil {
			return trimmed
		}
	}
	return nil
}

// playableEnclosure returns the first enclosure that is audio (or untyped) and
// points at an http(s) URL.
func playableEnclosure(item *gofeed.Item) *gofeed.Enclosure {
	for _, enclosure := range item.Enclosures {
		if enclosure == nil {
			continue
		}
		mediaType := strings.ToLower(strings.TrimSpace(enclosure.Type))
		if mediaType != "" && !strings.HasPrefix(mediaType, "audio/") {
			continue
		}
		if input.ValidURL(strings.TrimSpace(enclosure.URL)) {
			return enclosure
		}
	}
	return nil
}

// extensionAttr finds the first prefix:name element whose attributes include
// match and returns its attr value when that is a valid URL.
func extensionAttr(extensions ext.Extensions, prefix, name, attr string, match map[string]string) *string {
	for _, element := range extensions[prefix][name] {
		matched := true
		for k, v := range match {
			if !strings.EqualFold(strings.TrimSpace(element.Attrs[k]), v) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if link := validURL(element.Attrs[attr]); link != nil {
			return link
		}
	}
	return nil
}

func validURL(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !input.ValidURL(raw) {
		return nil
	}
	return &raw
}

func nonEmpty(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

func trimmedList(values []string) []string {
	var out []string
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// plainText strips markup from an HTML fragment and collapses whitespace.
func plainText(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return ""
	}
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
