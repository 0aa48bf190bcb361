package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		maxLength int
		want      string
	}{
		{name: "plain text untouched", in: "Tech Talk", maxLength: 100, want: "Tech Talk"},
		{name: "trims whitespace", in: "  serial  ", maxLength: 100, want: "serial"},
		{name: "strips unsafe characters", in: `<b>"Joe's"</b>`, maxLength: 100, want: "bJoes/b"},
		{name: "caps length", in: "abcdefghij", maxLength: 4, want: "abcd"},
		{name: "blank input", in: "   ", maxLength: 10, want: ""},
		{name: "multibyte runes counted once", in: "héllo wörld", maxLength: 5, want: "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in, tt.maxLength))
		})
	}
}

func TestAbbreviate(t *testing.T) {
	long := "https://feeds.example.com/" + strings.Repeat("x", 60)

	assert.Equal(t, "https://short.example.com/feed", Abbreviate("https://short.example.com/feed", 50))
	got := Abbreviate(long, 50)
	assert.Equal(t, long[:50]+"...", got)
	assert.Equal(t, "anything", Abbreviate("anything", 0))
}

func TestValidURL(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{raw: "https://feeds.npr.org/510313/podcast.xml", want: true},
		{raw: "http://feeds.megaphone.fm/huberman", want: true},
		{raw: "http://127.0.0.1:8080/feed.xml", want: true},
		{raw: "http://localhost:3000/rss", want: true},
		{raw: "invalid-url", want: false},
		{raw: "", want: false},
		{raw: "ftp://example.com/feed", want: false},
		{raw: "https://", want: false},
		{raw: "https://nodot/feed", want: false},
		{raw: "https://example.123/feed", want: false},
		{raw: "javascript:alert(1)", want: false},
		{raw: "https://" + strings.Repeat("a", 250) + ".com/", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidURL(tt.raw))
		})
	}
}
