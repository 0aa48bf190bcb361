package itunes

// searchResult is one element of the iTunes search "results" array. Only the
// fields the adapter reads are declared.
type searchResult struct {
	WrapperType    string `json:"wrapperType"`
	Kind           string `json:"kind"`
	CollectionID   int64  `json:"collectionId"`
	CollectionName string `json:"collectionName"`
	ArtistName     string `json:"artistName"`
	FeedURL        string `json:"feedUrl"`
	ArtworkURL100  string `json:"artworkUrl100"`
	ArtworkURL600  string `json:"artworkUrl600"`
}
