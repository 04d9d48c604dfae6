package video

// Video is the merged summary returned by Search: snippet fields from the
// search call, duration and view count from the details call.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	Duration     string `json:"duration"`
	ViewCount    string `json:"viewCount"`
}

// CaptionTrack describes one caption track. Caption text is never fetched;
// downloading it needs OAuth the service does not hold.
type CaptionTrack struct {
	Language  string `json:"language"`
	Name      string `json:"name"`
	TrackKind string `json:"trackKind"`
}

// TranscriptBundle is produced fresh per request and never cached.
type TranscriptBundle struct {
	VideoID       string         `json:"videoId"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	HasCaptions   bool           `json:"hasCaptions"`
	CaptionTracks []CaptionTrack `json:"captionTracks,omitempty"`
}
