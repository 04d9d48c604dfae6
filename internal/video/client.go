package video

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"focustube/internal/apperr"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"

	// YouTube category 27 is Education; search is restricted to it.
	educationCategoryID = "27"

	defaultMaxResults = 12
	maxMaxResults     = 50
)

// Client talks to the YouTube Data API. Zero value plus an API key is
// usable; BaseURL and HTTPClient exist for tests.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type captionsResponse struct {
	Items []struct {
		Snippet struct {
			Language  string `json:"language"`
			Name      string `json:"name"`
			TrackKind string `json:"trackKind"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search looks up education-category videos and merges per-id details into
// each summary, preserving the provider's result order. Zero matches is a
// valid empty result, not an error.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", apperr.ErrValidation)
	}
	if c.APIKey == "" {
		return nil, fmt.Errorf("%w: YOUTUBE_API_KEY not configured", apperr.ErrConfig)
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if maxResults > maxMaxResults {
		maxResults = maxMaxResults
	}

	var search searchResponse
	err := c.get(ctx, "/search", url.Values{
		"part":            {"snippet"},
		"q":               {query},
		"type":            {"video"},
		"videoCategoryId": {educationCategoryID},
		"maxResults":      {strconv.Itoa(maxResults)},
	}, &search)
	if err != nil {
		return nil, err
	}
	if len(search.Items) == 0 {
		return []Video{}, nil
	}

	ids := make([]string, 0, len(search.Items))
	for _, it := range search.Items {
		if it.ID.VideoID != "" {
			ids = append(ids, it.ID.VideoID)
		}
	}

	var details videosResponse
	err = c.get(ctx, "/videos", url.Values{
		"part": {"snippet,contentDetails,statistics"},
		"id":   {strings.Join(ids, ",")},
	}, &details)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Video, len(details.Items))
	for _, it := range details.Items {
		byID[it.ID] = Video{
			ID:           it.ID,
			Title:        it.Snippet.Title,
			Description:  it.Snippet.Description,
			Thumbnail:    it.Snippet.Thumbnails.Medium.URL,
			ChannelTitle: it.Snippet.ChannelTitle,
			PublishedAt:  it.Snippet.PublishedAt,
			Duration:     it.ContentDetails.Duration,
			ViewCount:    it.Statistics.ViewCount,
		}
	}

	// search order wins; ids without a detail row are dropped
	out := make([]Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// TranscriptMetadata fetches a video's snippet and its caption track
// listing. A video with zero caption tracks is a successful bundle with
// HasCaptions=false; a missing video is a not-found error.
func (c *Client) TranscriptMetadata(ctx context.Context, videoID string) (TranscriptBundle, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return TranscriptBundle{}, fmt.Errorf("%w: video ID is required", apperr.ErrValidation)
	}
	if c.APIKey == "" {
		return TranscriptBundle{}, fmt.Errorf("%w: YOUTUBE_API_KEY not configured", apperr.ErrConfig)
	}

	var details videosResponse
	err := c.get(ctx, "/videos", url.Values{
		"part": {"snippet"},
		"id":   {videoID},
	}, &details)
	if err != nil {
		return TranscriptBundle{}, err
	}
	if len(details.Items) == 0 {
		return TranscriptBundle{}, fmt.Errorf("%w: video not found", apperr.ErrNotFound)
	}

	var captions captionsResponse
	err = c.get(ctx, "/captions", url.Values{
		"part":    {"snippet"},
		"videoId": {videoID},
	}, &captions)
	if err != nil {
		return TranscriptBundle{}, err
	}

	bundle := TranscriptBundle{
		VideoID:     videoID,
		Title:       details.Items[0].Snippet.Title,
		Description: details.Items[0].Snippet.Description,
		HasCaptions: len(captions.Items) > 0,
	}
	for _, it := range captions.Items {
		bundle.CaptionTracks = append(bundle.CaptionTracks, CaptionTrack{
			Language:  it.Snippet.Language,
			Name:      it.Snippet.Name,
			TrackKind: it.Snippet.TrackKind,
		})
	}
	return bundle, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	params.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrUpstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: youtube returned status %d", apperr.ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed youtube response", apperr.ErrUpstream)
	}
	return nil
}
