// MusicBrainz client for recording metadata
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"quickact/internal/models"
	"quickact/internal/shared"
)

// MusicBrainzService implements [Catalog] against the MusicBrainz ws/2 API.
// Requests are throttled to one per second.
type MusicBrainzService struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewMusicBrainzService creates a MusicBrainz client.
func NewMusicBrainzService(baseURL, userAgent string, client *http.Client) *MusicBrainzService {
	if baseURL == "" {
		baseURL = "https://musicbrainz.org/ws/2"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &MusicBrainzService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(1), 1),
	}
}

// recordingResponse mirrors the recording lookup JSON.
type recordingResponse struct {
	Title        string         `json:"title"`
	ArtistCredit []artistCredit `json:"artist-credit"`
	Releases     []struct {
		Title string `json:"title"`
		Date  string `json:"date"`
	} `json:"releases"`
}

type artistCredit struct {
	Name       string `json:"name"`
	JoinPhrase string `json:"joinphrase"`
}

// FetchMetadata fetches title, artist credit, and first release for a recording.
func (m *MusicBrainzService) FetchMetadata(ctx context.Context, recordingID string) (*models.AudioMatch, error) {
	fullURL := fmt.Sprintf("%s/recording/%s?inc=artists+releases&fmt=json", m.baseURL, url.PathEscape(recordingID))

	var parsed recordingResponse
	if err := m.get(ctx, fullURL, &parsed); err != nil {
		return nil, err
	}

	match := &models.AudioMatch{
		RecordingID: recordingID,
		Title:       parsed.Title,
		Artist:      joinArtistCredit(parsed.ArtistCredit),
	}
	if len(parsed.Releases) > 0 {
		match.Album = parsed.Releases[0].Title
		match.Date = parsed.Releases[0].Date
	}

	return match, nil
}

// searchResponse mirrors the recording search JSON. Search hits carry the
// recording fields plus an id and a 0-100 relevance score.
type searchResponse struct {
	Recordings []struct {
		ID    string `json:"id"`
		Score int    `json:"score"`
		recordingResponse
	} `json:"recordings"`
}

// SearchRecording implements [Searcher] against the catalog's search index.
// Used by the confirmation dialog to re-resolve a file after the user
// corrects the title or artist.
func (m *MusicBrainzService) SearchRecording(ctx context.Context, title, artist string) (*models.AudioMatch, error) {
	query := fmt.Sprintf("recording:%q AND artist:%q", title, artist)
	fullURL := fmt.Sprintf("%s/recording?query=%s&limit=1&fmt=json", m.baseURL, url.QueryEscape(query))

	var parsed searchResponse
	if err := m.get(ctx, fullURL, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Recordings) == 0 {
		return nil, fmt.Errorf("%w: no recording matched %q by %q", shared.ErrLookupFailed, title, artist)
	}

	hit := parsed.Recordings[0]
	match := &models.AudioMatch{
		RecordingID: hit.ID,
		Title:       hit.Title,
		Artist:      joinArtistCredit(hit.ArtistCredit),
		Confidence:  float64(hit.Score) / 100,
	}
	if len(hit.Releases) > 0 {
		match.Album = hit.Releases[0].Title
		match.Date = hit.Releases[0].Date
	}

	return match, nil
}

// get performs one rate-limited catalog request and decodes the JSON body.
func (m *MusicBrainzService) get(ctx context.Context, fullURL string, out any) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrLookupFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrLookupFailed, err)
	}
	req.Header.Set("User-Agent", m.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", shared.ErrLookupFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: metadata catalog returned status %d", shared.ErrLookupFailed, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: invalid response: %v", shared.ErrLookupFailed, err)
	}
	return nil
}

func joinArtistCredit(credit []artistCredit) string {
	var b strings.Builder
	for _, c := range credit {
		b.WriteString(c.Name)
		b.WriteString(c.JoinPhrase)
	}
	return b.String()
}
