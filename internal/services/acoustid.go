// AcoustID client for fingerprint identification
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"quickact/internal/shared"
)

// AcoustIDService implements [Identifier] against the AcoustID v2 API.
type AcoustIDService struct {
	baseURL    string
	apiKeyEnv  string
	httpClient *http.Client
}

// NewAcoustIDService creates an AcoustID client.
// The API key is read from the apiKeyEnv environment variable on each
// lookup, not at construction time.
func NewAcoustIDService(baseURL, apiKeyEnv string, client *http.Client) *AcoustIDService {
	if baseURL == "" {
		baseURL = "https://api.acoustid.org/v2/lookup"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &AcoustIDService{
		baseURL:    baseURL,
		apiKeyEnv:  apiKeyEnv,
		httpClient: client,
	}
}

// acoustIDResponse mirrors the lookup endpoint's JSON envelope.
type acoustIDResponse struct {
	Status  string `json:"status"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
	Results []struct {
		ID         string  `json:"id"`
		Score      float64 `json:"score"`
		Recordings []struct {
			ID      string `json:"id"`
			Title   string `json:"title"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
		} `json:"recordings"`
	} `json:"results"`
}

// LookupFingerprint submits a fingerprint and returns scored candidates.
func (a *AcoustIDService) LookupFingerprint(ctx context.Context, fp Fingerprint) ([]Candidate, error) {
	params := url.Values{}
	params.Set("client", os.Getenv(a.apiKeyEnv))
	params.Set("duration", strconv.Itoa(fp.Duration))
	params.Set("fingerprint", fp.Value)
	params.Set("meta", "recordings")
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrLookupFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrLookupFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: identification service returned status %d", shared.ErrLookupFailed, resp.StatusCode)
	}

	var parsed acoustIDResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", shared.ErrLookupFailed, err)
	}
	if parsed.Status != "ok" {
		return nil, fmt.Errorf("%w: %s", shared.ErrLookupFailed, parsed.Error.Message)
	}

	var candidates []Candidate
	for _, result := range parsed.Results {
		if len(result.Recordings) == 0 {
			continue
		}
		rec := result.Recordings[0]
		artist := ""
		if len(rec.Artists) > 0 {
			artist = rec.Artists[0].Name
		}
		candidates = append(candidates, Candidate{
			RecordingID: rec.ID,
			Title:       rec.Title,
			Artist:      artist,
			Score:       result.Score,
		})
	}

	return candidates, nil
}
