package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quickact/internal/shared"
)

func TestMusicBrainzService_FetchMetadata(t *testing.T) {
	t.Run("successful fetch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/recording/rec-1" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.Header.Get("User-Agent") != "test/1.0" {
				t.Errorf("expected configured user agent, got %q", r.Header.Get("User-Agent"))
			}
			w.Write([]byte(`{
				"title": "Holocene",
				"artist-credit": [
					{"name": "Bon Iver", "joinphrase": ""}
				],
				"releases": [
					{"title": "Bon Iver, Bon Iver", "date": "2011-06-17"},
					{"title": "Later Release", "date": "2012-01-01"}
				]
			}`))
		}))
		defer srv.Close()

		svc := NewMusicBrainzService(srv.URL, "test/1.0", srv.Client())
		match, err := svc.FetchMetadata(context.Background(), "rec-1")
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}

		if match.Title != "Holocene" || match.Artist != "Bon Iver" {
			t.Errorf("unexpected match: %+v", match)
		}
		if match.Album != "Bon Iver, Bon Iver" || match.Date != "2011-06-17" {
			t.Errorf("expected first release, got album %q date %q", match.Album, match.Date)
		}
		if match.Confidence != 0 {
			t.Errorf("catalog must not set confidence, got %v", match.Confidence)
		}
	})

	t.Run("joined artist credit", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"title": "Duet",
				"artist-credit": [
					{"name": "First", "joinphrase": " & "},
					{"name": "Second", "joinphrase": ""}
				],
				"releases": []
			}`))
		}))
		defer srv.Close()

		svc := NewMusicBrainzService(srv.URL, "test/1.0", srv.Client())
		match, err := svc.FetchMetadata(context.Background(), "rec-2")
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}
		if match.Artist != "First & Second" {
			t.Errorf("expected joined credit, got %q", match.Artist)
		}
		if match.Album != "" || match.Date != "" {
			t.Errorf("expected empty release fields, got %+v", match)
		}
	})

	t.Run("not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		svc := NewMusicBrainzService(srv.URL, "test/1.0", srv.Client())
		if _, err := svc.FetchMetadata(context.Background(), "missing"); err == nil {
			t.Error("expected error for 404 response")
		}
	})
}

func TestMusicBrainzService_SearchRecording(t *testing.T) {
	t.Run("best hit with normalized score", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/recording" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			query := r.URL.Query().Get("query")
			if !strings.Contains(query, "Holocene") || !strings.Contains(query, "Bon Iver") {
				t.Errorf("edited fields missing from query: %q", query)
			}
			w.Write([]byte(`{
				"recordings": [
					{
						"id": "rec-9",
						"score": 97,
						"title": "Holocene",
						"artist-credit": [{"name": "Bon Iver", "joinphrase": ""}],
						"releases": [{"title": "Bon Iver, Bon Iver", "date": "2011-06-17"}]
					}
				]
			}`))
		}))
		defer srv.Close()

		svc := NewMusicBrainzService(srv.URL, "test/1.0", srv.Client())
		match, err := svc.SearchRecording(context.Background(), "Holocene", "Bon Iver")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if match.RecordingID != "rec-9" || match.Title != "Holocene" {
			t.Errorf("unexpected match: %+v", match)
		}
		if match.Confidence != 0.97 {
			t.Errorf("expected score normalized to 0.97, got %v", match.Confidence)
		}
		if match.Album != "Bon Iver, Bon Iver" {
			t.Errorf("release fields missing: %+v", match)
		}
	})

	t.Run("no hits is a lookup failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"recordings": []}`))
		}))
		defer srv.Close()

		svc := NewMusicBrainzService(srv.URL, "test/1.0", srv.Client())
		if _, err := svc.SearchRecording(context.Background(), "Nothing", "Nobody"); !errors.Is(err, shared.ErrLookupFailed) {
			t.Errorf("expected lookup failure, got %v", err)
		}
	})
}
