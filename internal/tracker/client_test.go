package tracker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"crescendo/internal/services"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(server.URL, "key", "crescendo-test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	client.httpClient = server.Client()
	return client
}

func TestTorrentFetchesAndDecodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "key" {
			t.Errorf("authorization = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "crescendo-test" {
			t.Errorf("user agent = %q", got)
		}
		if r.URL.Query().Get("action") != "torrent" || r.URL.Query().Get("id") != "42" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{
			"status": "success",
			"response": {
				"group": {"id": 7, "name": "Album", "year": 2001,
					"musicInfo": {"artists": [{"id": 1, "name": "Artist"}]}},
				"torrent": {"id": 42, "media": "CD", "format": "FLAC",
					"encoding": "24bit Lossless", "scene": true,
					"lossyMasterApproved": false, "filePath": "Artist - Album"}
			}
		}`))
	})

	resp, err := client.Torrent(context.Background(), 42)
	if err != nil {
		t.Fatalf("Torrent: %v", err)
	}
	if resp.Group.Name != "Album" || resp.Torrent.ID != 42 {
		t.Fatalf("unexpected payload %+v", resp)
	}
	if !resp.Torrent.Scene {
		t.Fatal("scene flag lost in decode")
	}
	if resp.Torrent.LossyMasterApproved == nil || *resp.Torrent.LossyMasterApproved {
		t.Fatal("lossyMasterApproved should decode to false, not nil/true")
	}
	if resp.Torrent.LossyWebApproved != nil {
		t.Fatal("absent lossyWebApproved should stay nil")
	}
}

func TestTorrentFailureStatusIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "failure", "error": "bad id parameter"}`))
	})
	if _, err := client.Torrent(context.Background(), 9); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTorrentHTTPErrorIsNetworkError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	if _, err := client.Torrent(context.Background(), 9); !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestDownloadTorrentReturnsRawBytes(t *testing.T) {
	descriptor := "d8:announce0:e"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("action") != "download" {
			t.Errorf("unexpected action %q", r.URL.Query().Get("action"))
		}
		w.Write([]byte(descriptor))
	})
	body, err := client.DownloadTorrent(context.Background(), 42)
	if err != nil {
		t.Fatalf("DownloadTorrent: %v", err)
	}
	if string(body) != descriptor {
		t.Fatalf("descriptor = %q", body)
	}
}

func TestInvalidIDsRejectedBeforeNetwork(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	if _, err := client.Torrent(context.Background(), 0); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := client.DownloadTorrent(context.Background(), -1); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNewRequiresURLAndKey(t *testing.T) {
	if _, err := New("", "key", ""); err == nil {
		t.Fatal("expected error for empty base url")
	}
	if _, err := New("https://tracker.example", "", ""); err == nil {
		t.Fatal("expected error for empty api key")
	}
}
