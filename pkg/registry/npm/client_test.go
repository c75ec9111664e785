package npm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mwittig/packsize/pkg/registry"
)

func testClient(url string) *Client {
	c := NewClient(url, time.Second)
	c.RetryDelay = time.Millisecond
	return c
}

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/express" {
			http.NotFound(w, r)
			return
		}
		resp := registryResponse{
			Name:        "express",
			Description: "Fast, unopinionated web framework",
			DistTags:    distTags{Latest: "4.18.2"},
			Versions: map[string]versionDetails{
				"4.18.2": {Dist: dist{UnpackedSize: 214000, Size: 52000}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	pkg, err := testClient(server.URL).Fetch(context.Background(), "express")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if pkg.Size != 214000 {
		t.Errorf("Size = %d, want unpackedSize 214000", pkg.Size)
	}
	if pkg.LatestVersion != "4.18.2" {
		t.Errorf("LatestVersion = %q, want 4.18.2", pkg.LatestVersion)
	}
	if pkg.Description != "Fast, unopinionated web framework" {
		t.Errorf("Description = %q", pkg.Description)
	}
}

func TestClient_Fetch_SizeFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := registryResponse{
			DistTags: distTags{Latest: "1.0.0"},
			Versions: map[string]versionDetails{
				"1.0.0": {Dist: dist{Size: 9000}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	pkg, err := testClient(server.URL).Fetch(context.Background(), "tiny")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if pkg.Size != 9000 {
		t.Errorf("Size = %d, want tarball size 9000", pkg.Size)
	}
}

func TestClient_Fetch_MissingLatestVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := registryResponse{DistTags: distTags{Latest: "2.0.0"}}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	pkg, err := testClient(server.URL).Fetch(context.Background(), "odd")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if pkg.Size != 0 {
		t.Errorf("Size = %d, want 0 when latest version details are missing", pkg.Size)
	}
	if pkg.LatestVersion != "2.0.0" {
		t.Errorf("LatestVersion = %q, want 2.0.0", pkg.LatestVersion)
	}
}

func TestClient_Fetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := testClient(server.URL).Fetch(context.Background(), "missing-pkg")
	if !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
