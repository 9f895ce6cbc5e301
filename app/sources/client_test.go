package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(neoWs, launchLib, openNotify string) *Client {
	almanac, _ := LoadAlmanac()
	return NewClient(&http.Client{}, almanac, ClientOptions{
		UserAgent:     "astrotrack-test",
		NasaAPIKey:    "DEMO_KEY",
		NeoWsURL:      neoWs,
		LaunchLibURL:  launchLib,
		OpenNotifyURL: openNotify,
	})
}

func TestFetchNearEarthObjects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("start_date") != "2025-12-01" || query.Get("end_date") != "2025-12-08" {
			t.Errorf("Unexpected date range: %s", r.URL.RawQuery)
		}
		if query.Get("api_key") != "DEMO_KEY" {
			t.Errorf("Expected api_key to be forwarded, got %q", query.Get("api_key"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"element_count": 1,
			"near_earth_objects": {
				"2025-12-03": [{
					"id": "54016", "name": "(2020 HS7)",
					"nasa_jpl_url": "https://ssd.jpl.nasa.gov/",
					"is_potentially_hazardous_asteroid": true,
					"close_approach_data": [{"close_approach_date": "2025-12-03", "orbiting_body": "Earth"}]
				}]
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "", "")

	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	feed, err := client.FetchNearEarthObjects(context.Background(), start, start.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	objects := feed.NearEarthObjects["2025-12-03"]
	if len(objects) != 1 {
		t.Fatalf("Expected 1 object, got %d", len(objects))
	}
	if !objects[0].IsHazardous {
		t.Error("Expected hazardous flag to survive decoding")
	}
}

func TestFetchNearEarthObjects_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "", "")

	_, err := client.FetchNearEarthObjects(context.Background(), time.Now(), time.Now())
	if err == nil {
		t.Fatal("Expected error for HTTP 500, got nil")
	}
}

func TestFetchUpcomingLaunches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/launch/upcoming/" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"count": 1,
			"results": [{
				"id": "abc-123", "url": "https://ll.example/launch/abc-123",
				"name": "Falcon 9 | Starlink",
				"net": "2025-12-20T14:30:00Z",
				"launch_service_provider": {"name": "SpaceX", "type": "Commercial"},
				"mission": {"name": "Starlink Group", "description": "", "type": "Communications"},
				"image": "https://ll.example/image.png"
			}]
		}`))
	}))
	defer server.Close()

	client := newTestClient("", server.URL, "")

	list, err := client.FetchUpcomingLaunches(context.Background(), 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(list.Results) != 1 {
		t.Fatalf("Expected 1 launch, got %d", len(list.Results))
	}
	if list.Results[0].ServiceProvider.Name != "SpaceX" {
		t.Errorf("Expected provider SpaceX, got %q", list.Results[0].ServiceProvider.Name)
	}
}

func TestFetchISSPasses_Live(t *testing.T) {
	risetime := time.Date(2025, 12, 14, 6, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"message": "success",
			"response": [
				{"risetime": ` + "1765692000" + `, "duration": 540}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient("", "", server.URL)

	result, err := client.FetchISSPasses(context.Background(), 40.7128, -74.0060, 0, 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Predicted {
		t.Error("Expected live passes, got predicted fallback")
	}
	if len(result.Passes) != 1 {
		t.Fatalf("Expected 1 pass, got %d", len(result.Passes))
	}
	if result.Passes[0].Date != risetime.Format(time.RFC3339) {
		t.Errorf("Expected rise time %s, got %s", risetime.Format(time.RFC3339), result.Passes[0].Date)
	}
	if result.Passes[0].Duration != 540 {
		t.Errorf("Expected duration 540, got %d", result.Passes[0].Duration)
	}
}

func TestFetchISSPasses_FallbackOnHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient("", "", server.URL)

	result, err := client.FetchISSPasses(context.Background(), 40.7128, -74.0060, 0, 3)
	if err != nil {
		t.Fatalf("Fallback should never surface an error, got %v", err)
	}
	if !result.Predicted {
		t.Fatal("Expected predicted fallback passes")
	}
	if len(result.Passes) != 3 {
		t.Fatalf("Expected 3 predicted passes, got %d", len(result.Passes))
	}

	// Fixed offsets keep synthetic data recognizable.
	durations := []int{360, 420, 300}
	for i, pass := range result.Passes {
		if pass.Duration != durations[i] {
			t.Errorf("Pass %d: expected duration %d, got %d", i, durations[i], pass.Duration)
		}
		if _, err := time.Parse(time.RFC3339, pass.Date); err != nil {
			t.Errorf("Pass %d: unparseable date %q", i, pass.Date)
		}
	}
}

func TestFetchISSPasses_FallbackOnMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := newTestClient("", "", server.URL)

	result, err := client.FetchISSPasses(context.Background(), 0, 0, 0, 3)
	if err != nil {
		t.Fatalf("Fallback should never surface an error, got %v", err)
	}
	if !result.Predicted {
		t.Error("Expected predicted fallback passes for malformed body")
	}
}
