package vin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const recallFixture = `{
  "Count": 3,
  "results": [
    {
      "NHTSACampaignNumber": "21V123000",
      "Component": "SERVICE BRAKES, HYDRAULIC",
      "Summary": "The Brakes may lose effectiveness under heavy load.",
      "Remedy": "Dealers will replace the master cylinder free of charge.",
      "Notes": ""
    },
    {
      "NHTSACampaignNumber": "22V456000",
      "Component": "EXTERIOR",
      "Summary": "Paint may peel on the hood.",
      "Remedy": "Dealers will repaint the hood.",
      "Notes": "Cosmetic only."
    },
    {
      "NHTSACampaignNumber": "20V789000",
      "Component": "UNKNOWN",
      "Summary": "Unclassified campaign.",
      "Remedy": "",
      "Notes": ""
    }
  ]
}`

func TestFetchRecalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("make") != "Honda" || q.Get("model") != "Accord" || q.Get("modelYear") != "2003" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(recallFixture))
	}))
	defer server.Close()

	client := NewRecallClientWithBaseURL(server.URL, 5*time.Second)
	recalls, err := client.FetchRecalls(context.Background(), "Honda", "Accord", "2003")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	// The UNKNOWN-component entry is dropped
	if len(recalls) != 2 {
		t.Fatalf("recalls = %d, want 2", len(recalls))
	}

	brakes := recalls[0]
	if brakes.RecallID != "21V123000" {
		t.Errorf("recallID = %q", brakes.RecallID)
	}
	if !brakes.IsCritical {
		t.Error("brake failure recall should be flagged critical")
	}

	paint := recalls[1]
	if paint.IsCritical {
		t.Error("cosmetic recall should not be flagged critical")
	}
	if paint.AffectedComponent != "EXTERIOR" {
		t.Errorf("component = %q", paint.AffectedComponent)
	}
}

func TestFetchRecallsCriticalFromNotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [{
			"NHTSACampaignNumber": "23V001000",
			"Component": "ENGINE",
			"Summary": "An internal fault may develop.",
			"Remedy": "Software update.",
			"Notes": "Owners are advised: DO NOT DRIVE until repaired."
		}]}`))
	}))
	defer server.Close()

	client := NewRecallClientWithBaseURL(server.URL, 5*time.Second)
	recalls, err := client.FetchRecalls(context.Background(), "Ford", "F-150", "2023")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(recalls) != 1 || !recalls[0].IsCritical {
		t.Error("do-not-drive note should flag the recall critical")
	}
}

func TestFetchRecallsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewRecallClientWithBaseURL(server.URL, 5*time.Second)
	if _, err := client.FetchRecalls(context.Background(), "Honda", "Accord", "2003"); err == nil {
		t.Fatal("expected error on 502 so callers can mark the section degraded")
	}
}

func TestFetchRecallsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Count": 0, "results": []}`))
	}))
	defer server.Close()

	client := NewRecallClientWithBaseURL(server.URL, 5*time.Second)
	recalls, err := client.FetchRecalls(context.Background(), "Honda", "Accord", "2003")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(recalls) != 0 {
		t.Errorf("recalls = %d, want 0", len(recalls))
	}
}
