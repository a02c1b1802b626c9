package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stars-server/internal/race"
)

func TestRacesHandler(t *testing.T) {
	h := NewRacesHandler(race.MustDefault())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/races", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var got []struct {
		ID                 string `json:"id"`
		StartingPopulation int64  `json:"starting_population"`
		Ideal              struct {
			Radiation int `json:"radiation"`
		} `json:"ideal"`
	}
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("Expected 6 races, got %d", len(got))
	}

	for _, r := range got {
		if r.ID == "insectoid" && r.Ideal.Radiation != 85 {
			t.Errorf("Expected insectoid ideal radiation 85, got %d", r.Ideal.Radiation)
		}
		if r.StartingPopulation <= 0 {
			t.Errorf("Race %s has no starting population", r.ID)
		}
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/races", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", w.Code)
	}
}
