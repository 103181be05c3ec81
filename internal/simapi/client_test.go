package simapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClient_RejectsEmptyURL(t *testing.T) {
	if c := NewClient("   "); c != nil {
		t.Error("expected nil client for blank URL")
	}
	if c := NewClient("http://localhost:8000/"); c == nil {
		t.Error("expected client for valid URL")
	} else if c.baseURL != "http://localhost:8000" {
		t.Errorf("baseURL = %q, trailing slash not trimmed", c.baseURL)
	}
}

func TestClient_Models(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("path = %q, want /models", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"default":"xgb_v2","models":["xgb_v2","lstm_v1"]}`)
	}))
	defer srv.Close()

	ml, err := NewClient(srv.URL).Models(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ml.Default != "xgb_v2" || len(ml.Models) != 2 {
		t.Errorf("models = %+v", ml)
	}
}

func TestClient_SearchPlayers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "kohli" {
			t.Errorf("q = %q, want kohli", got)
		}
		_, _ = io.WriteString(w, `[{"id":17,"name":"Virat Kohli","team":"India"}]`)
	}))
	defer srv.Close()

	players, err := NewClient(srv.URL).SearchPlayers(context.Background(), "kohli")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(players) != 1 || players[0].ID != 17 {
		t.Errorf("players = %+v", players)
	}
}

func TestClient_LeaderboardQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stats/leaderboard/batting" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("sort_by") != "runs" || q.Get("limit") != "10" || q.Get("min_innings") != "5" {
			t.Errorf("query = %v", q)
		}
		_, _ = io.WriteString(w, `{"sort_by":"runs","total":412,"leaderboard":[{"rank":1,"name":"Virat Kohli","runs":4008}]}`)
	}))
	defer srv.Close()

	page, err := NewClient(srv.URL).Leaderboard(context.Background(), "batting", LeaderboardQuery{
		SortBy: "runs", Limit: 10, MinInnings: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 412 || len(page.Entries) != 1 || page.Entries[0].Runs != 4008 {
		t.Errorf("page = %+v", page)
	}
}

func TestClient_OpenSeriesStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/simulate_series_stream" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var req SeriesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.NumMatches != 3 || req.Team1Name != "India" {
			t.Errorf("request = %+v", req)
		}
		_, _ = io.WriteString(w, `{"type":"ball"}`+"\n"+`{"type":"match_complete"}`+"\n")
	}))
	defer srv.Close()

	body, err := NewClient(srv.URL).OpenSeriesStream(context.Background(), SeriesRequest{
		Team1Name:  "India",
		Team2Name:  "Australia",
		NumMatches: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading stream: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 2 {
		t.Errorf("stream had %d lines, want 2", lines)
	}
}

func TestClient_BadRequestSurfacesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"detail":"team must have 11 players"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).OpenMatchStream(context.Background(), MatchRequest{})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("error = %v, want ErrBadRequest", err)
	}
	if !strings.Contains(err.Error(), "11 players") {
		t.Errorf("error %q does not carry the service detail", err)
	}
}

func TestClient_ServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Models(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}

func TestClient_GenerateBowlingOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate_bowling_order" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"bowling_order":["Bumrah","Shami","Bumrah","Jadeja"]}`)
	}))
	defer srv.Close()

	order, err := NewClient(srv.URL).GenerateBowlingOrder(context.Background(), BowlersRequest{
		Players: []string{"Bumrah", "Shami", "Jadeja"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 4 || order[0] != "Bumrah" {
		t.Errorf("order = %v", order)
	}
}
