package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAskSuccess(t *testing.T) {
	var gotQuestion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			Question string `json:"question"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gotQuestion = req.Question
		json.NewEncoder(w).Encode(map[string]string{
			"response":  "Hi there!",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	answer := client.Ask(context.Background(), "Hello")

	if answer != "Hi there!" {
		t.Errorf("answer = %q, want %q", answer, "Hi there!")
	}
	if gotQuestion != "Hello" {
		t.Errorf("backend received question %q, want %q", gotQuestion, "Hello")
	}
}

func TestAskDegradesToFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			want: FallbackResponse,
		},
		{
			name: "bad request status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "no question", http.StatusBadRequest)
			},
			want: FallbackResponse,
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
			want: FallbackResponse,
		},
		{
			name: "well-formed but empty answer",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]string{"response": ""})
			},
			want: EmptyResponseFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(srv.URL, 0)
			if got := client.Ask(context.Background(), "2+2"); got != tt.want {
				t.Errorf("answer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAskUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := NewClient(srv.URL, time.Second)
	if got := client.Ask(context.Background(), "2+2"); got != FallbackResponse {
		t.Errorf("answer = %q, want fallback", got)
	}
}

func TestAskTimeoutIsBounded(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(srv.URL, 50*time.Millisecond)

	start := time.Now()
	got := client.Ask(context.Background(), "slow")
	elapsed := time.Since(start)

	if got != FallbackResponse {
		t.Errorf("answer = %q, want fallback", got)
	}
	if elapsed > 2*time.Second {
		t.Errorf("Ask did not honor its bound, took %v", elapsed)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	if err := client.Health(context.Background()); err != nil {
		t.Errorf("health: %v", err)
	}
}

func TestHealthUnhealthyStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	if err := client.Health(context.Background()); err == nil {
		t.Error("expected an error for unhealthy backend")
	}
}

func TestDashboardStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dashboard-stats" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"total_study_sessions": 4,
			"quizzes_completed":    20,
			"average_score":        87.5,
			"study_streak":         3,
			"trends":               map[string]float64{"sessions": 12.5, "quizzes": 0, "score": -2.1},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	stats, err := client.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalStudySessions != 4 || stats.QuizzesCompleted != 20 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AverageScore != 87.5 || stats.StudyStreak != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Trends.Sessions != 12.5 {
		t.Errorf("trends = %+v", stats.Trends)
	}
}
