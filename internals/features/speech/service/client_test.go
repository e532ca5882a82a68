package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestProcessAudio_SendsMultipartAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/process-audio" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("expected_text"); got != "I scream for ice cream" {
			t.Errorf("expected_text = %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "attempt.m4a" {
			t.Errorf("filename = %q", header.Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"transcription": "i scream for ice cream",
			"spacy_stats":   map[string]int{"tokens": 5},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.ProcessAudio(context.Background(), "attempt.m4a",
		strings.NewReader("fake-audio-bytes"), "I scream for ice cream")
	if err != nil {
		t.Fatalf("ProcessAudio: %v", err)
	}
	if result.Transcription != "i scream for ice cream" {
		t.Errorf("transcription = %q", result.Transcription)
	}
	if !strings.Contains(string(result.SpacyStats), `"tokens":5`) {
		t.Errorf("spacy_stats = %s", result.SpacyStats)
	}
}

func TestAnalyzeFeedback_SendsJSONAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze-feedback" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		for _, key := range []string{"student_id", "attempt_id", "speech_text", "spacy_stats"} {
			if _, ok := body[key]; !ok {
				t.Errorf("missing %q in request body", key)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"feedback": map[string]interface{}{
				"summary":         "Good pacing.",
				"recommendations": []string{"Slow down on long vowels."},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	fb, err := client.AnalyzeFeedback(context.Background(), "student-1", "attempt-1",
		"i scream", json.RawMessage(`{"tokens":2}`))
	if err != nil {
		t.Fatalf("AnalyzeFeedback: %v", err)
	}
	if fb.Summary != "Good pacing." {
		t.Errorf("summary = %q", fb.Summary)
	}
	if len(fb.Recommendations) != 1 {
		t.Errorf("recommendations = %v", fb.Recommendations)
	}
}

func TestAnalysisContext_OutlivesRequestDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond) // slower than the request deadline below
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"transcription": "slow but fine",
		})
	}))
	defer srv.Close()

	// Simulate the middleware's short request deadline and let it expire
	// before the upstream call completes.
	request, cancelRequest := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelRequest()

	ctx, cancel := AnalysisContext(request)
	defer cancel()

	<-request.Done() // request deadline has passed; analysis must survive it

	client := NewClient(srv.URL)
	result, err := client.ProcessAudio(ctx, "a.m4a", strings.NewReader("x"), "text")
	if err != nil {
		t.Fatalf("ProcessAudio after request deadline: %v", err)
	}
	if result.Transcription != "slow but fine" {
		t.Errorf("transcription = %q", result.Transcription)
	}
}

func TestClient_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ProcessAudio(context.Background(), "a.m4a", strings.NewReader("x"), "text")
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	if !strings.Contains(err.Error(), "502") || !strings.Contains(err.Error(), "model unavailable") {
		t.Errorf("err = %v, want status and body snippet", err)
	}
}
