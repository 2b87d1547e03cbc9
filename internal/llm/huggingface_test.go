package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newHFTestProvider(t *testing.T, handler http.HandlerFunc) (*HuggingFaceProvider, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := NewHuggingFaceProvider(Config{
		Provider: "huggingface",
		APIKey:   "hf_test",
		BaseURL:  server.URL,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return provider, server
}

func TestHuggingFace_ClassifyEntailment(t *testing.T) {
	provider, _ := newHFTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "roberta-large-mnli") {
			t.Errorf("expected entailment model in path, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer hf_test" {
			t.Errorf("unexpected auth header: %s", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[[
			{"label": "CONTRADICTION", "score": 0.88},
			{"label": "NEUTRAL", "score": 0.09},
			{"label": "ENTAILMENT", "score": 0.03}
		]]`))
	})

	result, err := provider.ClassifyEntailment(context.Background(),
		"The Eiffel Tower is in Paris.", "The Eiffel Tower is located in Berlin.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Label != "contradiction" {
		t.Errorf("expected contradiction, got %q", result.Label)
	}
	if result.Score != 0.88 {
		t.Errorf("expected score 0.88, got %v", result.Score)
	}
}

func TestHuggingFace_ClassifyEntailment_FlatResponse(t *testing.T) {
	provider, _ := newHFTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"label": "ENTAILMENT", "score": 0.75}]`))
	})

	result, err := provider.ClassifyEntailment(context.Background(), "premise", "hypothesis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Label != "entailment" || result.Score != 0.75 {
		t.Errorf("got (%q, %v), want (entailment, 0.75)", result.Label, result.Score)
	}
}

func TestHuggingFace_ClassifyEntailment_APIError(t *testing.T) {
	provider, _ := newHFTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "model is loading"}`))
	})

	if _, err := provider.ClassifyEntailment(context.Background(), "p", "h"); err == nil {
		t.Error("expected error for API failure")
	}
}

func TestHuggingFace_ClassifyEntailment_MalformedBody(t *testing.T) {
	provider, _ := newHFTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected": "shape"}`))
	})

	if _, err := provider.ClassifyEntailment(context.Background(), "p", "h"); err == nil {
		t.Error("expected error for malformed response")
	}
}

func TestHuggingFace_Embed(t *testing.T) {
	provider, _ := newHFTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "feature-extraction") {
			t.Errorf("expected feature-extraction path, got %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[[0.1, 0.2, 0.3], [0.4, 0.5, 0.6]]`))
	})

	vectors, err := provider.Embed(context.Background(), []string{"claim", "article"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors) != 2 || len(vectors[0]) != 3 {
		t.Errorf("unexpected vector shape: %v", vectors)
	}
}

func TestHuggingFace_Embed_CountMismatch(t *testing.T) {
	provider, _ := newHFTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[0.1, 0.2]]`))
	})

	if _, err := provider.Embed(context.Background(), []string{"a", "b"}); err == nil {
		t.Error("expected error for vector count mismatch")
	}
}

func TestHuggingFace_Embed_EmptyInput(t *testing.T) {
	called := false
	provider, _ := newHFTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	vectors, err := provider.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors) != 0 {
		t.Errorf("expected empty result, got %v", vectors)
	}
	if called {
		t.Error("expected no API call for empty input")
	}
}
