package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaEmbedder_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req ollamaEmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Model != "all-minilm" || req.Prompt != "hello" {
			t.Errorf("unexpected body %+v", req)
		}
		_ = json.NewEncoder(w).Encode(ollamaEmbedResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer srv.Close()

	v, err := NewOllamaEmbedder(srv.URL, "").Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != 3 || v[2] != 0.3 {
		t.Errorf("unexpected embedding %v", v)
	}
}

func TestOllamaEmbedder_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewOllamaEmbedder(srv.URL, "missing").Embed(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestNewEmbedder(t *testing.T) {
	ctx := context.Background()

	e, err := NewEmbedder(ctx, EmbedderConfig{Provider: ProviderHashing, Dimensions: 32})
	if err != nil || e.Dimensions() != 32 {
		t.Fatalf("hashing: got %v, %v", e, err)
	}
	if _, err := NewEmbedder(ctx, EmbedderConfig{Provider: ProviderGenAI}); err == nil {
		t.Error("expected error for genai without API key")
	}
	if _, err := NewEmbedder(ctx, EmbedderConfig{Provider: "word2vec"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
