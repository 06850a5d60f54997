package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"travelbot/internal/config"
	"travelbot/internal/model"
	"travelbot/pkg/logger"
)

// fakeRetriever returns canned documents and records the query it received
type fakeRetriever struct {
	docs      []model.Document
	err       error
	gotTable  string
	gotTopK   int
	gotEmbLen int
}

func (f *fakeRetriever) SearchSimilar(_ context.Context, table string, embedding []float32, topK int) ([]model.Document, error) {
	f.gotTable = table
	f.gotTopK = topK
	f.gotEmbLen = len(embedding)
	return f.docs, f.err
}

// fakeOpenAIServer serves both the embeddings and the chat endpoint
func fakeOpenAIServer(t *testing.T, answer string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/embeddings":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"data": []map[string]interface{}{
					{"embedding": []float32{0.1, 0.2, 0.3}, "index": 0},
				},
			})
		case "/chat/completions":
			var req ChatCompletionRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			// The prompt must carry the retrieved passages.
			if len(req.Messages) != 2 || !strings.Contains(req.Messages[1].Content, "Reference passages:") {
				t.Errorf("unexpected prompt: %+v", req.Messages)
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"role": "assistant", "content": answer}},
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestClient(apiBase string) *OpenAIClient {
	return NewOpenAIClient(&config.OpenAIConfig{
		APIKey:         "test-key",
		APIBase:        apiBase,
		ChatModel:      "test-model",
		EmbeddingModel: "test-embedding",
		Timeout:        5,
		Enabled:        true,
	}, logger.NewNop())
}

func TestRetrievalAnswer(t *testing.T) {
	srv := fakeOpenAIServer(t, "Checked bags cost $35 on domestic routes.")
	defer srv.Close()

	store := &fakeRetriever{docs: []model.Document{
		{ID: 1, Content: "First checked bag: $35 on domestic flights.", Source: "faq.md"},
		{ID: 2, Content: "Second checked bag: $45.", Source: "faq.md"},
	}}
	answerer := NewRetrievalAnswerer(store, newTestClient(srv.URL), "faq_documents", 5, logger.NewNop())

	answer, err := answerer.Answer(context.Background(), "How much does a checked bag cost?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Checked bags cost $35 on domestic routes." {
		t.Errorf("answer = %q", answer)
	}
	if store.gotTable != "faq_documents" || store.gotTopK != 5 {
		t.Errorf("search used table=%q topK=%d", store.gotTable, store.gotTopK)
	}
	if store.gotEmbLen != 3 {
		t.Errorf("embedding length = %d, want 3", store.gotEmbLen)
	}
}

func TestRetrievalAnswerNoDocuments(t *testing.T) {
	srv := fakeOpenAIServer(t, "unused")
	defer srv.Close()

	answerer := NewRetrievalAnswerer(&fakeRetriever{}, newTestClient(srv.URL), "faq_documents", 5, logger.NewNop())

	_, err := answerer.Answer(context.Background(), "anything")
	if !errors.Is(err, ErrNoMatches) {
		t.Fatalf("err = %v, want ErrNoMatches", err)
	}
}

func TestRetrievalAnswerDisabled(t *testing.T) {
	answerer := NewRetrievalAnswerer(&fakeRetriever{}, nil, "faq_documents", 5, logger.NewNop())

	var extErr *ExternalServiceError
	if _, err := answerer.Answer(context.Background(), "anything"); !errors.As(err, &extErr) {
		t.Fatalf("err = %v, want ExternalServiceError", err)
	}
}

func TestRetrievalTopKDefault(t *testing.T) {
	answerer := NewRetrievalAnswerer(&fakeRetriever{}, nil, "faq_documents", 0, logger.NewNop())
	if answerer.topK != 5 {
		t.Errorf("topK = %d, want default 5", answerer.topK)
	}
}
