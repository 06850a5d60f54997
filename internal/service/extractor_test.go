package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"travelbot/internal/config"
	"travelbot/pkg/logger"
)

// fakeCompletionServer answers every chat completion with the given content
func fakeCompletionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer auth, got %q", r.Header.Get("Authorization"))
		}

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestExtractor(apiBase string) *CriteriaExtractor {
	cfg := &config.OpenAIConfig{
		APIKey:    "test-key",
		APIBase:   apiBase,
		ChatModel: "test-model",
		Timeout:   5,
		Enabled:   true,
	}
	return NewCriteriaExtractor(NewOpenAIClient(cfg, logger.NewNop()), logger.NewNop())
}

func TestExtractSuccess(t *testing.T) {
	srv := fakeCompletionServer(t, http.StatusOK, `{
		"departure_city": "Chicago",
		"arrival_city": "Denver",
		"departure_date": "2024-07-04",
		"departure_time": null,
		"arrival_time": null,
		"max_price": 300,
		"wifi_available": true,
		"direct": null
	}`)
	defer srv.Close()

	c, err := newTestExtractor(srv.URL).Extract(context.Background(), "Chicago to Denver on July 4th under $300 with wifi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.DepartureCity != "Chicago" || c.ArrivalCity != "Denver" || c.DepartureDate != "2024-07-04" {
		t.Errorf("required fields = %q/%q/%q", c.DepartureCity, c.ArrivalCity, c.DepartureDate)
	}
	if c.MaxPrice == nil || *c.MaxPrice != 300 {
		t.Errorf("MaxPrice = %v, want 300", c.MaxPrice)
	}
	if c.WifiAvailable == nil || !*c.WifiAvailable {
		t.Errorf("WifiAvailable = %v, want true", c.WifiAvailable)
	}
	if c.Direct != nil {
		t.Errorf("Direct = %v, want nil", *c.Direct)
	}
}

func TestExtractToleratesFencedJSON(t *testing.T) {
	srv := fakeCompletionServer(t, http.StatusOK, "```json\n"+
		`{"departure_city": "Chicago", "arrival_city": "Denver", "departure_date": "2024-07-04"}`+
		"\n```")
	defer srv.Close()

	c, err := newTestExtractor(srv.URL).Extract(context.Background(), "Chicago to Denver")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.DepartureCity != "Chicago" {
		t.Errorf("DepartureCity = %q, want Chicago", c.DepartureCity)
	}
}

func TestExtractLeavesBadValuesUnset(t *testing.T) {
	// The model returned a prose date and a junk time; both are dropped so
	// the dialog collects them manually.
	srv := fakeCompletionServer(t, http.StatusOK, `{
		"departure_city": "Chicago",
		"arrival_city": "Denver",
		"departure_date": "July 4th",
		"departure_time": "morning",
		"arrival_time": null,
		"max_price": null,
		"wifi_available": null,
		"direct": null
	}`)
	defer srv.Close()

	c, err := newTestExtractor(srv.URL).Extract(context.Background(), "Chicago to Denver on July 4th in the morning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.DepartureDate != "" {
		t.Errorf("DepartureDate = %q, want unset", c.DepartureDate)
	}
	if c.DepartureTime != nil {
		t.Errorf("DepartureTime = %q, want nil", *c.DepartureTime)
	}
}

func TestExtractMalformedResponse(t *testing.T) {
	srv := fakeCompletionServer(t, http.StatusOK, "I'd be happy to help you book a flight!")
	defer srv.Close()

	_, err := newTestExtractor(srv.URL).Extract(context.Background(), "book me a flight")
	var malErr *MalformedResponseError
	if !errors.As(err, &malErr) {
		t.Fatalf("err = %v, want MalformedResponseError", err)
	}
}

func TestExtractMissingRequiredKeys(t *testing.T) {
	srv := fakeCompletionServer(t, http.StatusOK, `{"departure_city": "Chicago"}`)
	defer srv.Close()

	_, err := newTestExtractor(srv.URL).Extract(context.Background(), "from Chicago")
	var malErr *MalformedResponseError
	if !errors.As(err, &malErr) {
		t.Fatalf("err = %v, want MalformedResponseError", err)
	}
}

func TestExtractServerError(t *testing.T) {
	srv := fakeCompletionServer(t, http.StatusInternalServerError, "")
	defer srv.Close()

	_, err := newTestExtractor(srv.URL).Extract(context.Background(), "book me a flight")
	var extErr *ExternalServiceError
	if !errors.As(err, &extErr) {
		t.Fatalf("err = %v, want ExternalServiceError", err)
	}
}

func TestExtractDisabledClient(t *testing.T) {
	cfg := &config.OpenAIConfig{Enabled: false}
	extractor := NewCriteriaExtractor(NewOpenAIClient(cfg, logger.NewNop()), logger.NewNop())

	_, err := extractor.Extract(context.Background(), "book me a flight")
	var extErr *ExternalServiceError
	if !errors.As(err, &extErr) {
		t.Fatalf("err = %v, want ExternalServiceError", err)
	}

	_, err = NewCriteriaExtractor(nil, logger.NewNop()).Extract(context.Background(), "book me a flight")
	if !errors.As(err, &extErr) {
		t.Fatalf("nil client err = %v, want ExternalServiceError", err)
	}
}
