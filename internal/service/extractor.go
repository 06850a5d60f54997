package service

import (
	"context"
	"fmt"
	"strconv"

	"travelbot/internal/model"
	"travelbot/internal/utils"
	"travelbot/pkg/logger"
)

const extractionSystemPrompt = `You are a flight booking assistant. When given a user's input, you must output a JSON object with these fields:

Required:
- departure_city
- arrival_city
- departure_date

Optional (use null if not provided):
- departure_time
- arrival_time
- max_price
- wifi_available
- direct

Normalize any free-form departure_date into strict "YYYY-MM-DD" format.
Always respond with JSON only, filling any missing fields with null.`

// CriteriaExtractor turns a free-form user request into a partially-filled
// criteria record with a single structured-extraction call.
type CriteriaExtractor struct {
	client *OpenAIClient
	log    *logger.Logger
}

// NewCriteriaExtractor creates a new extractor
func NewCriteriaExtractor(client *OpenAIClient, log *logger.Logger) *CriteriaExtractor {
	return &CriteriaExtractor{
		client: client,
		log:    log.Named("extractor"),
	}
}

// Extract performs one extraction call. It returns ExternalServiceError when
// the remote call fails or times out and MalformedResponseError when the
// returned text is not a JSON object or omits the required keys. In both
// cases the caller falls back to manual field collection.
func (e *CriteriaExtractor) Extract(ctx context.Context, userText string) (*model.Criteria, error) {
	if e.client == nil || !e.client.IsEnabled() {
		return nil, &ExternalServiceError{Err: fmt.Errorf("extraction API is not enabled")}
	}

	req := ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: extractionSystemPrompt},
			{Role: "user", Content: userText},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	resp, err := e.client.ChatCompletion(ctx, req)
	if err != nil {
		return nil, &ExternalServiceError{Err: err}
	}

	content, err := resp.CompletionText()
	if err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	var raw map[string]interface{}
	if err := utils.ParseLLMJSON(content, &raw); err != nil {
		e.log.Warn("extraction returned unparsable content", logger.Error(err))
		return nil, &MalformedResponseError{Content: content, Err: err}
	}

	for _, key := range model.RequiredFields {
		if _, ok := raw[key]; !ok {
			return nil, &MalformedResponseError{
				Content: content,
				Err:     fmt.Errorf("missing required key %q", key),
			}
		}
	}

	return criteriaFromExtraction(raw), nil
}

// criteriaFromExtraction coerces the loosely-typed extraction object into a
// criteria record, re-normalizing every field. Values the model got wrong
// (bad date format, junk times) are left unset so the dialog collects them.
func criteriaFromExtraction(raw map[string]interface{}) *model.Criteria {
	c := &model.Criteria{}

	if v := stringValue(raw[model.FieldDepartureCity]); v != "" {
		if city, err := NormalizeCity(model.FieldDepartureCity, v); err == nil {
			c.DepartureCity = city
		}
	}
	if v := stringValue(raw[model.FieldArrivalCity]); v != "" {
		if city, err := NormalizeCity(model.FieldArrivalCity, v); err == nil {
			c.ArrivalCity = city
		}
	}
	if v := stringValue(raw[model.FieldDepartureDate]); v != "" {
		if date, err := NormalizeDate(v); err == nil {
			c.DepartureDate = date
		}
	}
	if v := stringValue(raw[model.FieldDepartureTime]); v != "" {
		c.DepartureTime = NormalizeTimeOfDay(v)
	}
	if v := stringValue(raw[model.FieldArrivalTime]); v != "" {
		c.ArrivalTime = NormalizeTimeOfDay(v)
	}
	if v := stringValue(raw[model.FieldMaxPrice]); v != "" {
		c.MaxPrice = NormalizePrice(v)
	}
	if v := stringValue(raw[model.FieldWifiAvailable]); v != "" {
		c.WifiAvailable = NormalizeBool(v)
	}
	if v := stringValue(raw[model.FieldDirect]); v != "" {
		c.Direct = NormalizeBool(v)
	}

	return c
}

// stringValue renders a JSON value for re-normalization. The model sometimes
// returns numbers or booleans where strings were asked for.
func stringValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}
