package service

import (
	"context"
	"fmt"
	"strings"

	"travelbot/internal/model"
	"travelbot/pkg/logger"
)

// DocumentRetriever is the nearest-neighbour lookup behind the retrieval
// agents
type DocumentRetriever interface {
	SearchSimilar(ctx context.Context, table string, embedding []float32, topK int) ([]model.Document, error)
}

const answerSystemPrompt = `You are a helpful United Airlines assistant. Answer the customer's question using ONLY the reference passages below. If the passages don't contain the answer, say you don't know and suggest contacting United support.`

// RetrievalAnswerer answers questions over a document table: embed the
// question, fetch the nearest chunks, stuff them into a chat prompt. One
// instance per table serves the FAQ and loyalty-program agents.
type RetrievalAnswerer struct {
	store  DocumentRetriever
	client *OpenAIClient
	table  string
	topK   int
	log    *logger.Logger
}

// NewRetrievalAnswerer creates an answerer over the given document table
func NewRetrievalAnswerer(store DocumentRetriever, client *OpenAIClient, table string, topK int, log *logger.Logger) *RetrievalAnswerer {
	if topK <= 0 {
		topK = 5
	}
	return &RetrievalAnswerer{
		store:  store,
		client: client,
		table:  table,
		topK:   topK,
		log:    log.Named("retrieval"),
	}
}

// Answer runs one retrieval-augmented completion for the question
func (r *RetrievalAnswerer) Answer(ctx context.Context, question string) (string, error) {
	if r.client == nil || !r.client.IsEnabled() {
		return "", &ExternalServiceError{Err: fmt.Errorf("chat API is not enabled")}
	}
	if r.store == nil {
		return "", &ExternalServiceError{Err: fmt.Errorf("document store is not configured")}
	}

	embeddings, err := r.client.CreateEmbeddings(ctx, []string{question})
	if err != nil {
		return "", &ExternalServiceError{Err: err}
	}
	if len(embeddings) == 0 {
		return "", &ExternalServiceError{Err: fmt.Errorf("no embedding returned")}
	}

	docs, err := r.store.SearchSimilar(ctx, r.table, embeddings[0], r.topK)
	if err != nil {
		return "", &ExternalServiceError{Err: err}
	}
	if len(docs) == 0 {
		return "", ErrNoMatches
	}

	var sb strings.Builder
	for i, doc := range docs {
		fmt.Fprintf(&sb, "[%d] %s\n", i+1, doc.Content)
	}

	resp, err := r.client.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: answerSystemPrompt},
			{Role: "user", Content: "Reference passages:\n" + sb.String() + "\nQuestion: " + question},
		},
	})
	if err != nil {
		return "", &ExternalServiceError{Err: err}
	}

	answer, err := resp.CompletionText()
	if err != nil {
		return "", &MalformedResponseError{Err: err}
	}

	r.log.Debug("answered question",
		logger.String("table", r.table),
		logger.Int("passages", len(docs)))

	return answer, nil
}
