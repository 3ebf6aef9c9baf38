// ABOUTME: Shared provider stubs for core engine tests
// ABOUTME: Deterministic embeddings and canned completions, no network
package core

import (
	"context"
	"errors"
	"strings"
)

var errEmbedFailed = errors.New("embedding backend unavailable")

// fakeEmbedder is a deterministic EmbeddingProvider. Vectors come from the
// configured map; unknown texts fall back to a fixed unit vector.
type fakeEmbedder struct {
	model         string
	vectors       map[string][]float64
	err           error
	failSubstring string
	embedCalls    int
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{model: "fake-embedding-model", vectors: map[string][]float64{}}
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	vectors, err := f.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	f.embedCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		if f.failSubstring != "" && strings.Contains(text, f.failSubstring) {
			return nil, errEmbedFailed
		}
		if v, ok := f.vectors[text]; ok {
			out[i] = v
		} else {
			out[i] = []float64{1, 0, 0}
		}
	}
	return out, nil
}

func (f *fakeEmbedder) ModelID() string {
	return f.model
}

// fakeCompleter is a canned CompletionProvider that records its prompts
type fakeCompleter struct {
	response   string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}
