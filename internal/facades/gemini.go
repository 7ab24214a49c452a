package facades

import (
	"context"

	"google.golang.org/genai"
)

// GeminiFacade adapts the genai client to the narrow model-caller surface
// the resolver needs.
type GeminiFacade struct {
	client *genai.Client
	model  string
}

// NewGeminiFacade creates a new facade bound to one model name.
func NewGeminiFacade(client *genai.Client, model string) *GeminiFacade {
	return &GeminiFacade{client: client, model: model}
}

// GenerateContent sends one generation request to the configured model.
func (f *GeminiFacade) GenerateContent(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return f.client.Models.GenerateContent(ctx, f.model, contents, cfg)
}
