package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/nexa-app/nexa/backend/internal/config"
)

// ArkGenerator backs the gateway with an Ark chat model.
type ArkGenerator struct {
	chatModel model.ChatModel
}

// NewArkGenerator builds the chat model from configuration.
func NewArkGenerator(ctx context.Context, cfg config.AIConfig) (*ArkGenerator, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return &ArkGenerator{chatModel: chatModel}, nil
}

// Generate implements Generator with a single non-streaming completion.
func (g *ArkGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	response, err := g.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", fmt.Errorf("failed to run generation: %w", err)
	}
	return response.Content, nil
}
