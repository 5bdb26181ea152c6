package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/apetrov/diarium/backend/internal/config"
)

// Service issues single request/response completions against the
// configured chat model. Every call is one system instruction plus one
// user payload; the caller picks the sampling temperature.
type Service struct {
	chatModel   model.ChatModel
	callTimeout time.Duration
}

// NewService builds the completion client from configuration.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return &Service{
		chatModel:   chatModel,
		callTimeout: cfg.CallTimeout,
	}, nil
}

// Complete runs one completion and returns the raw text. Transport
// failures, non-2xx responses and empty completions all collapse into
// a single wrapped "model call failed" error; there are no retries.
func (s *Service) Complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	if s.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}

	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	}

	response, err := s.chatModel.Generate(ctx, messages, model.WithTemperature(temperature))
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}
	if response == nil || strings.TrimSpace(response.Content) == "" {
		return "", fmt.Errorf("model call failed: empty completion")
	}

	log.Printf("[oracle] completion ok, length=%d", len(response.Content))
	return response.Content, nil
}
