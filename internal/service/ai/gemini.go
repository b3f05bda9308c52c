package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/pmoncada/gemchat/internal/config"
	"github.com/pmoncada/gemchat/internal/model/chat"
)

const systemPrompt = "You are a helpful AI assistant. Answer clearly and concisely, " +
	"and use fenced code blocks when showing code."

// historyLimit bounds how many prior turns are forwarded upstream.
const historyLimit = 10

// Service drives the Gemini chat model through a compiled prompt chain.
type Service struct {
	client *genai.Client
	cfg    config.AIConfig
	chain  compose.Runnable[map[string]any, *schema.Message]
}

// NewService dials Gemini and compiles the prompt-template -> chat-model chain.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	client, err := cfg.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	chatModel, err := cfg.NewChatModel(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{client: client, cfg: cfg, chain: runnable}, nil
}

// Model reports the configured model name.
func (s *Service) Model() string {
	return s.cfg.Model
}

// GenerateReply sends the prior turns plus the new message upstream and
// returns the generated text.
func (s *Service) GenerateReply(ctx context.Context, history []chat.Turn, message string) (string, error) {
	input := map[string]any{
		"system":  systemPrompt,
		"history": buildHistoryMessages(history),
		"query":   message,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run gemini chain: %w", err)
	}
	if strings.TrimSpace(response.Content) == "" {
		return "", fmt.Errorf("empty completion from model %s", s.cfg.Model)
	}

	log.Printf("[ai] model=%s generated reply, length=%d", s.cfg.Model, len(response.Content))
	return response.Content, nil
}

func buildHistoryMessages(turns []chat.Turn) []*schema.Message {
	if len(turns) == 0 {
		return nil
	}

	startIdx := 0
	if len(turns) > historyLimit {
		startIdx = len(turns) - historyLimit
	}

	history := make([]*schema.Message, 0, len(turns)-startIdx)
	for _, turn := range turns[startIdx:] {
		switch turn.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(turn.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(turn.Content, nil))
		}
	}

	return history
}
