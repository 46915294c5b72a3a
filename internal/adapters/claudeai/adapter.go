package claudeai

import (
	"context"
	"fmt"
	"strings"

	"property-scraper-service/internal/core/port"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Adapter - общий клиент к LLM для извлечения и улучшения текста.
// Обе способности ходят в один и тот же Messages API.
type Adapter struct {
	client anthropic.Client
	model  anthropic.Model
	logger port.LoggerPort
}

func NewAdapter(apiKey, model string, logger port.LoggerPort) *Adapter {
	return &Adapter{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
		logger: logger.WithFields(port.Fields{"component": "claudeai"}),
	}
}

// complete отправляет один пользовательский промпт и склеивает текстовые
// блоки ответа
func (a *Adapter) complete(ctx context.Context, prompt string) (string, error) {
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: 8192,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claudeai: messages request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

// extractJSON вырезает JSON-объект из ответа модели: сначала содержимое
// fenced-блока, иначе от первой '{' до последней '}'
func extractJSON(reply string) (string, error) {
	trimmed := strings.TrimSpace(reply)

	if idx := strings.Index(trimmed, "```"); idx >= 0 {
		rest := trimmed[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end >= 0 {
			trimmed = strings.TrimSpace(rest[:end])
		}
	}

	start := strings.IndexByte(trimmed, '{')
	end := strings.LastIndexByte(trimmed, '}')
	if start < 0 || end <= start {
		return "", fmt.Errorf("claudeai: reply contains no JSON object")
	}
	return trimmed[start : end+1], nil
}
