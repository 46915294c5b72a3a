package claudeai

import (
	"context"
	"encoding/json"
	"fmt"

	"property-scraper-service/internal/core/domain"
)

const enhancementPrompt = `You are a real estate copywriter. Improve the following property listing title and description: make them clear, appealing and professional, keep every factual detail intact and do not invent new facts.

Respond with a single JSON object: {"enhanced_title": "...", "enhanced_description": "..."}. JSON only, no commentary.

Title: %s

Description: %s`

type enhancedContentPayload struct {
	EnhancedTitle       string `json:"enhanced_title"`
	EnhancedDescription string `json:"enhanced_description"`
}

// Enhance улучшает заголовок и описание. В отличие от извлечения ошибка
// здесь возвращается вызывающей стороне: фолбэк на оригинальный текст -
// ответственность пайплайна, а не адаптера.
func (a *Adapter) Enhance(ctx context.Context, title, description string) (domain.EnhancedContent, error) {
	reply, err := a.complete(ctx, fmt.Sprintf(enhancementPrompt, title, description))
	if err != nil {
		return domain.EnhancedContent{}, err
	}

	rawJSON, err := extractJSON(reply)
	if err != nil {
		return domain.EnhancedContent{}, err
	}

	var payload enhancedContentPayload
	if err := json.Unmarshal([]byte(rawJSON), &payload); err != nil {
		return domain.EnhancedContent{}, fmt.Errorf("claudeai: enhancement reply unmarshal failed: %w", err)
	}
	if payload.EnhancedTitle == "" || payload.EnhancedDescription == "" {
		return domain.EnhancedContent{}, fmt.Errorf("claudeai: enhancement reply is incomplete")
	}

	return domain.EnhancedContent{
		Title:       payload.EnhancedTitle,
		Description: payload.EnhancedDescription,
	}, nil
}
