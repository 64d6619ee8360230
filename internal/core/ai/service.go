package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"meal-generator/internal/core/cache"
	"meal-generator/internal/infrastructure/config"
	"meal-generator/internal/pkg/common"
)

// Completer 語言模型後端
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// Service AI 服務：統一 prompt、查快取、呼叫模型
type Service struct {
	completer Completer
	cache     *cache.DraftCache
	config    config.AIConfig
}

// NewService 創建 AI 服務，cache 可為 nil
func NewService(completer Completer, draftCache *cache.DraftCache, cfg config.AIConfig) *Service {
	return &Service{
		completer: completer,
		cache:     draftCache,
		config:    cfg,
	}
}

// ProcessRequest 統一對外方法
func (s *Service) ProcessRequest(ctx context.Context, prompt string) (string, error) {
	if s == nil || s.completer == nil {
		return "", common.ErrCollaboratorUnavailable
	}

	// 統一 prompt 格式，確保快取 key 一致
	prompt = normalizePrompt(prompt)
	if prompt == "" {
		return "", errors.New("empty prompt")
	}

	if s.config.EnableCache {
		if val, err := s.cache.Get(ctx, prompt); err == nil && val != "" {
			return val, nil
		}
	}

	start := time.Now()
	content, err := s.completer.Complete(ctx, prompt, s.config.Temperature)
	common.LogAICall(time.Since(start), err, common.RequestIDFrom(ctx))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrCollaboratorUnavailable, err)
	}
	if strings.TrimSpace(content) == "" {
		return "", errors.New("empty AI response")
	}

	if s.config.EnableCache {
		_ = s.cache.Set(ctx, prompt, content)
	}
	return content, nil
}

// normalizePrompt 去除多餘空白、tab、換行
func normalizePrompt(prompt string) string {
	return strings.Join(strings.Fields(prompt), " ")
}
