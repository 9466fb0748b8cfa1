package provider

import (
	"fmt"
	"time"

	"arena/internal/config"
)

// FromConfig 根据配置构建模型客户端。api_url/model 已在配置校验阶段
// 由 preset 补全，这里只做最终组装。
func FromConfig(cfg *config.AIConfig) (ModelProvider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("ai config is nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ai.api_key is required")
	}
	if cfg.APIURL == "" || cfg.Model == "" {
		return nil, fmt.Errorf("ai.api_url and ai.model must be resolved before building provider")
	}
	return &OpenAIChatClient{
		Name:        cfg.Provider,
		BaseURL:     cfg.APIURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		MaxRetries:  cfg.MaxRetries,
		Temperature: cfg.Temperature,
	}, nil
}
