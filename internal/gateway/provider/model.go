package provider

import "context"

// ModelProvider 模型协作方：输入提示词，返回原始文本输出。
type ModelProvider interface {
	ID() string

	Call(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
