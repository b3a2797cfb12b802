// Package llm 提供基于 Eino 的大模型客户端工厂
package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"biography-api/internal/config"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// ChatModelBuilder 根据提供商配置构造 ChatModel
type ChatModelBuilder func(ctx context.Context, cfg config.ProviderConfig) (model.BaseChatModel, error)

// EinoFactory 管理多个 Eino ChatModel 客户端实例，进程启动时创建一次并注入
type EinoFactory struct {
	config *config.LLMConfig
	build  ChatModelBuilder
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewEinoFactory 创建 Eino LLM 工厂
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return NewEinoFactoryWithBuilder(cfg, NewOpenAIChatModel)
}

// NewEinoFactoryWithBuilder 使用自定义构造函数创建工厂
func NewEinoFactoryWithBuilder(cfg *config.Config, build ChatModelBuilder) *EinoFactory {
	return &EinoFactory{
		config: &cfg.LLM,
		build:  build,
		models: make(map[string]model.BaseChatModel),
	}
}

// Get 获取指定名称的 ChatModel，如果未指定则返回默认客户端
func (f *EinoFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	name = f.resolveName(name)

	f.mu.RLock()
	m, ok := f.models[name]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	// 惰性加载
	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = f.models[name]; ok {
		return m, nil
	}

	providerCfg, ok := f.config.Providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %s not found in LLM config", name)
	}

	chatModel, err := f.build(ctx, providerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
	}

	f.models[name] = chatModel
	return chatModel, nil
}

// Default 返回默认 ChatModel
func (f *EinoFactory) Default(ctx context.Context) (model.BaseChatModel, error) {
	return f.Get(ctx, "")
}

// Provider 返回提供商配置（名称为空时取默认）
func (f *EinoFactory) Provider(name string) (string, config.ProviderConfig, bool) {
	name = f.resolveName(name)
	p, ok := f.config.Providers[name]
	return name, p, ok
}

func (f *EinoFactory) resolveName(name string) string {
	if strings.TrimSpace(name) == "" {
		return f.config.DefaultProvider
	}
	return strings.TrimSpace(name)
}

// NewOpenAIChatModel 使用 Eino 的 OpenAI 适配器构造 ChatModel
func NewOpenAIChatModel(ctx context.Context, cfg config.ProviderConfig) (model.BaseChatModel, error) {
	maxTokens := cfg.MaxTokens
	mc := &openai.ChatModelConfig{
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Model:     cfg.Model,
		MaxTokens: &maxTokens,
		Timeout:   cfg.Timeout,
	}
	if cfg.Temperature > 0 {
		mc.Temperature = ptrFloat32(float32(cfg.Temperature))
	}
	cm, err := openai.NewChatModel(ctx, mc)
	if err != nil {
		return nil, err
	}
	return cm, nil
}

func ptrFloat32(f float32) *float32 {
	return &f
}
