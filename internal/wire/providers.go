package wire

import (
	"biography-api/internal/application/biography"
	"biography-api/internal/config"
)

// ProvideGeneratorOptions 从默认提供商配置派生生成参数
func ProvideGeneratorOptions(cfg *config.Config) biography.Options {
	opts := biography.Options{Provider: cfg.LLM.DefaultProvider}
	if p, ok := cfg.DefaultProviderConfig(); ok {
		opts.Model = p.Model
		opts.MaxTokens = p.MaxTokens
	}
	return opts
}
