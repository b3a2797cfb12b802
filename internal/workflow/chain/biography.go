// Package chain 组装提示词与模型调用
package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	llmctx "biography-api/internal/domain/service"
	wfmodel "biography-api/internal/workflow/model"
	workflowprompt "biography-api/internal/workflow/prompt"
)

// ChatModelFactory 工作流层对 LLM ChatModel 的最小依赖
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
}

type BiographyChain struct {
	factory ChatModelFactory
}

func NewBiographyChain(factory ChatModelFactory) *BiographyChain {
	return &BiographyChain{factory: factory}
}

// Invoke 同步调用一次模型，不做重试；错误原样返回。
func (c *BiographyChain) Invoke(ctx context.Context, in *wfmodel.BiographyGenerateInput) (*schema.Message, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}

	provider := strings.TrimSpace(in.Provider)
	ctx = llmctx.WithWorkflowProvider(ctx, llmctx.WorkflowBiographyGenerate, provider)
	chatModel, err := c.factory.Get(ctx, provider)
	if err != nil {
		return nil, err
	}

	msgs, err := FormatBiographyMessages(ctx, &in.Events)
	if err != nil {
		return nil, err
	}

	outMsg, err := chatModel.Generate(ctx, msgs, buildBiographyModelOptions(in)...)
	if err != nil {
		return nil, err
	}
	if outMsg == nil {
		return nil, fmt.Errorf("empty llm response")
	}
	return outMsg, nil
}

var biographyPromptRegistry = workflowprompt.NewRegistry()

// FormatBiographyMessages 渲染 system + user 两条消息；空字段渲染为空值。
func FormatBiographyMessages(ctx context.Context, ev *wfmodel.LifeEvents) ([]*schema.Message, error) {
	tpl, err := biographyPromptRegistry.ChatTemplate(workflowprompt.PromptBiographyV1)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		ev = &wfmodel.LifeEvents{}
	}
	vars := map[string]any{
		"birth":       ev.Birth,
		"childhood":   ev.Childhood,
		"elementary":  ev.Elementary,
		"junior_high": ev.JuniorHigh,
		"high_school": ev.HighSchool,
		"university":  ev.University,
		"work":        ev.Work,
		"marriage":    ev.Marriage,
		"childbirth":  ev.Childbirth,
		"children":    ev.Children,
		"current":     ev.Current,
	}
	return tpl.Format(ctx, vars)
}

// BuildBiographyPrompt 返回 user 提示词正文
func BuildBiographyPrompt(ctx context.Context, ev *wfmodel.LifeEvents) (string, error) {
	msgs, err := FormatBiographyMessages(ctx, ev)
	if err != nil {
		return "", err
	}
	for _, m := range msgs {
		if m.Role == schema.User {
			return m.Content, nil
		}
	}
	return "", fmt.Errorf("biography template has no user message")
}

func buildBiographyModelOptions(in *wfmodel.BiographyGenerateInput) []model.Option {
	opts := make([]model.Option, 0, 2)
	if in == nil {
		return opts
	}
	if in.MaxTokens != nil {
		opts = append(opts, model.WithMaxTokens(*in.MaxTokens))
	}
	if strings.TrimSpace(in.Model) != "" {
		opts = append(opts, model.WithModel(strings.TrimSpace(in.Model)))
	}
	return opts
}
