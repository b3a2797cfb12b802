// Package llmtest 提供测试用的假 ChatModel
package llmtest

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"biography-api/internal/config"
)

// Call 记录一次 Generate 调用
type Call struct {
	Messages []*schema.Message
	Options  *model.Options
}

// ChatModel 返回预设内容或错误的 BaseChatModel
type ChatModel struct {
	mu sync.Mutex

	Content string
	Err     error
	// Nil 为 true 时返回 nil 消息
	Nil   bool
	Usage *schema.TokenUsage

	Calls []Call
}

var _ model.BaseChatModel = (*ChatModel)(nil)

func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, Call{Messages: input, Options: model.GetCommonOptions(&model.Options{}, opts...)})
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Nil {
		return nil, nil
	}
	msg := schema.AssistantMessage(m.Content, nil)
	if m.Usage != nil {
		msg.ResponseMeta = &schema.ResponseMeta{Usage: m.Usage}
	}
	return msg, nil
}

func (m *ChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// CallCount 返回 Generate 调用次数
func (m *ChatModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Builder 返回总是产出 m 的 ChatModelBuilder 兼容函数
func Builder(m model.BaseChatModel) func(context.Context, config.ProviderConfig) (model.BaseChatModel, error) {
	return func(context.Context, config.ProviderConfig) (model.BaseChatModel, error) {
		return m, nil
	}
}

// Factory 固定返回同一个模型的工厂
type Factory struct {
	Model model.BaseChatModel
	Err   error
}

func (f *Factory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Model, nil
}
