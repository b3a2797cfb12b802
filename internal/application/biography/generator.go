// Package biography 编排传记生成：调用模型、落盘原始输出、切分章节
package biography

import (
	"context"
	stderrors "errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	workflowchain "biography-api/internal/workflow/chain"
	wfmodel "biography-api/internal/workflow/model"
	"biography-api/internal/workflow/node"
	"biography-api/pkg/errors"
	"biography-api/pkg/logger"
	"biography-api/pkg/metrics"
	"biography-api/pkg/tracer"
)

const rawPreviewRunes = 200

// OutputStore 保存模型原始输出
type OutputStore interface {
	Save(ctx context.Context, key string, content string) (string, error)
}

// Options 生成参数，来自默认提供商配置
type Options struct {
	Provider  string
	Model     string
	MaxTokens int
}

// Request 一次传记生成请求
type Request struct {
	// ID 用于区分落盘文件，通常为请求 ID
	ID     string
	Events wfmodel.LifeEvents
}

// Result 生成结果
type Result struct {
	Chapters   []string
	OutputPath string
	Meta       wfmodel.LLMUsageMeta
}

type Generator struct {
	chain *workflowchain.BiographyChain
	store OutputStore
	opts  Options
}

func NewGenerator(factory workflowchain.ChatModelFactory, store OutputStore, opts Options) *Generator {
	return &Generator{
		chain: workflowchain.NewBiographyChain(factory),
		store: store,
		opts:  opts,
	}
}

// Generate 执行：调用模型 -> 落盘原始输出 -> 切分为五章。
// 模型调用失败或输出为空时不写文件；章节数不符时文件已写入。
func (g *Generator) Generate(ctx context.Context, req *Request) (res *Result, err error) {
	if g == nil || g.chain == nil || g.store == nil {
		return nil, errors.New(errors.CodeInternalError, "biography generator not configured")
	}
	if req == nil {
		return nil, errors.New(errors.CodeInvalidParam, "request is nil")
	}

	ctx, span := tracer.Start(ctx, "biography.Generate")
	start := time.Now()
	status := "success"
	defer func() {
		metrics.GenerationTotal.WithLabelValues(status).Inc()
		metrics.GenerationDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	in := &wfmodel.BiographyGenerateInput{
		Events:   req.Events,
		Provider: g.opts.Provider,
		Model:    g.opts.Model,
	}
	if g.opts.MaxTokens > 0 {
		maxTokens := g.opts.MaxTokens
		in.MaxTokens = &maxTokens
	}

	outMsg, err := g.chain.Invoke(ctx, in)
	if err != nil {
		status = "llm_error"
		logger.Error(ctx, "biography llm call failed", err)
		return nil, errors.Wrap(err, errors.CodeLLMCallFailed, "llm call failed")
	}

	raw := outMsg.Content
	if strings.TrimSpace(raw) == "" {
		status = "empty"
		return nil, errors.New(errors.CodeEmptyGeneration, "llm returned empty content")
	}
	metrics.GenerationCharCount.Observe(float64(utf8.RuneCountInString(raw)))

	meta := wfmodel.LLMUsageMeta{
		Provider:    g.opts.Provider,
		Model:       g.opts.Model,
		GeneratedAt: time.Now().UTC(),
	}
	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		meta.PromptTokens = outMsg.ResponseMeta.Usage.PromptTokens
		meta.CompletionTokens = outMsg.ResponseMeta.Usage.CompletionTokens
	}

	path, err := g.store.Save(ctx, req.ID, raw)
	if err != nil {
		status = "storage_error"
		logger.Error(ctx, "failed to persist biography output", err)
		return nil, errors.Wrap(err, errors.CodeStorageError, "failed to persist biography output")
	}
	span.SetAttributes(attribute.String("biography.output_path", path))

	chapters, err := ParseChapters(raw)
	if err != nil {
		status = "chapter_mismatch"
		var countErr *ChapterCountError
		got := -1
		if stderrors.As(err, &countErr) {
			got = countErr.Got
		}
		logger.Warn(ctx, "biography chapter count mismatch",
			"chapters", got,
			"output_path", path,
			"raw_preview", node.Preview(raw, rawPreviewRunes),
		)
		return nil, errors.Wrap(err, errors.CodeChapterCountMismatch, "unexpected chapter structure in llm output")
	}

	logger.Info(ctx, "biography generated",
		"output_path", path,
		"chars", utf8.RuneCountInString(raw),
		"titles", ChapterTitles(chapters),
		"prompt_tokens", meta.PromptTokens,
		"completion_tokens", meta.CompletionTokens,
	)

	return &Result{
		Chapters:   chapters,
		OutputPath: path,
		Meta:       meta,
	}, nil
}
