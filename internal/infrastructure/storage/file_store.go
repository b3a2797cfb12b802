// Package storage 提供模型原始输出的落盘实现
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"biography-api/internal/config"
	"biography-api/pkg/metrics"
)

var tracer = otel.Tracer("storage")

const perRequestPrefix = "biography_"

// keySanitizer 仅保留可安全用作文件名的字符
var keySanitizer = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// FileStore 将模型原始输出写入文件
//
// per_request 模式下每个请求写入独立文件 <dir>/biography_<key>.txt，
// shared 模式下所有请求覆盖同一个 <dir>/<file_name>。
type FileStore struct {
	fs       afero.Fs
	dir      string
	fileName string
	mode     string
}

// NewFileStore 基于操作系统文件系统创建存储
func NewFileStore(cfg *config.Config) (*FileStore, error) {
	return NewFileStoreWithFs(afero.NewOsFs(), cfg.Biography.Output)
}

// NewFileStoreWithFs 使用指定文件系统创建存储
func NewFileStoreWithFs(fs afero.Fs, cfg config.OutputConfig) (*FileStore, error) {
	mode := cfg.Mode
	if mode == "" {
		mode = config.OutputModePerRequest
	}
	if mode != config.OutputModePerRequest && mode != config.OutputModeShared {
		return nil, fmt.Errorf("unknown output mode: %s", mode)
	}
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir %s: %w", dir, err)
	}
	return &FileStore{
		fs:       fs,
		dir:      dir,
		fileName: cfg.FileName,
		mode:     mode,
	}, nil
}

// Mode 返回写入模式
func (s *FileStore) Mode() string {
	return s.mode
}

// PathFor 返回 key 对应的文件路径
func (s *FileStore) PathFor(key string) string {
	if s.mode == config.OutputModeShared {
		return filepath.Join(s.dir, s.fileName)
	}
	key = keySanitizer.ReplaceAllString(strings.TrimSpace(key), "")
	if key == "" {
		key = uuid.NewString()
	}
	return filepath.Join(s.dir, perRequestPrefix+key+".txt")
}

// Save 按字节原样写入内容（覆盖已有文件），返回写入路径
func (s *FileStore) Save(ctx context.Context, key string, content string) (string, error) {
	_, span := tracer.Start(ctx, "storage.Save")
	defer span.End()

	path := s.PathFor(key)
	span.SetAttributes(
		attribute.String("storage.path", path),
		attribute.String("storage.mode", s.mode),
	)

	if err := afero.WriteFile(s.fs, path, []byte(content), 0o644); err != nil {
		span.RecordError(err)
		metrics.OutputWritesTotal.WithLabelValues(s.mode, "error").Inc()
		return "", fmt.Errorf("failed to write output %s: %w", path, err)
	}
	metrics.OutputWritesTotal.WithLabelValues(s.mode, "success").Inc()
	return path, nil
}

// Load 读取 key 对应的内容
func (s *FileStore) Load(ctx context.Context, key string) (string, error) {
	b, err := afero.ReadFile(s.fs, s.PathFor(key))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// HealthCheck 检查输出目录是否可用
func (s *FileStore) HealthCheck(ctx context.Context) error {
	info, err := s.fs.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("output dir unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path %s is not a directory", s.dir)
	}
	return nil
}
