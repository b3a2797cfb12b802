//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"biography-api/internal/application/biography"
	"biography-api/internal/config"
	"biography-api/internal/infrastructure/llm"
	"biography-api/internal/infrastructure/storage"
	"biography-api/internal/interfaces/http/handler"
	"biography-api/internal/interfaces/http/router"
	workflowchain "biography-api/internal/workflow/chain"
)

// InitializeApp 初始化 API 应用
func InitializeApp(ctx context.Context, cfg *config.Config, version string) (*router.Router, func(), error) {
	wire.Build(
		InfraSet,
		BiographySet,
		RouterSet,
	)
	return nil, nil, nil
}

// InfraSet 基础设施提供者集合
var InfraSet = wire.NewSet(
	llm.NewEinoFactory,
	storage.NewFileStore,
	wire.Bind(new(workflowchain.ChatModelFactory), new(*llm.EinoFactory)),
	wire.Bind(new(biography.OutputStore), new(*storage.FileStore)),
	wire.Bind(new(handler.ModelProvider), new(*llm.EinoFactory)),
	wire.Bind(new(handler.HealthChecker), new(*storage.FileStore)),
)

// BiographySet 传记生成提供者集合
var BiographySet = wire.NewSet(
	ProvideGeneratorOptions,
	biography.NewGenerator,
	wire.Bind(new(handler.BiographyGenerator), new(*biography.Generator)),
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewBiographyHandler,
	wire.Struct(new(router.RouterHandlers), "*"),
	router.New,
)
