package service

import (
	"context"
	"testing"
)

func TestWorkflowProviderRoundTrip(t *testing.T) {
	ctx := WithWorkflowProvider(context.Background(), " "+WorkflowBiographyGenerate+" ", "openai")
	if got := WorkflowFromContext(ctx); got != WorkflowBiographyGenerate {
		t.Errorf("WorkflowFromContext() = %q", got)
	}
	if got := ProviderFromContext(ctx); got != "openai" {
		t.Errorf("ProviderFromContext() = %q", got)
	}
}

func TestFromContext_Unknown(t *testing.T) {
	ctx := WithWorkflowProvider(context.Background(), "", "  ")
	if got := WorkflowFromContext(ctx); got != "unknown" {
		t.Errorf("WorkflowFromContext() = %q, want unknown", got)
	}
	if got := ProviderFromContext(ctx); got != "unknown" {
		t.Errorf("ProviderFromContext() = %q, want unknown", got)
	}
}
