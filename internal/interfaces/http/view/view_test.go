package view

import (
	"bytes"
	"strings"
	"testing"
)

func TestErrorTemplate_EscapesMessage(t *testing.T) {
	var buf bytes.Buffer
	err := Templates().ExecuteTemplate(&buf, ErrorTemplate, map[string]any{
		"error":      "<script>alert(1)</script> invalid api key",
		"code":       "4005",
		"request_id": "req-1",
	})
	if err != nil {
		t.Fatalf("ExecuteTemplate() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>") {
		t.Error("error message should be HTML-escaped")
	}
	for _, want := range []string{"invalid api key", "4005", "req-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}
