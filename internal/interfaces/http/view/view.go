// Package view 提供内嵌的 HTML 视图模板
package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// ErrorTemplate 错误页模板名
const ErrorTemplate = "error.html"

// Templates 解析全部内嵌模板，解析失败视为编程错误
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}
