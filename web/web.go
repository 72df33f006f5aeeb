// Package web 内嵌页面模板与静态资源
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Funcs 模板函数
var Funcs = template.FuncMap{
	// money 金额固定两位小数
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
}

// Templates 解析全部页面模板
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(templateFS, "templates/*.html")
}

// MustTemplates 解析失败直接 panic，模板内嵌在二进制中，失败只可能是开发期错误
func MustTemplates() *template.Template {
	return template.Must(Templates())
}

// Static 静态资源文件系统，挂载到 /static
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
