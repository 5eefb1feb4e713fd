package core

import (
	"bytes"
	"html/template"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contentFor(page string) string {
	if page == "" {
		return "home-content"
	}
	return page + "-content"
}

func parse(t *testing.T, src string) *template.Template {
	t.Helper()
	var tmpl *template.Template
	tmpl = template.Must(template.New("root").Funcs(Funcs(Deps{
		Template:           &tmpl,
		ContentTemplateFor: contentFor,
	})).Parse(src))
	return tmpl
}

func execute(t *testing.T, tmpl *template.Template, name string, data any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, data))
	return buf.String()
}

func TestFieldError(t *testing.T) {
	tmpl := parse(t, `{{fieldError .Errors "email"}}|{{fieldError .Missing "email"}}`)

	out := execute(t, tmpl, "root", map[string]any{
		"Errors": map[string]string{"email": "Format email tidak valid"},
	})
	assert.Equal(t, "Format email tidak valid|", out)
}

func TestRenderSection(t *testing.T) {
	tmpl := parse(t, `{{define "home-content"}}<h1>{{.}}</h1>{{end}}{{renderSection "" .}}`)

	assert.Equal(t, "<h1>&lt;b&gt;</h1>", execute(t, tmpl, "root", "<b>"))
}

func TestRenderSection_UnknownTemplate(t *testing.T) {
	tmpl := parse(t, `{{renderSection "missing" .}}`)

	var buf bytes.Buffer
	require.Error(t, tmpl.ExecuteTemplate(&buf, "root", nil))
}

func TestRenderSection_Uninitialized(t *testing.T) {
	tmpl := template.Must(template.New("root").Funcs(Funcs(Deps{ContentTemplateFor: contentFor})).
		Parse(`{{renderSection "home" .}}`))

	var buf bytes.Buffer
	require.Error(t, tmpl.Execute(&buf, nil))
}

func TestToJSONAndDict(t *testing.T) {
	tmpl := parse(t, `{{define "pair"}}{{.a}}-{{.b}}{{end}}{{toJSON .}} {{template "pair" (dict "a" 1 "b" "dua")}}`)

	out := execute(t, tmpl, "root", map[string]int{"n": 2})
	assert.Equal(t, `{&#34;n&#34;:2} 1-dua`, out)
}

func TestDict_OddArguments(t *testing.T) {
	tmpl := parse(t, `{{dict "a"}}`)

	var buf bytes.Buffer
	require.Error(t, tmpl.ExecuteTemplate(&buf, "root", nil))
}

func TestDisplayFuncs_DefaultFormatter(t *testing.T) {
	tmpl := parse(t, `{{number .N}} {{shortDate .When}} {{shortDate .Never}}`)

	when := time.Date(2024, time.December, 1, 8, 0, 0, 0, time.UTC)
	out := execute(t, tmpl, "root", map[string]any{"N": 1500000, "When": &when, "Never": (*time.Time)(nil)})
	assert.Equal(t, "1.500.000 1 Desember 2024 -", out)
}
