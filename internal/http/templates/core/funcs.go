// Package core provides the template functions shared by every page.
package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/revobooking/revo-ui/internal/domain/model"
	"github.com/revobooking/revo-ui/internal/http/uiutil"
)

// Deps holds dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
	Formatter          *uiutil.Formatter
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	funcs := template.FuncMap{
		"sectionTmpl":  deps.ContentTemplateFor,
		"add":          func(a, b int) int { return a + b },
		"sub":          func(a, b int) int { return a - b },
		"contains":     strings.Contains,
		"truncateText": uiutil.TruncateWithEllipsis,
		"statusLabel":  uiutil.StatusLabel,
		"statusClass":  uiutil.StatusClass,
		"statuses":     func() []model.BookingStatus { return model.BookingStatuses },
		"asset":        func(name string) string { return "/static/" + strings.TrimPrefix(name, "/") },
	}

	addDisplayFuncs(funcs, deps.Formatter)
	addRenderFuncs(funcs, deps)
	return funcs
}

func addDisplayFuncs(funcs template.FuncMap, f *uiutil.Formatter) {
	if f == nil {
		f = uiutil.NewFormatter(time.UTC, language.Indonesian)
	}
	funcs["rupiah"] = f.Rupiah
	funcs["number"] = f.Number
	funcs["longDate"] = func(ts any) string { return withTime(ts, f.LongDate) }
	funcs["shortDate"] = func(ts any) string { return withTime(ts, f.ShortDate) }
	funcs["localEditable"] = func(ts any) string { return withTime(ts, f.DateTimeLocal) }
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - rendered by our own html/template set; values were escaped during execution.
		return template.HTML(buf.String()), nil
	}

	funcs["toJSON"] = func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// fieldError reads one message from the "Errors" map; missing maps yield "".
	funcs["fieldError"] = func(errs any, field string) string {
		if m, ok := errs.(map[string]string); ok {
			return m[field]
		}
		return ""
	}

	// dict builds a map for passing several values into a sub-template.
	funcs["dict"] = func(kv ...any) (map[string]any, error) {
		if len(kv)%2 != 0 {
			return nil, errors.New("dict requires key/value pairs")
		}
		m := make(map[string]any, len(kv)/2)
		for i := 0; i < len(kv); i += 2 {
			key, ok := kv[i].(string)
			if !ok {
				return nil, errors.New("dict keys must be strings")
			}
			m[key] = kv[i+1]
		}
		return m, nil
	}
}

func withTime(ts any, format func(time.Time) string) string {
	switch v := ts.(type) {
	case time.Time:
		return format(v)
	case *time.Time:
		if v != nil {
			return format(*v)
		}
	}
	return format(time.Time{})
}
