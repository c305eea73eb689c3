package display

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Feedback messages come from a small fixed set, so each is parsed once.
var messages sync.Map // string -> *template.Template

func parseMessage(text string) (*template.Template, error) {
	if cached, ok := messages.Load(text); ok {
		return cached.(*template.Template), nil
	}

	tmpl, err := template.New("message").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	messages.Store(text, tmpl)
	return tmpl, nil
}

// ExpandTemplate renders a message template against data. Text without
// actions is returned unchanged.
func ExpandTemplate(text string, data any) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}

	tmpl, err := parseMessage(text)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return b.String(), nil
}

// MustExpand is ExpandTemplate for fixed messages. A broken message is
// logged and shown raw.
func MustExpand(text string, data any) string {
	out, err := ExpandTemplate(text, data)
	if err != nil {
		slog.Warn("expanding message", "template", text, "error", err)
		return text
	}
	return out
}
