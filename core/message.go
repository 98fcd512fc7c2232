package core

import (
	"strings"
	"text/template"
)

var messageFuncs = template.FuncMap{
	"esc": EscapeHTML,
}

// MustParseMessage parses an HTML formatted chat message template.
// User supplied values must be piped through `esc`.
func MustParseMessage(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(messageFuncs).Option("missingkey=error").Parse(text))
}

// RenderMessage executes tmpl with data.
func RenderMessage(tmpl *template.Template, data interface{}) (string, error) {
	var buff strings.Builder
	if err := tmpl.Execute(&buff, data); err != nil {
		return "", err
	}
	return buff.String(), nil
}
