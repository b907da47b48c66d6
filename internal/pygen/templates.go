package pygen

import (
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

const (
	tmplFile   = "file"
	tmplField  = "field"
	tmplMethod = "method"
)

const templatePattern = "templates/*.gtpl"

//go:embed templates/*.gtpl
var templatesFS embed.FS

var (
	fileTmpl     *template.Template
	tmplInitOnce sync.Once
	tmplInitErr  error
)

// validateTemplates ensures all required templates are defined.
func validateTemplates() error {
	requiredTemplates := []string{tmplFile, tmplField, tmplMethod}
	for _, name := range requiredTemplates {
		if fileTmpl.Lookup(name) == nil {
			return fmt.Errorf("required template %q not found", name)
		}
	}
	return nil
}

// ensureTemplates parses and validates templates exactly once.
func ensureTemplates() error {
	tmplInitOnce.Do(func() {
		var t *template.Template
		t, tmplInitErr = template.New(tmplFile).
			Funcs(template.FuncMap{"join": strings.Join}).
			ParseFS(templatesFS, templatePattern)
		if tmplInitErr != nil {
			return
		}
		fileTmpl = t
		tmplInitErr = validateTemplates()
	})
	return tmplInitErr
}
