package core

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ExecuteTemplate renders content with data using sprig's function map.
func ExecuteTemplate(content string, data interface{}) (string, error) {
	// missingkey=zero allows optional variables (returning nil/zero), which works with Sprig's 'default'.
	tmpl, err := template.New("fecoding").Funcs(sprig.TxtFuncMap()).Option("missingkey=zero").Parse(content)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
