package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteTemplate(t *testing.T) {
	data := struct {
		Name string
		Dir  string
	}{Name: "fecoding", Dir: "/opt/app"}

	out, err := ExecuteTemplate(`run "npm install {{ .Name }}" in {{ .Dir | quote }}`, data)
	require.NoError(t, err)
	assert.Equal(t, `run "npm install fecoding" in "/opt/app"`, out)
}

func TestExecuteTemplate_MissingKeyWithDefault(t *testing.T) {
	out, err := ExecuteTemplate(`{{ .installer | default "npm" }}`, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, "npm", out)
}

func TestExecuteTemplate_ParseError(t *testing.T) {
	_, err := ExecuteTemplate(`{{ .Name `, nil)
	assert.Error(t, err)
}
