package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		contains    string
		expectError bool
	}{
		{"help flag", []string{"--help"}, "declarative rule sets", false},
		{"check help", []string{"check", "--help"}, "field=@file", false},
		{"version", []string{"version"}, "Version:", false},
		{"invalid flag", []string{"--invalid-flag"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.contains)
		})
	}
}

const rulesYAML = `
sets:
  signup:
    email: "required|email"
    password: "required|min_length:7"
`

func TestCheckCommand_RuleSet(t *testing.T) {
	rules := writeFile(t, "rules.yaml", rulesYAML)

	out, _, err := execute(t, "check", "--rules", rules, "--set", "signup", "email=a@example.com", "password=secret123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"errors":{}}`, out)

	out, _, err = execute(t, "check", "--rules", rules, "--set", "signup", "email=nope")
	assert.ErrorIs(t, err, errFailed)
	assert.JSONEq(t, `{"errors":{
		"email":["The email field has an invalid format"],
		"password":["The password field is required"]
	}}`, out)

	_, _, err = execute(t, "check", "--rules", rules, "--set", "missing", "email=x")
	assert.Error(t, err)
}

func TestCheckCommand_InlineRules(t *testing.T) {
	out, _, err := execute(t, "check", "--rule", "age=number|required|gte:18", "age=17")
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "The age field must be greater than or equal 18")

	_, _, err = execute(t, "check", "--rule", "tags[]=array|required_some", "tags[]=", "tags[]=go")
	assert.NoError(t, err)

	rules := writeFile(t, "rules.yaml", rulesYAML)
	_, _, err = execute(t, "check", "--rules", rules, "--set", "signup", "--rule", "password=string", "email=a@example.com")
	assert.NoError(t, err, "--rule replaces the set's rules for that field")
}

func TestCheckCommand_FileInput(t *testing.T) {
	img := writeFile(t, "me.png", string(pngBytes))
	txt := writeFile(t, "notes.txt", "plain text")

	_, _, err := execute(t, "check", "--rule", "avatar=file|image", "avatar=@"+img)
	assert.NoError(t, err)

	_, _, err = execute(t, "check", "--rule", "avatar=file|image", "avatar=@"+txt)
	assert.ErrorIs(t, err, errFailed)

	_, _, err = execute(t, "check", "--rule", "avatar=file|image", "avatar=@/does/not/exist.png")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errFailed)
}

func TestCheckCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no rules", []string{"check", "a=b"}, errNoRules},
		{"bad argument", []string{"check", "--rule", "a=required", "novalue"}, nil},
		{"bad rule flag", []string{"check", "--rule", "required", "a=b"}, nil},
		{"unknown rule", []string{"check", "--rule", "a=string|wat", "a=b"}, nil},
		{"bad language", []string{"check", "--rule", "a=required", "--lang", "!!", "a=b"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.NotErrorIs(t, err, errFailed)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestServeCommand_BadRulesFile(t *testing.T) {
	_, _, err := execute(t, "serve", "--rules", writeFile(t, "rules.yaml", "sets:\n  x:\n    f: \"string|wat\"\n"))
	assert.Error(t, err)
}
