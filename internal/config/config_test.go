package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domsl/internal/check"
)

func TestParse(t *testing.T) {
	yaml := `
version: "1"
runtime: example.com/ui/dom
extension: gohtml
content_model: warn
global_attributes:
  - HX-Get
  - " hx-target "
`

	c, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "example.com/ui/dom", c.Runtime)
	assert.Equal(t, ".gohtml", c.Extension)
	assert.Equal(t, check.Warn, c.Mode())
	assert.Equal(t, []string{"hx-get", "hx-target"}, c.GlobalAttributes)
}

func TestParse_Defaults(t *testing.T) {
	for _, input := range []string{"", "version: \"1\"\n"} {
		c, err := Parse([]byte(input))
		require.NoError(t, err)
		assert.Equal(t, Default(), c)
	}

	c := Default()
	assert.Equal(t, "1", c.Version)
	assert.Equal(t, "domsl/dom", c.Runtime)
	assert.Equal(t, ".gox", c.Extension)
	assert.Equal(t, check.Ignore, c.Mode())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown field", "runtimes: x\n", "field runtimes not found"},
		{"version", "version: \"2\"\n", `unsupported config version "2"`},
		{"mode", "content_model: strict\n", `unknown content model mode "strict"`},
		{"extension", "extension: .go\n", `invalid extension ".go"`},
		{"attribute", "global_attributes: [\"a b\"]\n", `invalid global attribute "a b"`},
		{"syntax", "runtime: [\n", "failed to parse config YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	c := Default()
	c.ContentModel = "error"
	c.GlobalAttributes = []string{"hx-get"}

	require.NoError(t, WriteFile(c, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), FileName))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func writeModule(t *testing.T, gomod string) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte(gomod), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "web", "pages"), 0o755))

	return root
}

func TestFindModule(t *testing.T) {
	root := writeModule(t, `module example.com/app

go 1.24

require (
	domsl v0.1.0
	github.com/stretchr/testify v1.10.0
)

replace domsl => ../domsl
`)

	m, err := FindModule(filepath.Join(root, "web", "pages"))
	require.NoError(t, err)

	assert.Equal(t, root, m.Root)
	assert.Equal(t, "example.com/app", m.Path)
	assert.Equal(t, []string{"domsl", "github.com/stretchr/testify"}, m.Requires)

	assert.True(t, m.Provides("domsl/dom"))
	assert.True(t, m.Provides("example.com/app/ui"))
	assert.False(t, m.Provides("domsl2/dom"))

	assert.Equal(t, filepath.Join(filepath.Dir(root), "domsl", "dom"), m.PackageDir("domsl/dom"))
	assert.Equal(t, filepath.Join(root, "web"), m.PackageDir("example.com/app/web"))
	assert.Empty(t, m.PackageDir("github.com/stretchr/testify/assert"))

	require.NoError(t, m.CheckRuntime("domsl/dom"))
	assert.EqualError(t, m.CheckRuntime("example.com/other/dom"),
		"module example.com/app does not require the module of the runtime example.com/other/dom")
	assert.ErrorContains(t, m.CheckRuntime("bad path//dom"), "invalid runtime import path")
}

func TestFindModule_Config(t *testing.T) {
	root := writeModule(t, "module example.com/app\n")

	m, err := FindModule(root)
	require.NoError(t, err)

	c, err := m.FindConfig()
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("content_model: error\n"), 0o644))

	c, err = m.FindConfig()
	require.NoError(t, err)
	assert.Equal(t, check.Error, c.Mode())
}

func TestFindModule_None(t *testing.T) {
	_, err := FindModule(string(filepath.Separator))
	assert.ErrorIs(t, err, ErrNoModule)
}
