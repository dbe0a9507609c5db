package javaconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/pdemeta/internal/generator"
	"github.com/simonhull/pdemeta/internal/module"
)

func records() []module.Record {
	return []module.Record{
		module.New(module.Spec{Dir: "bundles/a", RawPackaging: "eclipse-plugin"}),
		module.New(module.Spec{Dir: ".", RawPackaging: "pom"}),
		module.New(module.Spec{Dir: "tests/a.test", RawPackaging: "eclipse-test-plugin"}),
		module.New(module.Spec{Dir: "repo", RawPackaging: "eclipse-repository"}),
	}
}

func TestBuild_PluginLikeInDiscoveryOrder(t *testing.T) {
	doc := Build(records(), "target-definition/kura.target")

	assert.Equal(t, []string{"bundles/a", "tests/a.test"}, doc.Projects)
	assert.Equal(t, "target-definition/kura.target", doc.TargetPlatform)
}

func TestRender(t *testing.T) {
	content, err := Render(Build(records(), "defs/kura.target"))
	require.NoError(t, err)

	want := `{
    "projects": [
        "bundles/a",
        "tests/a.test"
    ],
    "targetPlatform": "defs/kura.target"
}
`
	assert.Equal(t, want, string(content))
}

func TestRender_NoProjects(t *testing.T) {
	content, err := Render(Build(nil, "x.target"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"projects": []`)
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()

	op, err := New(root, "").Generate(records(), "defs/kura.target")
	require.NoError(t, err)

	fileOp, ok := op.(*generator.WriteFileOp)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, DefaultFileName), fileOp.Path)
}

func TestGenerate_RequiresTargetPlatform(t *testing.T) {
	_, err := New(t.TempDir(), "").Generate(records(), "")
	assert.Error(t, err)
}
