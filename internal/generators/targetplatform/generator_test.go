package targetplatform

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/pdemeta/internal/generator"
)

const definition = `<?xml version="1.0" encoding="UTF-8"?>
<target name="kura">
    <location path="${git_work_tree}/target-platform/p2-repo"/>
    <location path="${git_work_tree}/other"/>
</target>
`

func TestPatch(t *testing.T) {
	got := New("").Patch([]byte(definition), "/home/dev/kura")

	assert.NotContains(t, string(got), DefaultPlaceholder)
	assert.Contains(t, string(got), `path="/home/dev/kura/target-platform/p2-repo"`)
	assert.Contains(t, string(got), `path="/home/dev/kura/other"`)
}

func TestPatch_CustomPlaceholder(t *testing.T) {
	got := New("@ROOT@").Patch([]byte("a @ROOT@ b ${git_work_tree}"), "/w")
	assert.Equal(t, "a /w b ${git_work_tree}", string(got))
}

func TestPatch_NoPlaceholder(t *testing.T) {
	got := New("").Patch([]byte("<target/>\n"), "/w")
	assert.Equal(t, "<target/>\n", string(got))
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kura.target")
	require.NoError(t, os.WriteFile(path, []byte(definition), 0600))

	op, err := New("").Generate(path, "/w")
	require.NoError(t, err)

	// nothing is written until the operation executes
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, definition, string(onDisk))

	require.NoError(t, op.Validate(context.Background()))
	require.NoError(t, op.Execute(context.Background()))

	onDisk, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(onDisk), `path="/w/other"`)

	fileOp := op.(*generator.WriteFileOp)
	assert.Equal(t, os.FileMode(0600), fileOp.Mode)
}

func TestGenerate_MissingFile(t *testing.T) {
	_, err := New("").Generate(filepath.Join(t.TempDir(), "none.target"), "/w")
	assert.Error(t, err)
}

func TestGenerate_RequiresWorkTree(t *testing.T) {
	_, err := New("").Generate("x.target", "")
	assert.Error(t, err)
}
