package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/pdemeta/internal/config"
	"github.com/simonhull/pdemeta/internal/discovery"
	"github.com/simonhull/pdemeta/internal/project"
)

func pom(artifactID, packaging string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
    <modelVersion>4.0.0</modelVersion>
    <artifactId>` + artifactID + `</artifactId>
    <packaging>` + packaging + `</packaging>
</project>
`
}

const targetDefinition = `<?xml version="1.0" encoding="UTF-8"?>
<target name="kura">
    <location path="${git_work_tree}/target-platform/p2-repo"/>
</target>
`

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// fixture builds a small Tycho tree nested a few levels inside the temp
// dir so work tree lookups never leave it.
func fixture(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "w", "o", "r", "k", "s")

	write(t, root, "pom.xml", pom("kura", "pom"))
	write(t, root, "bundles/org.a/pom.xml", pom("org.a", "eclipse-plugin"))
	write(t, root, "bundles/org.a/build.properties", "source.. = src/\nbin.includes = .\n")
	write(t, root, "bundles/org.a/src/A.java", "class A {}\n")
	write(t, root, "bundles/org.a/lib/dep.jar", "")
	write(t, root, "tests/org.a.test/pom.xml", pom("org.a.test", "eclipse-test-plugin"))
	write(t, root, "tests/org.a.test/src/test/java/ATest.java", "class ATest {}\n")
	write(t, root, "distrib/pom.xml", pom("distrib", "pom"))
	write(t, root, "distrib/old.target", targetDefinition)
	write(t, root, "target-definition/kura.target", targetDefinition)

	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runWithLogs(t, args...)
	return out, err
}

// runWithLogs also returns what the logger wrote to stderr.
func runWithLogs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := RootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func read(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestGenerate_WritesMetadata(t *testing.T) {
	root := fixture(t)

	out, err := run(t, "generate", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated metadata for 3 modules (2 plugins)")

	cp := read(t, root, "bundles/org.a/.classpath")
	assert.Contains(t, cp, `<classpathentry kind="src" path="src/"/>`)
	assert.Contains(t, cp, `<classpathentry kind="lib" exported="true" path="lib/dep.jar"/>`)

	testCP := read(t, root, "tests/org.a.test/.classpath")
	assert.Contains(t, testCP, `<attribute name="test" value="true"/>`)

	assert.Contains(t, read(t, root, "bundles/org.a/.project"), "<name>org.a</name>")
	assert.Contains(t, read(t, root, ".project"), "<name>kura</name>")
	assert.NoFileExists(t, filepath.Join(root, ".classpath"))
	// distrib descriptors are excluded by default
	assert.NoFileExists(t, filepath.Join(root, "distrib", ".project"))

	var doc struct {
		Projects       []string `json:"projects"`
		TargetPlatform string   `json:"targetPlatform"`
	}
	require.NoError(t, json.Unmarshal([]byte(read(t, root, "javaConfig.json")), &doc))
	assert.Equal(t, []string{"bundles/org.a", "tests/org.a.test"}, doc.Projects)
	assert.Equal(t, "target-definition/kura.target", doc.TargetPlatform)

	// the target platform is left alone without the patch flag
	assert.Equal(t, targetDefinition, read(t, root, "target-definition/kura.target"))
}

func TestRoot_RunsGenerate(t *testing.T) {
	root := fixture(t)

	_, err := run(t, "--root", root)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "javaConfig.json"))
}

func TestGenerate_DryRunWritesNothing(t *testing.T) {
	root := fixture(t)

	out, err := run(t, "generate", "--root", root, "--dry-run", "--patch-target-platform")
	require.Error(t, err, "no work tree exists yet")
	assert.ErrorIs(t, err, project.ErrWorkTreeNotFound)
	assert.Empty(t, out)

	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
	out, err = run(t, "generate", "--root", root, "--dry-run", "--patch-target-platform")
	require.NoError(t, err)

	assert.Contains(t, out, "[DRY RUN]")
	assert.Contains(t, out, "Dry run: 3 modules (2 plugins)")
	assert.NoFileExists(t, filepath.Join(root, "javaConfig.json"))
	assert.NoFileExists(t, filepath.Join(root, "bundles", "org.a", ".classpath"))
	assert.NoFileExists(t, filepath.Join(root, ".project"))
	assert.Equal(t, targetDefinition, read(t, root, "target-definition/kura.target"))
}

func TestGenerate_Idempotent(t *testing.T) {
	root := fixture(t)

	_, err := run(t, "generate", "--root", root)
	require.NoError(t, err)
	first := read(t, root, "bundles/org.a/.classpath")

	out, err := run(t, "generate", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "(unchanged)")
	assert.Contains(t, out, "0 written")
	assert.Equal(t, first, read(t, root, "bundles/org.a/.classpath"))
}

func TestGenerate_DiffPreview(t *testing.T) {
	root := fixture(t)
	_, err := run(t, "generate", "--root", root)
	require.NoError(t, err)

	write(t, root, "bundles/org.a/.project", "stale\n")

	out, err := run(t, "generate", "--root", root, "--diff")
	require.NoError(t, err)
	assert.Contains(t, out, "stale")
	assert.Contains(t, out, "[DRY RUN]")
	assert.Equal(t, "stale\n", read(t, root, "bundles/org.a/.project"))
}

func TestGenerate_AmbiguousTargetPlatformWritesNothing(t *testing.T) {
	root := fixture(t)
	write(t, root, "other/second.target", targetDefinition)

	_, logs, err := runWithLogs(t, "generate", "--root", root)
	require.Error(t, err)
	assert.ErrorIs(t, err, discovery.ErrTargetPlatformCount)
	assert.Contains(t, logs, "[ERROR]")
	assert.Contains(t, logs, "There should be exactly one target platform file")
	assert.Contains(t, logs, "found=2")

	var tpErr *discovery.TargetPlatformError
	require.ErrorAs(t, err, &tpErr)
	assert.Len(t, tpErr.Found, 2)

	assert.NoFileExists(t, filepath.Join(root, "javaConfig.json"))
	assert.NoFileExists(t, filepath.Join(root, "bundles", "org.a", ".classpath"))
}

func TestGenerate_MissingTargetPlatform(t *testing.T) {
	root := fixture(t)
	require.NoError(t, os.Remove(filepath.Join(root, "target-definition", "kura.target")))

	_, err := run(t, "generate", "--root", root)
	assert.ErrorIs(t, err, discovery.ErrTargetPlatformCount)
}

func TestGenerate_MalformedDescriptorIsFatal(t *testing.T) {
	root := fixture(t)
	write(t, root, "bundles/org.b/pom.xml", pom("", "eclipse-plugin"))

	_, err := run(t, "generate", "--root", root)
	require.Error(t, err)
	assert.ErrorIs(t, err, discovery.ErrMissingField)
	assert.NoFileExists(t, filepath.Join(root, "javaConfig.json"))
}

func TestGenerate_PatchTargetPlatform(t *testing.T) {
	root := fixture(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))

	_, err := run(t, "generate", "--root", root, "--patch-target-platform")
	require.NoError(t, err)

	abs, err := filepath.Abs(root)
	require.NoError(t, err)
	patched := read(t, root, "target-definition/kura.target")
	assert.Contains(t, patched, `path="`+abs+`/target-platform/p2-repo"`)
	assert.NotContains(t, patched, "${git_work_tree}")
	// excluded definitions are never patched
	assert.Equal(t, targetDefinition, read(t, root, "distrib/old.target"))
}

func TestGenerate_ExcludeFlagReplacesDefaults(t *testing.T) {
	root := fixture(t)

	_, err := run(t, "generate", "--root", root, "--exclude", "bundles", "--exclude", "distrib")
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(root, "bundles", "org.a", ".classpath"))
	assert.FileExists(t, filepath.Join(root, "tests", "org.a.test", ".classpath"))
}

func TestScan(t *testing.T) {
	root := fixture(t)

	out, err := run(t, "scan", "--root", root)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 3)
	assert.Equal(t, "org.a", records[0]["name"])
	assert.Equal(t, "bundles/org.a", records[0]["path"])
	assert.Equal(t, "eclipse-plugin", records[0]["packaging"])
	assert.Equal(t, ".", records[1]["path"])
	assert.Equal(t, "tests/org.a.test", records[2]["path"])

	// scanning writes nothing
	assert.NoFileExists(t, filepath.Join(root, "javaConfig.json"))
}

func TestScan_PluginsOnly(t *testing.T) {
	root := fixture(t)

	out, err := run(t, "scan", "--root", root, "--plugins")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 2)
}

func TestConfigInit(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, "config", "init", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, config.FileName)

	cfg, err := config.Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = run(t, "config", "init", "--root", root)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "config", "init", "--root", root, "--force")
	assert.NoError(t, err)
}

func TestGenerate_UsesConfigFile(t *testing.T) {
	root := fixture(t)
	write(t, root, config.FileName, "output:\n  classpath_dir: bin\n  aggregate_file: workspace.json\n")

	_, err := run(t, "generate", "--root", root)
	require.NoError(t, err)

	assert.Contains(t, read(t, root, "bundles/org.a/.classpath"), `<classpathentry kind="output" path="bin"/>`)
	assert.FileExists(t, filepath.Join(root, "workspace.json"))
	assert.NoFileExists(t, filepath.Join(root, "javaConfig.json"))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pdemeta dev (built from source)\n", out)
}

func TestVersionString_Release(t *testing.T) {
	version, commit, date := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = version, commit, date })

	Version, Commit, BuildDate = "1.2.0", "abc123", "2026-10-01"
	assert.Equal(t, "1.2.0 (commit: abc123, built: 2026-10-01)", VersionString())
}

func TestGenerate_ReportsTargetPlatform(t *testing.T) {
	root := fixture(t)

	out, logs, err := runWithLogs(t, "generate", "--root", root)
	require.NoError(t, err)

	assert.Contains(t, logs, "[INFO]")
	assert.Contains(t, logs, "Found target platform file")
	assert.Contains(t, logs, "path=target-definition/kura.target")
	assert.Contains(t, out, "Target platform: target-definition/kura.target")
}

func TestGenerate_VerboseListsModules(t *testing.T) {
	root := fixture(t)

	out, err := run(t, "generate", "--root", root, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "bundles/org.a org.a (eclipse-plugin)")
	assert.Contains(t, out, "tests/org.a.test org.a.test (eclipse-test-plugin)")

	out, err = run(t, "generate", "--root", root)
	require.NoError(t, err)
	assert.NotContains(t, out, "org.a (eclipse-plugin)")
}

func TestScan_VerboseKeepsJSONClean(t *testing.T) {
	root := fixture(t)

	out, err := run(t, "scan", "--root", root, "-v")
	require.NoError(t, err)

	var records []map[string]any
	assert.NoError(t, json.Unmarshal([]byte(out), &records))
}
