// Package filesystem provides tree traversal helpers used by module discovery.
//
// # Overview
//
// Discovery needs three things from the file system:
//   - A traversal that skips dot-directories (.git, .settings, .metadata)
//   - Glob matching of root-relative paths ("**/pom.xml", "**/*.target")
//   - The plain substring exclusion filter applied to matched paths
//
// # Usage
//
// Find every descriptor below the current directory:
//
//	poms, err := filesystem.MatchFiles(".", "**/pom.xml", filesystem.WalkOptions{})
//	poms = filesystem.ExcludeContaining(poms, []string{"target", "examples"})
//
// Custom walk:
//
//	err := filesystem.Walk(".", filesystem.WalkOptions{
//	    IgnoreDirs: []string{"node_modules"},
//	}, func(path string, info os.FileInfo) error {
//	    return nil
//	})
package filesystem
