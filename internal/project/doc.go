// Package project locates the version-control root enclosing a build tree.
//
// The target platform patch needs the absolute path of the git work tree:
//
//	root, err := project.FindWorkTree(".", project.DefaultSearchDepth)
//	if errors.Is(err, project.ErrWorkTreeNotFound) {
//	    // not inside a checkout
//	}
package project
