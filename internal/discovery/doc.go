// Package discovery finds the modules of a Maven/Tycho build tree.
//
// A Scanner walks the tree for pom.xml descriptors, drops those whose path
// contains an excluded substring, and turns each remaining descriptor into an
// immutable module.Record:
//
//	scanner := discovery.NewScanner(discovery.DefaultOptions(), logger)
//	records, err := scanner.Discover(".")
//
// Source roots come from the "source.." key of a module's build.properties
// when present, otherwise from probing src/main/java and src/test/java.
// Library archives are the jars in the module's lib folder.
//
// FindTargetPlatform locates the single *.target file of the tree.
package discovery
