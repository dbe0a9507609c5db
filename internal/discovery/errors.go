package discovery

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingField marks a descriptor lacking artifactId or packaging.
	ErrMissingField = errors.New("missing required field")

	// ErrTargetPlatformCount marks a tree without exactly one target platform file.
	ErrTargetPlatformCount = errors.New("there should be exactly one target platform file")
)

// DescriptorError reports a descriptor that could not be read or is incomplete.
// Any DescriptorError aborts discovery as a whole.
type DescriptorError struct {
	Path  string // Descriptor path relative to the scan root
	Field string // Missing field, empty for read/parse failures
	Err   error
}

func (e *DescriptorError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("descriptor %s: %s: %v", e.Path, e.Field, e.Err)
	}
	return fmt.Sprintf("descriptor %s: %v", e.Path, e.Err)
}

func (e *DescriptorError) Unwrap() error { return e.Err }

// TargetPlatformError lists the target platform candidates when there is not
// exactly one of them.
type TargetPlatformError struct {
	Found []string
}

func (e *TargetPlatformError) Error() string {
	if len(e.Found) == 0 {
		return fmt.Sprintf("%v. Found: 0", ErrTargetPlatformCount)
	}
	return fmt.Sprintf("%v. Found: %d (%s)", ErrTargetPlatformCount, len(e.Found), strings.Join(e.Found, ", "))
}

func (e *TargetPlatformError) Is(target error) bool {
	return target == ErrTargetPlatformCount
}
