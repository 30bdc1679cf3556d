// Package resolver answers one question: can the named module be loaded
// from a directory right now?
package resolver

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNotFound matches every unresolved module error.
var ErrNotFound = errors.New("module not found")

// NotFoundError is the failure every resolver reports.
type NotFoundError struct {
	Name  string
	Cause error
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Cannot find module '%s': %v", e.Name, e.Cause)
	}
	return fmt.Sprintf("Cannot find module '%s'", e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func (e *NotFoundError) Unwrap() error { return e.Cause }

// Resolution is either Resolved(handle) or Unresolved(err).
type Resolution struct {
	Handle string
	Err    error
}

func Resolved(handle string) Resolution {
	return Resolution{Handle: handle}
}

// Unresolved never carries a nil error; a nil err becomes ErrNotFound.
func Unresolved(err error) Resolution {
	if err == nil {
		err = ErrNotFound
	}
	return Resolution{Err: err}
}

func (r Resolution) OK() bool { return r.Err == nil }

// Detail renders the failure the way a JavaScript Error prints itself,
// e.g. "Error: Cannot find module 'fecoding'". Empty when resolved.
func (r Resolution) Detail() string {
	if r.Err == nil {
		return ""
	}
	return "Error: " + r.Err.Error()
}

type Resolver interface {
	Resolve(ctx context.Context, name, dir string) Resolution
}

// Func adapts a function to Resolver.
type Func func(ctx context.Context, name, dir string) Resolution

func (f Func) Resolve(ctx context.Context, name, dir string) Resolution {
	return f(ctx, name, dir)
}

// ValidName reports whether name is a bare package name such as "lodash"
// or "@scope/pkg". Relative and absolute specifiers are rejected.
func ValidName(name string) bool {
	if name == "" || strings.ContainsAny(name, `\ `) {
		return false
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "/") || path.IsAbs(name) {
		return false
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	if strings.HasPrefix(name, "@") {
		return strings.Count(name, "/") >= 1
	}
	return true
}
