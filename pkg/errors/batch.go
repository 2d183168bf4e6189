package errors

import (
	"fmt"
	"strings"
)

// BatchErrors collects per item failures of a batch operation in the order
// they happened. The zero value is ready to use.
type BatchErrors struct {
	names []string
	errs  []error
}

// Add records err for name. Nil errors are ignored.
func (b *BatchErrors) Add(name string, err error) {
	if err == nil {
		return
	}
	b.names = append(b.names, name)
	b.errs = append(b.errs, Normalize(err))
}

// Len returns the number of recorded failures.
func (b *BatchErrors) Len() int {
	return len(b.names)
}

// Each calls fn for every recorded failure in insertion order.
func (b *BatchErrors) Each(fn func(name string, err error)) {
	for i, name := range b.names {
		fn(name, b.errs[i])
	}
}

// Err returns nil when no failure was recorded, otherwise the batch itself.
func (b *BatchErrors) Err() error {
	if b == nil || len(b.names) == 0 {
		return nil
	}
	return b
}

func (b *BatchErrors) Error() string {
	parts := make([]string, 0, len(b.names))
	for i, name := range b.names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, Message(b.errs[i])))
	}
	return fmt.Sprintf("%d package(s) failed: %s", len(b.names), strings.Join(parts, "; "))
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (b *BatchErrors) Unwrap() []error {
	return b.errs
}
