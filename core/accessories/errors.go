package accessories

import (
	"errors"
	"fmt"
)

// ErrMissingElement matches every MissingElementError via errors.Is.
var ErrMissingElement = errors.New("page does not match expected markup")

// MissingElementError reports an element the accessories markup requires
// but the page lacks. Any such error aborts the transform of that page.
type MissingElementError struct {
	Selector string
	Context  string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("%s: %s: no element matches %q", ErrMissingElement, e.Context, e.Selector)
}

// Is reports whether target is ErrMissingElement.
func (e *MissingElementError) Is(target error) bool {
	return target == ErrMissingElement
}

func missing(selector, context string) error {
	return &MissingElementError{Selector: selector, Context: context}
}
