package sanitizer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidName is returned for names that cannot be used as a single path element
var ErrInvalidName = errors.New("invalid file name")

var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// CleanName trims surrounding whitespace from a user supplied file name.
// Returns the cleaned name and a boolean indicating if changes were made
func CleanName(name string) (string, bool) {
	cleaned := strings.TrimSpace(name)
	return cleaned, cleaned != name
}

// ValidateName checks that name can be used as one element of a local or remote path
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case controlChars.MatchString(name):
		return fmt.Errorf("%w: %q contains control characters", ErrInvalidName, name)
	}
	return nil
}

// Name cleans and validates name in one step
func Name(name string) (string, error) {
	cleaned, _ := CleanName(name)
	if err := ValidateName(cleaned); err != nil {
		return "", err
	}
	return cleaned, nil
}
