package errors

import (
	"errors"
	"strings"
)

// ErrorChain collects failures from independent steps so a caller can keep
// going and report them together.
type ErrorChain struct {
	errors []*AppError
}

// NewErrorChain creates a new error chain
func NewErrorChain() *ErrorChain {
	return &ErrorChain{
		errors: make([]*AppError, 0),
	}
}

// Add adds an error to the chain. Non-AppErrors are converted; nil is ignored.
// A joined error adds each of its members.
func (c *ErrorChain) Add(err error) *ErrorChain {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, member := range joined.Unwrap() {
			c.Add(member)
		}
		return c
	}
	if appErr := FromError(err); appErr != nil {
		c.errors = append(c.errors, appErr)
	}
	return c
}

// HasErrors checks if the chain has errors
func (c *ErrorChain) HasErrors() bool {
	return len(c.errors) > 0
}

// Len returns the number of collected errors.
func (c *ErrorChain) Len() int {
	return len(c.errors)
}

// Error returns the combined error message
func (c *ErrorChain) Error() string {
	if !c.HasErrors() {
		return ""
	}

	var messages []string
	for _, err := range c.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, " | ")
}

// Err returns nil for an empty chain, otherwise the joined errors.
func (c *ErrorChain) Err() error {
	if !c.HasErrors() {
		return nil
	}
	errs := make([]error, len(c.errors))
	for i, err := range c.errors {
		errs[i] = err
	}
	return errors.Join(errs...)
}

// Errors returns all errors in the chain
func (c *ErrorChain) Errors() []*AppError {
	return c.errors
}

// First returns the first error in the chain
func (c *ErrorChain) First() *AppError {
	if len(c.errors) == 0 {
		return nil
	}
	return c.errors[0]
}

// HasType checks if the chain has an error of the specified type
func (c *ErrorChain) HasType(errType ErrorType) bool {
	for _, err := range c.errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}
