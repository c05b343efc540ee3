// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrNoRecipients means the caller selected nobody.
type ErrNoRecipients struct{}

func (e *ErrNoRecipients) Error() string {
	return "no recipients selected"
}

// ErrUnknownRecipient means a selected id is not in the candidate snapshot.
type ErrUnknownRecipient struct {
	RecipientID string
}

func (e *ErrUnknownRecipient) Error() string {
	return fmt.Sprintf("unknown recipient %q", e.RecipientID)
}

// ErrEmptyMessage means the message body is empty after trimming.
type ErrEmptyMessage struct{}

func (e *ErrEmptyMessage) Error() string {
	return "message body is empty"
}

// Helper constructors
func NewNoRecipients() error              { return &ErrNoRecipients{} }
func NewUnknownRecipient(id string) error { return &ErrUnknownRecipient{RecipientID: id} }
func NewEmptyMessage() error              { return &ErrEmptyMessage{} }

// IsValidation reports whether err is a composer validation error, i.e.
// recoverable by the caller correcting input.
func IsValidation(err error) bool {
	var noRec *ErrNoRecipients
	var unknown *ErrUnknownRecipient
	var empty *ErrEmptyMessage
	return errors.As(err, &noRec) || errors.As(err, &unknown) || errors.As(err, &empty)
}
