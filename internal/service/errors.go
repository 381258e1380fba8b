package service

import (
	"errors"
	"fmt"

	"fjacquet/finflow/internal/models"
	"fjacquet/finflow/internal/parsererror"
)

// ErrNoHistory is returned by Analyze when the user has no stored transactions.
var ErrNoHistory = errors.New("no transaction history found")

// InvalidRequestError wraps a rejected input. Its message is safe to return
// to clients.
type InvalidRequestError struct {
	Err error
}

func (e *InvalidRequestError) Error() string {
	return e.Err.Error()
}

func (e *InvalidRequestError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a storage failure behind a generic message.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// PublicMessage is the message for err that may be shown to an API client.
func PublicMessage(err error) string {
	var (
		invalid     *InvalidRequestError
		persistence *PersistenceError
		format      *parsererror.InvalidFormatError
	)
	switch {
	case errors.Is(err, ErrNoHistory):
		return models.MessageNoHistory
	case errors.Is(err, parsererror.ErrNoTransactions):
		return models.MessageNoTransactions
	case errors.As(err, &format):
		return "Could not read the uploaded statement."
	case errors.As(err, &invalid):
		return invalid.Error()
	case errors.As(err, &persistence):
		return "Failed to " + persistence.Op + "."
	default:
		return "Internal error."
	}
}
