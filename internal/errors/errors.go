package errors

import (
	"encoding/json"
	"fmt"
)

// NotFoundErr is raised when requested record does not exist
type NotFoundErr struct {
	message string
}

func (e *NotFoundErr) Error() string {
	return e.message
}

// NewNotFoundErr builds new NotFoundErr
func NewNotFoundErr(msg string) *NotFoundErr {
	return &NotFoundErr{message: msg}
}

// InvalidArgumentErr is raised when request payload is well-formed but not acceptable
type InvalidArgumentErr struct {
	message string
}

func (e *InvalidArgumentErr) Error() string {
	return e.message
}

// NewInvalidArgumentErr builds new InvalidArgumentErr
func NewInvalidArgumentErr(msg string) *InvalidArgumentErr {
	return &InvalidArgumentErr{message: msg}
}

// PersistenceErr is raised when backing storage read or write fails
type PersistenceErr struct {
	op    string
	cause error
}

func (e *PersistenceErr) Error() string {
	return fmt.Sprintf("%s - %v", e.op, e.cause)
}

func (e *PersistenceErr) Unwrap() error {
	return e.cause
}

// NewPersistenceErr builds new PersistenceErr
func NewPersistenceErr(op string, cause error) *PersistenceErr {
	return &PersistenceErr{op: op, cause: cause}
}

// BusinessErr is raised on domain rule violation for a particular target field
type BusinessErr struct {
	target  string
	message string
}

func (e *BusinessErr) Error() string {
	return e.message
}

func (e *BusinessErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Target  string `json:"target"`
		Message string `json:"message"`
	}{Target: e.target, Message: e.message})
}

// NewBusinessErr builds new BusinessErr
func NewBusinessErr(target string, msg string) error {
	return &BusinessErr{
		target:  target,
		message: msg,
	}
}

// UnauthorizedErr is raised when credentials or token verification fails
type UnauthorizedErr struct {
	message string
}

func (e *UnauthorizedErr) Error() string {
	return e.message
}

// NewUnauthorizedErr builds new UnauthorizedErr
func NewUnauthorizedErr(msg string) *UnauthorizedErr {
	return &UnauthorizedErr{message: msg}
}
