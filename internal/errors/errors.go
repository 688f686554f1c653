package errors

import (
	"encoding/json"
	"errors"
)

// Stable business error codes, callers must branch on the code and
// never on the description text
const (
	CodeCustomerAlreadyExists = "CustomerAlreadyExists"
	CodeInvalidID             = "InvalidID"
	CodeCustomerDoesntExist   = "CustomerDontExists"
)

// BusinessErr represents expected business rule violation, it is returned
// as a value and is never raised via panic
type BusinessErr struct {
	code    string
	message string
}

func (e *BusinessErr) Error() string {
	return e.message
}

// Code is stable error kind token
func (e *BusinessErr) Code() string {
	return e.code
}

func (e *BusinessErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{Code: e.code, Message: e.message})
}

func NewBusinessErr(code string, msg string) error {
	return &BusinessErr{
		code:    code,
		message: msg,
	}
}

// BusinessCode extracts business error code from err,
// empty string is returned for any non-business error
func BusinessCode(err error) string {
	var bizErr *BusinessErr
	if errors.As(err, &bizErr) {
		return bizErr.Code()
	}
	return ""
}

// FailedWith reports whether err is business error with provided code
func FailedWith(err error, code string) bool {
	return BusinessCode(err) == code
}
