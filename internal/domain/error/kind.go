// Package error defines domain-specific errors for the Kharcha ledger.
package error

import (
	"errors"
	"strings"
)

// Kind classifies a domain error independently of the component that raised it.
type Kind string

const (
	KindValidation Kind = "validation"
	KindReference  Kind = "reference"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindStorage    Kind = "storage"
)

// Coded is implemented by every coded domain error.
type Coded interface {
	error
	Kind() Kind
	ErrorCode() string
}

// KindOf classifies err. Errors that carry no code are treated as storage failures.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var coded Coded
	if errors.As(err, &coded) {
		return coded.Kind()
	}
	return KindStorage
}

// CodeOf returns the code of the first coded error in err's chain.
func CodeOf(err error) string {
	var coded Coded
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return ""
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsReference reports whether err is a dangling reference error.
func IsReference(err error) bool { return KindOf(err) == KindReference }

// IsStorage reports whether err is a storage failure.
func IsStorage(err error) bool { return KindOf(err) == KindStorage }

// kindFromCode reads the kind block of a PREFIX-KKNNNN code.
func kindFromCode(code string) Kind {
	_, rest, ok := strings.Cut(code, "-")
	if !ok || len(rest) < 2 {
		return KindStorage
	}
	switch rest[:2] {
	case "01":
		return KindValidation
	case "02":
		return KindReference
	case "03":
		return KindConflict
	case "04":
		return KindNotFound
	default:
		return KindStorage
	}
}
