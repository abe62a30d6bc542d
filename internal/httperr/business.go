package httperr

import "github.com/cockroachdb/errors"

// BusinessError is a terminal, user-facing rejection identified by a stable
// code. Detail carries optional context such as the absence reason.
type BusinessError struct {
	Code   string
	Detail string
}

func (e BusinessError) Error() string {
	if e.Detail != "" {
		return e.Code + ": " + e.Detail
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessDetail(code, detail string) error {
	return BusinessError{Code: code, Detail: detail}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness extracts the business error from err's chain.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return BusinessError{}, false
}
