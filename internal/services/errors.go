package services

import (
	"errors"
	"fmt"
)

// ErrForbidden marks authorization denials across all services. The wrapped
// message carries the policy reason for the response body.
var ErrForbidden = errors.New("forbidden")

func forbidden(reason string) error {
	if reason == "" {
		return ErrForbidden
	}
	return fmt.Errorf("%w - %s", ErrForbidden, reason)
}
