package order

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Field-level validators. The storefront runs the same checks client-side
// for interactive feedback, but the server re-runs them as the source of
// truth; client validation is not a security boundary.

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// ValidateEmail checks the basic shape of an e-mail address.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return errors.New("invalid email address")
	}
	return nil
}

// ValidatePhone accepts 10 to 15 digits with an optional leading +.
func ValidatePhone(phone string) error {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
	if !phonePattern.MatchString(cleaned) {
		return errors.New("invalid phone number")
	}
	return nil
}

// ValidateLength bounds a trimmed string field. max <= 0 means unbounded.
func ValidateLength(value string, min, max int) error {
	n := len(strings.TrimSpace(value))
	if n < min {
		return errors.Errorf("must be at least %d characters", min)
	}
	if max > 0 && n > max {
		return errors.Errorf("must be at most %d characters", max)
	}
	return nil
}

func (r CartOrderRequest) validate() *ValidationError {
	verr := newValidationError()
	if strings.TrimSpace(r.Name) == "" {
		verr.flag("name", "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		verr.flag("email", "email is required")
	} else if err := ValidateEmail(r.Email); err != nil {
		verr.flag("email", err.Error())
	}
	if strings.TrimSpace(r.Phone) == "" {
		verr.flag("phone", "phone is required")
	} else if err := ValidatePhone(r.Phone); err != nil {
		verr.flag("phone", err.Error())
	}
	if strings.TrimSpace(r.Address) == "" {
		verr.flag("address", "address is required")
	}
	if len(r.Items) == 0 {
		verr.flag("items", "at least one item is required")
	}
	for _, item := range r.Items {
		if strings.TrimSpace(item.Name) == "" || item.Price < 0 || item.Quantity < 1 {
			verr.flag("items", "each item needs a name, a non-negative price and quantity >= 1")
			break
		}
	}
	if verr.ok() {
		return nil
	}
	return verr
}

func (r CustomOrderRequest) validate() *ValidationError {
	verr := newValidationError()
	if strings.TrimSpace(r.Name) == "" {
		verr.flag("name", "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		verr.flag("email", "email is required")
	} else if err := ValidateEmail(r.Email); err != nil {
		verr.flag("email", err.Error())
	}
	if strings.TrimSpace(r.Phone) == "" {
		verr.flag("phone", "phone is required")
	} else if err := ValidatePhone(r.Phone); err != nil {
		verr.flag("phone", err.Error())
	}
	if strings.TrimSpace(r.Description) == "" {
		verr.flag("description", "description is required")
	}
	if verr.ok() {
		return nil
	}
	return verr
}
