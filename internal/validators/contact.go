package validators

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var (
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrInvalidEmail = errors.New("invalid email address")
)

// DefaultRegion is used for numbers written without a country prefix.
const DefaultRegion = "BR"

// NormalizeContact accepts an empty value, an email address or a phone
// number. Phones come back in E.164, emails lower-cased.
func NormalizeContact(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if strings.Contains(raw, "@") {
		return NormalizeEmail(raw)
	}
	return NormalizePhone(raw, region)
}

func NormalizePhone(raw, region string) (string, error) {
	if region == "" {
		region = DefaultRegion
	}

	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil {
		return "", ErrInvalidPhone
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func NormalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	at := strings.LastIndex(addr.Address, "@")
	if at <= 0 || !strings.Contains(addr.Address[at+1:], ".") {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}
