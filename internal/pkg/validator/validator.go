package validator

import (
	"regexp"
	"strings"
)

var (
	emailRegex       = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex       = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	urlRegex         = regexp.MustCompile(`^https?:\/\/(www\.)?[-a-zA-Z0-9@:%._\+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_\+.~#?&//=]*)$`)
	bankAccountRegex = regexp.MustCompile(`^[0-9]{6,20}$`)
)

// IsValidEmail checks basic email format.
func IsValidEmail(email string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}
	return emailRegex.MatchString(email)
}

// IsValidPhone accepts local and E.164-ish phone numbers.
func IsValidPhone(phone string) bool {
	phone = strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if phone == "" {
		return false
	}
	return phoneRegex.MatchString(phone)
}

// IsValidURL checks http/https URL format.
func IsValidURL(url string) bool {
	if strings.TrimSpace(url) == "" {
		return false
	}
	return urlRegex.MatchString(url)
}

// IsValidBankAccount checks a bank account number (digits only).
func IsValidBankAccount(account string) bool {
	account = strings.ReplaceAll(strings.TrimSpace(account), " ", "")
	if account == "" {
		return false
	}
	return bankAccountRegex.MatchString(account)
}
