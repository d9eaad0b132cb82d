package validators

import "strings"

var emailMessages = map[string]string{
	"required": "Email is required",
	"max":      "Email must not exceed 254 characters",
	"":         "Please enter a valid email address",
}

func ValidateEmail(email string) Result {
	return check(strings.TrimSpace(email), "required,max=254,email", emailMessages)
}

// NormalizeEmail is applied before every lookup and write.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
