package validators

import "strings"

var phoneMessages = map[string]string{
	"required": "Phone number is required",
	"":         "Please enter a valid 10-digit phone number",
}

func ValidatePhone(phone string) Result {
	return check(NormalizePhone(phone), "required,mobile", phoneMessages)
}

// NormalizePhone strips all whitespace, including between digit groups.
func NormalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}
