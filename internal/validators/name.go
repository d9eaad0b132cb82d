package validators

import "strings"

const nameTags = "required,min=2,max=50,personname"

func nameMessages(label string) map[string]string {
	return map[string]string{
		"required": label + " is required",
		"min":      label + " must be between 2 and 50 characters",
		"max":      label + " must be between 2 and 50 characters",
		"":         label + " can only contain letters, spaces, hyphens, and apostrophes",
	}
}

// ValidateName checks a person's name; label prefixes the messages ("First name").
func ValidateName(name, label string) Result {
	return check(strings.TrimSpace(name), nameTags, nameMessages(label))
}
