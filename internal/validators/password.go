package validators

// Each rule runs on its own so a password reports every rule it breaks.
var passwordRules = []struct {
	tag string
	msg string
}{
	{"min=8", "Password must be at least 8 characters long"},
	{"max=128", "Password must not exceed 128 characters"},
	{"hasupper", "Password must contain at least one uppercase letter"},
	{"haslower", "Password must contain at least one lowercase letter"},
	{"hasdigit", "Password must contain at least one number"},
	{"hassymbol", "Password must contain at least one special character"},
	{"norepeat", "Password must not contain 4 or more repeated characters in a row"},
	{"notcommon", "Password is too common. Please choose a stronger password"},
}

func ValidatePassword(password string) Result {
	if password == "" {
		return invalid("Password is required")
	}

	var errs []string
	for _, rule := range passwordRules {
		if err := validate.Var(password, rule.tag); err != nil {
			errs = append(errs, rule.msg)
		}
	}
	return result(errs)
}
