package account

import (
	"strings"
	"unicode"
)

// PlaceholderEmailDomain marks synthesized addresses of phone-only accounts.
const PlaceholderEmailDomain = "phone.bookmylook.local"

// PlaceholderEmail derives a stable address from a phone number so phone-only
// accounts still satisfy the unique email column.
func PlaceholderEmail(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return "phone_" + b.String() + "@" + PlaceholderEmailDomain
}

func IsPlaceholderEmail(email string) bool {
	return strings.HasSuffix(email, "@"+PlaceholderEmailDomain)
}
