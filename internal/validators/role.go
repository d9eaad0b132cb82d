package validators

import (
	"strings"

	"github.com/BruksfildServices01/bookmylook-auth/internal/models"
)

var roleTag, roleMessages = func() (string, map[string]string) {
	names := make([]string, len(models.Roles))
	for i, r := range models.Roles {
		names[i] = string(r)
	}
	return "oneof=" + strings.Join(names, " "),
		map[string]string{"": "Role must be one of " + strings.Join(names, ", ")}
}()

// ValidateRole accepts only the exact enumeration values; case is not folded.
func ValidateRole(role string) Result {
	return check(role, roleTag, roleMessages)
}
