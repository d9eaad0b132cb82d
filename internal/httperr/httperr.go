package httperr

import (
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/bookmylook-auth/internal/httpresp"
)

const genericMessage = "Internal server error"

// Write serializes err as the failure envelope. Outside production the
// underlying cause of database and internal errors is shown.
func Write(c *gin.Context, err error, production bool) {
	he := From(err)

	msg := he.Message
	if !he.Exposed() {
		msg = genericMessage
		if !production && he.Err != nil {
			msg = he.Err.Error()
		}
	}

	env := httpresp.Envelope{Success: false, Error: msg}
	if len(he.Fields) > 0 {
		env.Error = joinFields(he.Message, he.Fields)
		env.Meta = gin.H{"errors": he.Fields}
	}

	c.AbortWithStatusJSON(he.Status(), env)
}

func joinFields(prefix string, fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, strings.Join(fields[k], ", "))
	}
	return prefix + ": " + strings.Join(parts, "; ")
}
