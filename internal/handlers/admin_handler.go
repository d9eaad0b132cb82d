package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/bookmylook-auth/internal/httpresp"
	ucAuth "github.com/BruksfildServices01/bookmylook-auth/internal/usecase/auth"
)

type AdminHandler struct {
	getUser *ucAuth.GetUser
}

func NewAdminHandler(getUser *ucAuth.GetUser) *AdminHandler {
	return &AdminHandler{getUser: getUser}
}

// GET /api/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	p, err := h.getUser.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.OK(c, gin.H{"user": p}, "")
}
