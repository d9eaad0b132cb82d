package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/bookmylook-auth/internal/httperr"
	"github.com/BruksfildServices01/bookmylook-auth/internal/httpresp"
	"github.com/BruksfildServices01/bookmylook-auth/internal/middleware"
	ucAuth "github.com/BruksfildServices01/bookmylook-auth/internal/usecase/auth"
)

type MeHandler struct {
	profile *ucAuth.GetProfile
}

func NewMeHandler(profile *ucAuth.GetProfile) *MeHandler {
	return &MeHandler{profile: profile}
}

// GET /api/auth/me
func (h *MeHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		_ = c.Error(httperr.Authentication("Authentication required"))
		return
	}

	p, err := h.profile.Execute(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.OK(c, gin.H{"user": p}, "")
}
