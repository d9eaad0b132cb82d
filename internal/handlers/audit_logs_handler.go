package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/bookmylook-auth/internal/audit"
	"github.com/BruksfildServices01/bookmylook-auth/internal/httperr"
	"github.com/BruksfildServices01/bookmylook-auth/internal/httpresp"
	"github.com/BruksfildServices01/bookmylook-auth/internal/models"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditLister interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs AuditLister
}

func NewAuditLogsHandler(logs AuditLister) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// GET /api/admin/audit-logs?userId=&action=&from=YYYY-MM-DD&to=YYYY-MM-DD&page=&limit=
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if limit <= 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}

	f := audit.Filter{
		UserID: c.Query("userId"),
		Action: c.Query("action"),
		Page:   page,
		Limit:  limit,
	}

	// --------------------------------------------------
	// Date range, inclusive of the "to" day
	// --------------------------------------------------
	fields := map[string][]string{}
	if f.UserID != "" {
		if _, err := uuid.Parse(f.UserID); err != nil {
			fields["userId"] = []string{"Expected a user id in UUID format"}
		}
	}
	if s := c.Query("from"); s != "" {
		from, err := time.Parse(time.DateOnly, s)
		if err != nil {
			fields["from"] = []string{"Expected a date in YYYY-MM-DD format"}
		}
		f.From = from
	}
	if s := c.Query("to"); s != "" {
		to, err := time.Parse(time.DateOnly, s)
		if err != nil {
			fields["to"] = []string{"Expected a date in YYYY-MM-DD format"}
		}
		f.To = to.Add(24 * time.Hour)
	}
	if len(fields) > 0 {
		_ = c.Error(httperr.Validation("Validation failed", fields))
		return
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		_ = c.Error(httperr.Database(err))
		return
	}

	httpresp.WithMeta(c, gin.H{"logs": logs}, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
	})
}
