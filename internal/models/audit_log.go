package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *string `gorm:"type:uuid;index" json:"userId"`
	Action string  `gorm:"size:50;not null;index" json:"action"`

	IP        string `gorm:"size:64" json:"ip"`
	UserAgent string `gorm:"size:255" json:"userAgent"`
	Metadata  string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"createdAt"`
}
