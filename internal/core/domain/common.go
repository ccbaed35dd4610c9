package domain

import "time"

// AuditFields holds the server-assigned timestamps shared by all stored entities.
// Repositories set both on create and refresh UpdatedAt on every update.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
