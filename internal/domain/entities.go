package domain

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
)

type RequestStatus string

const (
	StatusCreated   RequestStatus = "created"
	StatusFulfilled RequestStatus = "fulfilled"
)

// Request is one unit of work: a photo plus a human-entered number, routed
// to a single driver and later fulfilled by returned documents.
type Request struct {
	ID        string
	Driver    string
	PhotoID   string
	Status    RequestStatus
	CreatedAt time.Time
}

// AuditRecord is one row of the durable hand-off log.
type AuditRecord struct {
	RequestID string
	Driver    string
	Timestamp time.Time
	PhotoID   string
	Origin    Role
}
