package entity

import "time"

// RefreshSession refresh token emitido y vigente, indexado por su jti.
type RefreshSession struct {
	JTI       string
	UserID    int64
	ExpiresAt time.Time
}
