package domain

import "time"

// Asset is the resource managed by the protected API.
type Asset struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
