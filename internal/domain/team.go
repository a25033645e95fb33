package domain

import "time"

// Team groups dashboard users and owns widget keys and configuration.
type Team struct {
	ID          int64
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	CreatedBy   int64
}
