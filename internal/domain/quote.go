package domain

import "time"

// Quote is a short piece of text attributed to an optional author and owned
// by the user who created it. Ownership is assigned once at creation and
// never changes.
type Quote struct {
	ID                int64
	Text              string
	Author            string
	CreatedBy         int64
	CreatedByUsername string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
