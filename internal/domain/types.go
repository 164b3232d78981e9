package domain

import "time"

type SessionID string
type UserID string
type MessageID string
type PlanID string
type SummaryID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Category is the closed set of insurance verticals Briki sells.
type Category string

const (
	CategoryTravel Category = "travel"
	CategoryAuto   Category = "auto"
	CategoryPet    Category = "pet"
	CategoryHealth Category = "health"
)

// Categories lists every valid category, in display order.
var Categories = []Category{CategoryTravel, CategoryAuto, CategoryPet, CategoryHealth}

func (c Category) Valid() bool {
	switch c {
	case CategoryTravel, CategoryAuto, CategoryPet, CategoryHealth:
		return true
	}
	return false
}

type Timestamp = time.Time
