package domain

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrSelectionNotFound = errors.New("selection not found")
	ErrSummaryNotFound   = errors.New("summary not found")
)
