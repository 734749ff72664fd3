package store

import "errors"

// Common store errors.
var (
	// ErrSurveyNotFound is returned when a survey id is not present in
	// the document.
	ErrSurveyNotFound = errors.New("survey not found")
)
