package entity

import "time"

type ValidationResult struct {
	RunID    string
	BaseURL  string
	Question string
	Facts    []string
	Polls    int
	Elapsed  time.Duration
}
