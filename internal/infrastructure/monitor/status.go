package monitor

import "time"

// Status is a snapshot of the last dependency health refresh.
type Status struct {
	Healthy    bool            `json:"healthy"`
	Components map[string]bool `json:"components"`
	LastCheck  time.Time       `json:"last_check"`
}
