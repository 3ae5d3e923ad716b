package domain

import "time"

// HistoryRecord captures one completed command that wrote artifacts.
type HistoryRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	Prompt    string    `json:"prompt"`
	Model     string    `json:"model"`
	Files     []string  `json:"files"`
}
