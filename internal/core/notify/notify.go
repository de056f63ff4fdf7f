// Package notify defines user-facing status notifications.
package notify

import "time"

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification shown in the status line.
type Notification struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}
