package draft

import (
	"fmt"
	"time"
)

// AutoSaveStatus describes how long ago lastSaved was relative to now.
func AutoSaveStatus(lastSaved *time.Time, now time.Time) string {
	if lastSaved == nil {
		return "Not saved"
	}
	d := now.Sub(*lastSaved)
	switch {
	case d < time.Minute:
		return "Saved just now"
	case d < 2*time.Minute:
		return "Saved 1 minute ago"
	case d < time.Hour:
		return fmt.Sprintf("Saved %d minutes ago", int(d/time.Minute))
	default:
		return "Saved earlier"
	}
}
