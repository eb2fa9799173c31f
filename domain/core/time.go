package core

import "time"

// Now returns the current UTC time. All persisted timestamps go through
// this so stored runs compare consistently across hosts.
func Now() time.Time {
	return time.Now().UTC()
}
