package store

import "github.com/imbecis/app-imbecis/internal/models"

// Location is the best-known device position, written by an external
// geolocation source and read by callers creating reports.
type Location struct {
	*Observable[models.Coordinates]
}

// NewLocation starts at {0, 0} until a position is known
func NewLocation() *Location {
	return &Location{Observable: NewObservable(models.Coordinates{})}
}

// Known reports whether a position other than the initial {0, 0} was set
func (l *Location) Known() bool {
	c := l.Get()
	return c.Latitude != 0 || c.Longitude != 0
}
