package enlistment

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateOffering is returned when a catalog lists the same key twice.
	ErrDuplicateOffering = errors.New("duplicate offering")
	// ErrInvalidOffering is returned for offerings with a missing key or negative figures.
	ErrInvalidOffering = errors.New("invalid offering")
)

// Offering is one offerable subject section for the term. Seat figures are a
// snapshot taken when the catalog was fetched.
type Offering struct {
	Key          Key      `json:"key"`
	Title        string   `json:"title"`
	Units        float64  `json:"units"`
	ScheduleText string   `json:"schedule"`
	Schedule     Schedule `json:"meetings"`
	Instructor   string   `json:"instructor,omitempty"`
	Room         string   `json:"room,omitempty"`
	CourseID     string   `json:"courseId,omitempty"`
	SeatsTaken   int      `json:"seatsTaken"`
	SeatsTotal   int      `json:"seatsTotal"`
}

// RemainingSeats never goes negative, even when the snapshot shows more
// seats taken than exist.
func (o Offering) RemainingSeats() int {
	if o.SeatsTaken >= o.SeatsTotal {
		return 0
	}
	return o.SeatsTotal - o.SeatsTaken
}

// HasSchedule is false for asynchronous offerings and for offerings whose
// schedule text had no readable clause. Such offerings never conflict.
func (o Offering) HasSchedule() bool {
	return len(o.Schedule) > 0
}

// Catalog is the ordered set of offerings available in a session.
type Catalog struct {
	offerings []Offering
	index     map[Key]int
}

// NewCatalog validates and indexes the offerings, keeping their order.
func NewCatalog(offerings []Offering) (*Catalog, error) {
	catalog := &Catalog{
		offerings: make([]Offering, 0, len(offerings)),
		index:     make(map[Key]int, len(offerings)),
	}
	for _, offering := range offerings {
		if offering.Key.IsZero() {
			return nil, fmt.Errorf("%w: missing code or section", ErrInvalidOffering)
		}
		if offering.Units < 0 || offering.SeatsTaken < 0 || offering.SeatsTotal < 0 {
			return nil, fmt.Errorf("%w: %s has negative units or seats", ErrInvalidOffering, offering.Key)
		}
		if _, exists := catalog.index[offering.Key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOffering, offering.Key)
		}
		catalog.index[offering.Key] = len(catalog.offerings)
		catalog.offerings = append(catalog.offerings, offering)
	}
	return catalog, nil
}

// Lookup resolves an offering by key. A nil catalog holds nothing.
func (c *Catalog) Lookup(key Key) (Offering, bool) {
	if c == nil {
		return Offering{}, false
	}
	idx, ok := c.index[key]
	if !ok {
		return Offering{}, false
	}
	return c.offerings[idx], true
}

// Offerings returns a copy of the catalog in insertion order.
func (c *Catalog) Offerings() []Offering {
	if c == nil {
		return nil
	}
	out := make([]Offering, len(c.offerings))
	copy(out, c.offerings)
	return out
}

// Len returns the number of offerings.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.offerings)
}

// Units sums credit units over keys; keys missing from the catalog count zero.
func (c *Catalog) Units(keys []Key) float64 {
	var total float64
	for _, key := range keys {
		if offering, ok := c.Lookup(key); ok {
			total += offering.Units
		}
	}
	return total
}
