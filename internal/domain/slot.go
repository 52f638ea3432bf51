package domain

import (
	"errors"
	"fmt"

	"github.com/logoped-app/appointment-service/pkg/types"
)

// ErrInvalidCatalog возвращается при некорректных параметрах каталога слотов
var ErrInvalidCatalog = errors.New("domain: invalid slot catalog")

// SlotCatalog is the fixed ordered set of bookable time-of-day slots for a
// business day. Immutable once built; shared by value between components
type SlotCatalog struct {
	slots []types.TimeString
}

// NewSlotCatalog builds a catalog of slots starting at open time with a fixed
// step, such that every slot fits before the close time.
// 09:00-18:00 with a 30 minute step yields 18 slots 09:00..17:30
func NewSlotCatalog(open, close types.TimeString, stepMinutes int) (SlotCatalog, error) {
	if err := open.Validate(); err != nil {
		return SlotCatalog{}, fmt.Errorf("%w: open time: %v", ErrInvalidCatalog, err)
	}
	if err := close.Validate(); err != nil {
		return SlotCatalog{}, fmt.Errorf("%w: close time: %v", ErrInvalidCatalog, err)
	}
	if stepMinutes <= 0 {
		return SlotCatalog{}, fmt.Errorf("%w: step must be positive", ErrInvalidCatalog)
	}
	if !open.IsBefore(close) {
		return SlotCatalog{}, fmt.Errorf("%w: open time must be before close time", ErrInvalidCatalog)
	}

	slots := make([]types.TimeString, 0)
	current := open

	for current.IsBefore(close) {
		slotEnd, err := current.AddMinutes(stepMinutes)
		if err != nil {
			return SlotCatalog{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		if slotEnd.IsAfter(close) {
			break
		}

		slots = append(slots, current)
		current = slotEnd
	}

	if len(slots) == 0 {
		return SlotCatalog{}, fmt.Errorf("%w: no slots fit between %s and %s", ErrInvalidCatalog, open, close)
	}

	return SlotCatalog{slots: slots}, nil
}

// MustDefaultSlotCatalog returns the standard business-day catalog.
// Panics only on broken constants, so it is safe at package init time
func MustDefaultSlotCatalog() SlotCatalog {
	catalog, err := NewSlotCatalog(DefaultOpenTime, DefaultCloseTime, DefaultSlotDurationMinutes)
	if err != nil {
		panic(err)
	}
	return catalog
}

// Slots returns a copy of the ordered slot list
func (c SlotCatalog) Slots() []types.TimeString {
	out := make([]types.TimeString, len(c.slots))
	copy(out, c.slots)
	return out
}

// Size returns the number of slots in a full business day
func (c SlotCatalog) Size() int {
	return len(c.slots)
}

// Contains returns true if the given time is a valid catalog slot
func (c SlotCatalog) Contains(t types.TimeString) bool {
	for _, slot := range c.slots {
		if slot == t {
			return true
		}
	}
	return false
}
