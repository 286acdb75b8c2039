package mealplan

import "strings"

// Slot identifies a named meal period within a day. The slot participates in
// the calendar uniqueness key alongside the user and the scheduled date.
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
	SlotSnack     Slot = "snack"
)

// slotOrder gives the stable display ordering used by calendar listings.
var slotOrder = map[Slot]int{
	SlotBreakfast: 0,
	SlotLunch:     1,
	SlotDinner:    2,
	SlotSnack:     3,
}

// ParseSlot parses a slot value, case-insensitively.
func ParseSlot(s string) (Slot, error) {
	slot := Slot(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := slotOrder[slot]; !ok {
		return "", ErrUnknownSlot
	}
	return slot, nil
}

// Order returns the slot's position in the stable day ordering
// (breakfast, lunch, dinner, snack). Unknown slots sort last.
func (s Slot) Order() int {
	if rank, ok := slotOrder[s]; ok {
		return rank
	}
	return len(slotOrder)
}

// IsValid reports whether the slot is one of the recognized meal periods.
func (s Slot) IsValid() bool {
	_, ok := slotOrder[s]
	return ok
}

// AllSlots returns the recognized slots in day order.
func AllSlots() []Slot {
	return []Slot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}
}
