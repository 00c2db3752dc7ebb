package models

// The three customer-facing inquiry slots. Actual jobs are only ever
// scheduled into the first one; the later slots exist for initial
// on-site assessment visits.
const (
	SlotEvening1 = "5:30 PM"
	SlotEvening2 = "6:30 PM"
	SlotEvening3 = "7:30 PM"

	// JobSlot is the single slot used for scheduled jobs.
	JobSlot = SlotEvening1
)

// Slots lists the defined inquiry slots in display order.
var Slots = []string{SlotEvening1, SlotEvening2, SlotEvening3}

// ValidSlot reports whether t is one of the defined slots.
func ValidSlot(t string) bool {
	for _, s := range Slots {
		if s == t {
			return true
		}
	}
	return false
}

// SlotState is the per-date entry of the availability index.
type SlotState struct {
	Date            string         `json:"date"`
	Blocked         bool           `json:"blocked"`
	ManualBlock     bool           `json:"manualBlock,omitempty"`
	FullDayJob      bool           `json:"fullDayJob"`
	JobBookingID    string         `json:"jobBookingId,omitempty"`
	WeekendOverride bool           `json:"weekendOverride,omitempty"`
	SlotCounts      map[string]int `json:"slotCounts"`
	// JobSlots maps a slot to the booking ID of the job scheduled in it.
	JobSlots map[string]string `json:"jobSlots,omitempty"`
}

// AvailabilityIndex maps "YYYY-MM-DD" dates to their slot state over a range.
type AvailabilityIndex map[string]SlotState

// State returns the entry for date, zero-valued if nothing occupies it.
func (idx AvailabilityIndex) State(date string) SlotState {
	if st, ok := idx[date]; ok {
		return st
	}
	return SlotState{Date: date}
}
