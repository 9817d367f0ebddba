package queue

// BookingRequestedEvent is published when a new booking request is
// accepted by the store.  It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type BookingRequestedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	Name        string `json:"name"`
	Class       string `json:"class"`
	Date        string `json:"date"`
	TimeSlots   []int  `json:"times"`
	Status      string `json:"status"`
	RequestedAt string `json:"requested_at"`
}
