package models

// ResolvedSlot is one entry of an availability resolution: a declared slot
// label with its derived booking flag.
type ResolvedSlot struct {
	Time     string `json:"time"`
	IsBooked bool   `json:"isBooked"`
}

// BookAppointmentRequest is the client booking payload.
type BookAppointmentRequest struct {
	CounselorID string `json:"counselorId" binding:"required"`
	Date        string `json:"date" binding:"required"`
	TimeSlot    string `json:"timeSlot" binding:"required"`
	Issue       string `json:"issue"`
}

// SetAvailabilityRequest carries a counselor's full desired availability.
// Replace semantics: any date omitted here is cleared.
type SetAvailabilityRequest struct {
	AvailabilityArray Availability `json:"availabilityArray" binding:"required"`
}

// UpdateStatusRequest is the counselor's status/notes/link update payload.
type UpdateStatusRequest struct {
	Status      string `json:"status"`
	Notes       string `json:"notes"`
	MeetingLink string `json:"meetingLink"`
}

// CompleteAppointmentRequest optionally attaches session notes on completion.
type CompleteAppointmentRequest struct {
	SessionNotes string `json:"sessionNotes"`
}

// CounselorStats aggregates the counselor dashboard KPIs.
type CounselorStats struct {
	TotalClients   int     `json:"totalClients"`
	TotalScheduled int     `json:"totalScheduled"`
	TotalCompleted int     `json:"totalCompleted"`
	TotalRevenue   float64 `json:"totalRevenue"`
}

// DailyActivity is one point of the dashboard's last-7-days series.
type DailyActivity struct {
	Name     string  `json:"name"` // short weekday, e.g. "Mon"
	Sessions int     `json:"sessions"`
	Revenue  float64 `json:"revenue"`
}
