package models

// Center is a TIMP branch building offering scheduled activities.
type Center struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// Activity is a recurring class type offered by a center.
type Activity struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Admission is one upstream-reported occurrence of an activity.
// Optional upstream fields are pointers so normalization can tell absent
// from empty.
type Admission struct {
	ActivityUUID     string  `json:"activity_uuid"`
	StartingAt       string  `json:"starting_at"`
	EndingAt         string  `json:"ending_at"`
	ProfessionalName *string `json:"professional_name,omitempty"`
	RoomName         *string `json:"room_name,omitempty"`
	Status           *string `json:"status,omitempty"`
	Capacity         int     `json:"capacity"`
	BookingsCount    int     `json:"bookings_count"`
}
