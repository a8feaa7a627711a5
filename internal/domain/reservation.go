package domain

import (
	"time"
)

// MinSeparationMinutes is the minimum wall-clock distance between two live
// reservations on the same room. Exactly 30 minutes apart is acceptable.
const MinSeparationMinutes = 30

// Reservation is a booked wall-clock slot against a room. The scheduled time
// has no date component: the system books recurring daily slots. The room
// code is a snapshot taken at booking time and is not re-synced if the room
// later changes. Reservations are never updated after creation.
type Reservation struct {
	ID            int64      `json:"id"`
	RoomID        int64      `json:"room_id"`
	Responsible   string     `json:"responsible"`
	RoomCode      string     `json:"room_code"`
	ScheduledTime string     `json:"scheduled_time"`
	Status        RoomStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreateReservationRequest is the booking request body.
type CreateReservationRequest struct {
	RoomID        int64  `json:"room_id"`
	Responsible   string `json:"responsible"`
	ScheduledTime string `json:"scheduled_time"`
}

// ParseScheduledTime parses an HH:mm wall-clock value into minutes since
// midnight. Anything else is ErrInvalidTimeFormat.
func ParseScheduledTime(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinuteDistance is the absolute wall-clock difference between two times in
// minutes. Deliberately not day-wrap aware: 23:50 vs 00:10 is 580 minutes,
// not 20. Load-bearing behavior, do not "fix".
func MinuteDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d
}
