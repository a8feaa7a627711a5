package domain

// RoomStatus is the availability state of a room.
type RoomStatus string

const (
	RoomAvailable RoomStatus = "available"
	RoomOccupied  RoomStatus = "occupied"
)

// Room is a reservable physical space. Rooms are owned by the room registry
// and mutated only through it.
type Room struct {
	ID       int64      `json:"id"`
	Area     string     `json:"area"`
	Code     string     `json:"code"`
	Capacity int64      `json:"capacity"`
	Location string     `json:"location"`
	Status   RoomStatus `json:"status"`
}

// CreateRoomRequest carries the administrative add operation. Status is not
// accepted from the caller; new rooms always start available.
type CreateRoomRequest struct {
	Area     string `json:"area"`
	Code     string `json:"code"`
	Capacity int64  `json:"capacity"`
	Location string `json:"location"`
}
