package domain

import "strconv"

// RoomType enumerates room categories.
type RoomType string

const (
	RoomTypeSuite    RoomType = "SUITE"
	RoomTypeStandard RoomType = "STANDARD"
	RoomTypeDeluxe   RoomType = "DELUXE"
)

// Room is static reference data. Rooms are never persisted or mutated;
// they exist to render the room map and compute per-room aggregates.
type Room struct {
	Number string   `json:"number"`
	Floor  int      `json:"floor"`
	Type   RoomType `json:"type"`
}

// Rooms returns the fixed catalog of 20 first-floor rooms, 101 through 120.
func Rooms() []Room {
	rooms := make([]Room, 0, 20)
	for i := 0; i < 20; i++ {
		roomType := RoomTypeStandard
		switch {
		case i%3 == 0:
			roomType = RoomTypeSuite
		case i%2 == 0:
			roomType = RoomTypeDeluxe
		}
		rooms = append(rooms, Room{
			Number: strconv.Itoa(101 + i),
			Floor:  1,
			Type:   roomType,
		})
	}
	return rooms
}

// Assets lists the asset categories a ticket can reference.
var Assets = []string{
	"Air Conditioning", "Plumbing", "Electrical", "TV/WiFi", "Furniture", "Locks", "Other",
}

// IssueTypes lists the reportable issue kinds.
var IssueTypes = []string{
	"Won't turn on", "Leaking", "Strange noise", "Broken/Damaged", "Dirty/Stained", "No signal", "Bad smell",
}
