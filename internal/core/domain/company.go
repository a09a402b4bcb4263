package domain

// Company is a business record pinned to a geographic position.
//
// Latitude/Longitude are the authoritative scalar coordinates; Location is
// the derived point geometry persisted alongside them and is always rebuilt
// from the scalars, never set independently.
type Company struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Industry  string  `json:"industry"`
	Address   *string `json:"address,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Location  Point   `json:"location"`
}

// CompanyEvent is the change notification published after a successful write.
type CompanyEvent struct {
	Action  string   `json:"action"` // "created" | "updated" | "deleted"
	ID      int64    `json:"id"`
	Company *Company `json:"company,omitempty"`
}
