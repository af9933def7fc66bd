package lesson

// Plan holds the free-text pedagogical detail attached to one schedule
// block. At most one plan exists per block.
type Plan struct {
	BlockID    string `json:"blockId"`
	Objective  string `json:"objective"`
	Materials  string `json:"materials"`
	Activities string `json:"activities"`
	Notes      string `json:"notes"`
}

// Template is a named, reusable bundle of plan fields. Applying one only
// pre-fills an editor; nothing is persisted until the plan is saved.
type Template struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Objective  string `json:"objective"`
	Materials  string `json:"materials"`
	Activities string `json:"activities"`
	Notes      string `json:"notes"`
}
