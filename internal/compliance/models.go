// Package compliance checks a building design (rooms and doors) against
// numeric building code rules.
package compliance

// Element types a rule can apply to.
const (
	ElementRoom = "room"
	ElementDoor = "door"
)

// Rule types determining how a rule is checked. Free-text rules carry
// prose in RuleText and are skipped by the numeric checkers.
const (
	RuleAreaMin  = "area_min"
	RuleWidthMin = "width_min"
	RuleFreeText = "text"
)

// Room represents a room in the building design, one row of rooms.csv.
type Room struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Level  int     `json:"level"`
	AreaM2 float64 `json:"area_m2"`
}

// Door represents a door in the building design, one row of doors.csv.
// Clear width is in millimeters per building code convention, even though
// areas use square meters.
type Door struct {
	ID             string  `json:"id"`
	LocationRoomID string  `json:"location_room_id"`
	ClearWidthMM   float64 `json:"clear_width_mm"`
	Level          int     `json:"level"`
}

// Rule represents one building code requirement.
type Rule struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	RuleType    string  `json:"rule_type"`
	ElementType string  `json:"element_type"`
	MinValue    float64 `json:"min_value"`
	RuleText    string  `json:"rule_text,omitempty"`
	CodeRef     string  `json:"code_ref,omitempty"`
}

// Issue represents one compliance violation.
type Issue struct {
	ElementID   string `json:"element_id"`
	ElementType string `json:"element_type"`
	RuleID      string `json:"rule_id"`
	Message     string `json:"message"`
	CodeRef     string `json:"code_ref,omitempty"`
	Severity    string `json:"severity"`
}

// Summary aggregates issues for reporting.
type Summary struct {
	Total         int            `json:"total"`
	ByElementType map[string]int `json:"by_element_type"`
	BySeverity    map[string]int `json:"by_severity"`
}
