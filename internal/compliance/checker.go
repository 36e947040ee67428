package compliance

import "fmt"

// CheckRoom checks a single room against the room rules in rules.
func CheckRoom(room Room, rules []Rule) []Issue {
	var issues []Issue
	for _, rule := range RulesForElementType(rules, ElementRoom) {
		if rule.RuleType != RuleAreaMin || rule.MinValue <= 0 {
			continue
		}
		if room.AreaM2 < rule.MinValue {
			issues = append(issues, Issue{
				ElementID:   room.ID,
				ElementType: ElementRoom,
				RuleID:      rule.ID,
				Message: fmt.Sprintf("Room '%s' (%s) has area %.2f m², but minimum required is %.2f m² (%s)",
					room.Name, room.ID, room.AreaM2, rule.MinValue, rule.Name),
				CodeRef:  rule.CodeRef,
				Severity: "error",
			})
		}
	}
	return issues
}

// CheckDoor checks a single door against the door rules in rules.
func CheckDoor(door Door, rules []Rule) []Issue {
	var issues []Issue
	for _, rule := range RulesForElementType(rules, ElementDoor) {
		if rule.RuleType != RuleWidthMin || rule.MinValue <= 0 {
			continue
		}
		if door.ClearWidthMM < rule.MinValue {
			issues = append(issues, Issue{
				ElementID:   door.ID,
				ElementType: ElementDoor,
				RuleID:      rule.ID,
				Message: fmt.Sprintf("Door '%s' has clear width %.0f mm, but minimum required is %.0f mm (%s)",
					door.ID, door.ClearWidthMM, rule.MinValue, rule.Name),
				CodeRef:  rule.CodeRef,
				Severity: "error",
			})
		}
	}
	return issues
}

// Check checks all rooms and doors against rules and returns every
// violation found. A nil rules slice uses the seeded rules.
func Check(rooms []Room, doors []Door, rules []Rule) []Issue {
	if rules == nil {
		rules = SeededRules()
	}

	var issues []Issue
	for _, room := range rooms {
		issues = append(issues, CheckRoom(room, rules)...)
	}
	for _, door := range doors {
		issues = append(issues, CheckDoor(door, rules)...)
	}
	return issues
}

// Summarize aggregates issues by element type and severity.
func Summarize(issues []Issue) Summary {
	summary := Summary{
		Total:         len(issues),
		ByElementType: map[string]int{ElementRoom: 0, ElementDoor: 0},
		BySeverity:    map[string]int{"error": 0, "warning": 0},
	}
	for _, issue := range issues {
		summary.ByElementType[issue.ElementType]++
		summary.BySeverity[issue.Severity]++
	}
	return summary
}
