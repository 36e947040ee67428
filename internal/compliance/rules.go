package compliance

// SeededRules returns the built-in building code rules. These are the
// deterministic baseline; rules extracted from code documents would be
// appended here.
func SeededRules() []Rule {
	return []Rule{
		{
			ID:          "R001",
			Name:        "Minimum bedroom area",
			RuleType:    RuleAreaMin,
			ElementType: ElementRoom,
			MinValue:    9.5, // m²
			CodeRef:     "NBC Section 8.2.1 - Minimum habitable room area",
		},
		{
			ID:          "R002",
			Name:        "Minimum living room area",
			RuleType:    RuleAreaMin,
			ElementType: ElementRoom,
			MinValue:    12.0, // m²
			CodeRef:     "NBC Section 8.2.2 - Minimum living area",
		},
		{
			ID:          "D001",
			Name:        "Minimum accessible door width",
			RuleType:    RuleWidthMin,
			ElementType: ElementDoor,
			MinValue:    800.0, // mm
			CodeRef:     "NBC Section 8.3.2 - Accessible door clear width",
		},
		{
			ID:          "D002",
			Name:        "Minimum standard door width",
			RuleType:    RuleWidthMin,
			ElementType: ElementDoor,
			MinValue:    700.0, // mm
			CodeRef:     "NBC Section 8.3.1 - Standard door clear width",
		},
	}
}

// RulesForElementType filters rules to those applying to elementType.
func RulesForElementType(rules []Rule, elementType string) []Rule {
	filtered := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.ElementType == elementType {
			filtered = append(filtered, rule)
		}
	}
	return filtered
}

// RuleByID returns the rule with the given ID and whether it exists.
func RuleByID(rules []Rule, id string) (Rule, bool) {
	for _, rule := range rules {
		if rule.ID == id {
			return rule, true
		}
	}
	return Rule{}, false
}
