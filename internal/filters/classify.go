package filters

import "sort"

// Summary reports which fields of a Bag are active
type Summary struct {
	Count        int      `json:"count"`
	HasActive    bool     `json:"hasActive"`
	ActiveFields []string `json:"activeFields"`
}

// IsActive reports whether v represents a user-applied filter
func IsActive(v Value) bool {
	switch val := v.(type) {
	case nil, Empty:
		return false
	case Text:
		return val != ""
	case DateRange:
		return val.From != "" || val.To != ""
	case MinMax:
		return val.Min != "" || val.Max != ""
	case List:
		return len(val.Items) > 0
	default:
		return false
	}
}

// CountActive returns the number of active fields in b
func CountActive(b Bag) int {
	count := 0
	for _, v := range b {
		if IsActive(v) {
			count++
		}
	}
	return count
}

// HasActive reports whether any field in b is active
func HasActive(b Bag) bool {
	return CountActive(b) > 0
}

// ActiveFields returns the sorted names of the active fields in b
func ActiveFields(b Bag) []string {
	fields := make([]string, 0, len(b))
	for name, v := range b {
		if IsActive(v) {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)
	return fields
}

// Summarize classifies every field of b
func Summarize(b Bag) Summary {
	return Summary{
		Count:        CountActive(b),
		HasActive:    HasActive(b),
		ActiveFields: ActiveFields(b),
	}
}
