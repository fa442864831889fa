package filters

import "time"

// Kind identifies which variant a Value holds
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindDateRange
	KindMinMax
	KindList
	KindUnrecognized
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindDateRange:
		return "dateRange"
	case KindMinMax:
		return "minMax"
	case KindList:
		return "list"
	default:
		return "unrecognized"
	}
}

// Value is a single filter field value. The set of implementations is closed.
type Value interface {
	Kind() Kind
	isValue()
}

// Bag maps filter field names to their current values
type Bag map[string]Value

// Empty is an unset filter field
type Empty struct{}

// Text is a free-text filter value
type Text string

// DateRange is a date interval. An unset bound is the empty string.
type DateRange struct {
	From string
	To   string
}

// MinMax is a numeric-as-text interval. An unset bound is the empty string.
type MinMax struct {
	Min string
	Max string
}

// List is a multi-select filter value
type List struct {
	Items []any
}

// Unrecognized holds any value that matched none of the known shapes
type Unrecognized struct {
	Raw any
}

func (Empty) Kind() Kind        { return KindEmpty }
func (Text) Kind() Kind         { return KindText }
func (DateRange) Kind() Kind    { return KindDateRange }
func (MinMax) Kind() Kind       { return KindMinMax }
func (List) Kind() Kind         { return KindList }
func (Unrecognized) Kind() Kind { return KindUnrecognized }

func (Empty) isValue()        {}
func (Text) isValue()         {}
func (DateRange) isValue()    {}
func (MinMax) isValue()       {}
func (List) isValue()         {}
func (Unrecognized) isValue() {}

const dateLayout = "2006-01-02"

// DateRangeOf builds a DateRange from times; a zero time leaves that bound unset
func DateRangeOf(from, to time.Time) DateRange {
	var r DateRange
	if !from.IsZero() {
		r.From = from.Format(dateLayout)
	}
	if !to.IsZero() {
		r.To = to.Format(dateLayout)
	}
	return r
}

// ListOf builds a List from the given items
func ListOf[T any](items ...T) List {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return List{Items: out}
}
