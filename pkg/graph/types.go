package graph

import "fmt"

// Sign is the polarity of a relationship: +1 friendly, -1 hostile.
type Sign int8

const (
	Negative Sign = -1
	Positive Sign = 1
)

// String returns "+" or "-".
func (s Sign) String() string {
	if s == Negative {
		return "-"
	}
	return "+"
}

// Flip returns the opposite polarity.
func (s Sign) Flip() Sign {
	if s == Negative {
		return Positive
	}
	return Negative
}

// Int returns the sign as +1 or -1.
func (s Sign) Int() int {
	if s == Negative {
		return -1
	}
	return 1
}

// MarshalText encodes the sign as "+" or "-".
func (s Sign) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts anything ParseSign understands as an explicit sign.
func (s *Sign) UnmarshalText(text []byte) error {
	sign, ok := signOf(string(text))
	if !ok {
		return fmt.Errorf("invalid sign %q", text)
	}
	*s = sign
	return nil
}

// Node is a vertex of a snapshot. Label is presentational only.
type Node struct {
	ID    string
	Label string
}

// Edge is a relationship between two nodes. Weight and Sign are independent:
// weight drives path costs, sign drives balance reasoning.
type Edge struct {
	ID       string
	Source   string
	Target   string
	Weight   float64
	Directed bool
	Sign     Sign
}

// IsSelfLoop reports whether the edge starts and ends at the same node.
func (e Edge) IsSelfLoop() bool {
	return e.Source == e.Target
}

// String renders the edge as "A-B(+)" or "A->B(-)".
func (e Edge) String() string {
	arrow := "-"
	if e.Directed {
		arrow = "->"
	}
	return fmt.Sprintf("%s%s%s(%s)", e.Source, arrow, e.Target, e.Sign)
}

// Arc is one step along an edge: the edge index used and the node index at
// the far end. For In views the far end is the node the step comes from.
type Arc struct {
	Edge int
	To   int
}
