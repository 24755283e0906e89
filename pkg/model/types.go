package model

import "strings"

// PinSeparator joins an instance name and a port name in netlist notation.
const PinSeparator = "."

// Node represents a uniquely named signal or pin in the netlist graph
type Node struct {
	Name string `json:"name"`
}

// Edge represents a directed connection carrying rise/fall propagation delay.
//
// Structural edges always carry a pin in Src and a net in Dst. Delay
// annotation relies on that: a delay record's sink pin is looked up in the
// Src column. Use PinEdge to build structural edges so the orientation stays
// in one place.
type Edge struct {
	Src       string  `json:"src"`
	Dst       string  `json:"dst"`
	DelayRise float64 `json:"delay_rise"`
	DelayFall float64 `json:"delay_fall"`
}

// Weight returns the delay used for critical path accumulation
func (e Edge) Weight() float64 {
	return max(e.DelayRise, e.DelayFall)
}

// Annotated reports whether the edge carries any delay
func (e Edge) Annotated() bool {
	return e.DelayRise != 0 || e.DelayFall != 0
}

// PinName joins an instance and a port into "<instance>.<port>"
func PinName(instance, port string) string {
	return instance + PinSeparator + port
}

// SplitPin splits "<instance>.<port>" at the last separator.
// ok is false when the name carries no separator.
func SplitPin(name string) (instance, port string, ok bool) {
	i := strings.LastIndex(name, PinSeparator)
	if i < 0 {
		return "", "", false
	}
	return name[:i], name[i+1:], true
}

// PinEdge builds the structural edge for one instance port connection
func PinEdge(instance, port, net string) Edge {
	return Edge{Src: PinName(instance, port), Dst: net}
}

// AssignEdge builds the structural edge for "assign lhs = rhs;".
// The driving side is rhs.
func AssignEdge(lhs, rhs string) Edge {
	return Edge{Src: rhs, Dst: lhs}
}

// DelayRecord builds a delay-bearing edge used as an update key
func DelayRecord(driver, sink string, rise, fall float64) Edge {
	return Edge{Src: driver, Dst: sink, DelayRise: rise, DelayFall: fall}
}

// TotalDelay sums Weight over a path
func TotalDelay(path []Edge) float64 {
	var total float64
	for _, e := range path {
		total += e.Weight()
	}
	return total
}
