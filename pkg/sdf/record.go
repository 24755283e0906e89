package sdf

import (
	"regexp"
	"strconv"

	"github.com/dd0wney/glsgraph/pkg/model"
	"github.com/dd0wney/glsgraph/pkg/naming"
)

// interconnectPattern captures driver, sink and the value after the last
// "::" in each of the two delay groups.
var interconnectPattern = regexp.MustCompile(
	`^\(INTERCONNECT\s+([^\s()]+)\s+([^\s()]+)\s+` +
		`\([^()]*?::\s*([-+]?[\d.]+(?:[eE][-+]?\d+)?)\s*\)\s*` +
		`\([^()]*?::\s*([-+]?[\d.]+(?:[eE][-+]?\d+)?)\s*\)`,
)

// ParseInterconnect interprets a complete INTERCONNECT record. Both pin
// paths are normalized to netlist notation. ok is false for records that do
// not have the expected shape.
func ParseInterconnect(record string) (model.Edge, bool) {
	m := interconnectPattern.FindStringSubmatch(record)
	if m == nil {
		return model.Edge{}, false
	}

	rise, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return model.Edge{}, false
	}
	fall, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		return model.Edge{}, false
	}

	return model.DelayRecord(naming.Normalize(m[1]), naming.Normalize(m[2]), rise, fall), true
}
