// Package naming reconciles hierarchical names between the delay file and
// the netlist.
//
// Delay files address pins by full hierarchical path ("TOP/blk/u_cell_42/ZN")
// while the flattened netlist names them "<instance>.<pin>" ("u_cell_42.ZN").
package naming

import "strings"

const (
	// HierarchySeparator is the default SDF hierarchy divider
	HierarchySeparator = "/"

	pinSegments = 2
)

// Normalize converts a hierarchical pin path into netlist notation by
// keeping the last two segments joined with ".". Both "/" and "." are
// treated as dividers. Inputs with fewer than two segments come back
// unchanged.
func Normalize(path string) string {
	converted := strings.ReplaceAll(path, HierarchySeparator, ".")
	parts := strings.Split(converted, ".")
	if len(parts) < pinSegments {
		return converted
	}
	return parts[len(parts)-2] + "." + parts[len(parts)-1]
}
