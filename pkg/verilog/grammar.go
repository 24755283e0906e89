package verilog

import (
	"regexp"
	"strings"

	"github.com/dd0wney/glsgraph/pkg/model"
)

const statementTerminator = ";"

var (
	declPattern     = regexp.MustCompile(`^\s*(?:input|output|inout|wire)\b\s*(?:(?:wire|reg)\b\s*)?(?:\[[^\]]*\]\s*)?(.*)`)
	instancePattern = regexp.MustCompile(`^\s*([A-Za-z_][\w$]*)\s+([A-Za-z_][\w$]*(?:\[\d+\])?|\\\S+)\s*\(`)
	portPattern     = regexp.MustCompile(`\.([\w$]+)\s*\(\s*([^()]*?)\s*\)`)
	assignPattern   = regexp.MustCompile(`^\s*assign\s+(.+?)\s*=\s*(.+?)\s*$`)
	blockComment    = regexp.MustCompile(`/\*.*?\*/`)
)

// keywords that look like "<celltype> <instance> (" but open no instance
var keywords = map[string]bool{
	"module": true, "macromodule": true, "primitive": true, "endmodule": true,
	"assign": true, "wire": true, "input": true, "output": true, "inout": true,
	"reg": true, "tri": true, "supply0": true, "supply1": true,
	"always": true, "initial": true, "function": true, "task": true,
	"parameter": true, "localparam": true, "defparam": true, "specify": true,
	"generate": true, "genvar": true, "for": true, "if": true, "case": true,
}

func stripComments(line string) string {
	if strings.Contains(line, "/*") {
		line = blockComment.ReplaceAllString(line, "")
	}
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return line
}

// ParseDeclaration appends every identifier declared on a wire/input/output
// line to names. A line may hold several declarations. Bus widths such as
// [7:0], unpacked array ranges and initializers are dropped. Lines that are
// not declarations leave names untouched.
func ParseDeclaration(line string, names []string) []string {
	for stmt := range strings.SplitSeq(stripComments(line), statementTerminator) {
		m := declPattern.FindStringSubmatch(stmt)
		if m == nil {
			continue
		}
		for _, ident := range splitTopLevel(m[1]) {
			if ident = declaredName(ident); ident != "" {
				names = append(names, ident)
			}
		}
	}
	return names
}

// splitTopLevel splits a declaration list at commas outside braces and
// parentheses, so initializers like {a, b} stay with their identifier.
func splitTopLevel(list string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range list {
		switch r {
		case '{', '(':
			depth++
		case '}', ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, list[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, list[start:])
}

// declaredName trims one declaration list entry down to its identifier.
// Escaped identifiers run to the first whitespace and are kept whole.
func declaredName(ident string) string {
	ident = strings.TrimSpace(ident)
	if strings.HasPrefix(ident, `\`) {
		return strings.Fields(ident)[0]
	}
	ident, _, _ = strings.Cut(ident, "=")
	ident, _, _ = strings.Cut(ident, "[")
	return strings.TrimSpace(ident)
}

// EdgeScanner extracts structural edges one line at a time. Its only state
// is the instance currently open, which lets port lists span lines until
// the statement terminator.
type EdgeScanner struct {
	instance string
}

// Instance returns the open instance name, or "" when none is open
func (s *EdgeScanner) Instance() string {
	return s.instance
}

// Scan appends the edges found on line to out. Each statement terminator
// on the line closes the open instance, so several statements may share a
// line.
func (s *EdgeScanner) Scan(line string, out []model.Edge) []model.Edge {
	line = stripComments(line)
	for {
		stmt, rest, terminated := strings.Cut(line, statementTerminator)
		out = s.scanStatement(stmt, terminated, out)
		if !terminated {
			return out
		}
		line = rest
	}
}

func (s *EdgeScanner) scanStatement(stmt string, terminated bool, out []model.Edge) []model.Edge {
	if m := assignPattern.FindStringSubmatch(stmt); m != nil {
		if terminated {
			out = append(out, model.AssignEdge(m[1], m[2]))
		}
	} else if m := instancePattern.FindStringSubmatch(stmt); m != nil && !keywords[m[1]] {
		s.instance = m[2]
	}

	if s.instance != "" {
		for _, m := range portPattern.FindAllStringSubmatch(stmt, -1) {
			net := m[2]
			if net == "" || strings.HasPrefix(net, "{") {
				continue
			}
			out = append(out, model.PinEdge(s.instance, m[1], net))
		}
	}

	if terminated {
		s.instance = ""
	}
	return out
}
