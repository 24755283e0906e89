package verilog

import (
	"reflect"
	"testing"

	"github.com/dd0wney/glsgraph/pkg/model"
)

func TestParseDeclaration(t *testing.T) {
	tests := []struct {
		line     string
		expected []string
	}{
		{"  wire n1;", []string{"n1"}},
		{"input SAMPLE;", []string{"SAMPLE"}},
		{"output [7:0] DOUT;", []string{"DOUT"}},
		{"wire [3:0] a, b ,c;", []string{"a", "b", "c"}},
		{"input wire clk; // system clock", []string{"clk"}},
		{"output reg [1:0] state;", []string{"state"}},
		{"wire[15:0]bus;", []string{"bus"}},
		{"  input a,", []string{"a"}},
		{"AND2 u1 (.A(n1), .Y(n2));", nil},
		{"wire_buf u2 (.A(x));", nil},
		{"assign a = b;", nil},
		{"// wire commented;", nil},
		{"wire a; wire b;", []string{"a", "b"}},
		{"input x; output [3:0] y, z;", []string{"x", "y", "z"}},
		{"wire n1 = n2;", []string{"n1"}},
		{"wire [1:0] p = {q, r}, s;", []string{"p", "s"}},
		{"wire mem [0:3];", []string{"mem"}},
		{`wire \bus[3] ;`, []string{`\bus[3]`}},
		{"wire a; AND2 u1 (.A(a));", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := ParseDeclaration(tt.line, nil)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseDeclaration(%q) = %v, want %v", tt.line, got, tt.expected)
			}
		})
	}
}

func TestEdgeScanner_SingleLine(t *testing.T) {
	var s EdgeScanner
	got := s.Scan("AND2 u1 (.A(n1), .Y(n2));", nil)

	want := []model.Edge{
		{Src: "u1.A", Dst: "n1"},
		{Src: "u1.Y", Dst: "n2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan = %+v, want %+v", got, want)
	}
	if s.Instance() != "" {
		t.Errorf("instance %q still open after terminator", s.Instance())
	}
}

func TestEdgeScanner_PortsSpanLines(t *testing.T) {
	lines := []string{
		"  ND2D1BWP u_cell_3491 (\n",
		"    .A1(place_opt_HFSNET_2),\n",
		"    .A2(n42),\n",
		"    .ZN(net1966)\n",
		"  );\n",
	}

	var s EdgeScanner
	var got []model.Edge
	for i, line := range lines {
		got = s.Scan(line, got)
		if i < len(lines)-1 && s.Instance() != "u_cell_3491" {
			t.Fatalf("line %d: instance = %q, want u_cell_3491", i, s.Instance())
		}
	}

	want := []model.Edge{
		{Src: "u_cell_3491.A1", Dst: "place_opt_HFSNET_2"},
		{Src: "u_cell_3491.A2", Dst: "n42"},
		{Src: "u_cell_3491.ZN", Dst: "net1966"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("edges = %+v, want %+v", got, want)
	}
	if s.Instance() != "" {
		t.Error("instance should close at the terminator")
	}
}

func TestEdgeScanner_Assign(t *testing.T) {
	var s EdgeScanner
	got := s.Scan("  assign DOUT = n_out ;", nil)

	want := []model.Edge{{Src: "n_out", Dst: "DOUT"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan = %+v, want %+v", got, want)
	}
}

func TestEdgeScanner_SkipsUnconnectedAndConcatenations(t *testing.T) {
	var s EdgeScanner
	got := s.Scan("DFF u9 (.D(d), .Q(), .QN({a, b}), .CK(clk));", nil)

	want := []model.Edge{
		{Src: "u9.D", Dst: "d"},
		{Src: "u9.CK", Dst: "clk"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan = %+v, want %+v", got, want)
	}
}

func TestEdgeScanner_IgnoresKeywordsAndStrayPorts(t *testing.T) {
	var s EdgeScanner
	var got []model.Edge
	got = s.Scan("module top (A, B, Y);", got)
	got = s.Scan("  .A(n1),", got)

	if len(got) != 0 {
		t.Errorf("expected no edges outside an instance, got %+v", got)
	}
}

func TestEdgeScanner_EscapedInstance(t *testing.T) {
	var s EdgeScanner
	got := s.Scan(`INVD1 \u_core/u7  (.I(a), .ZN(b));`, nil)

	if len(got) != 2 || got[0].Src != `\u_core/u7.I` {
		t.Errorf("Scan = %+v", got)
	}
}

func TestEdgeScanner_SeveralInstancesOnOneLine(t *testing.T) {
	var s EdgeScanner
	got := s.Scan("AND2 u1 (.A(a), .Y(y1)); AND2 u2 (.A(b), .Y(y2));", nil)

	want := []model.Edge{
		{Src: "u1.A", Dst: "a"},
		{Src: "u1.Y", Dst: "y1"},
		{Src: "u2.A", Dst: "b"},
		{Src: "u2.Y", Dst: "y2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan = %+v, want %+v", got, want)
	}
	if s.Instance() != "" {
		t.Errorf("instance %q still open after terminator", s.Instance())
	}
}

func TestEdgeScanner_TerminatorThenNewInstance(t *testing.T) {
	var s EdgeScanner
	var got []model.Edge
	got = s.Scan("BUF u1 (.I(a),", got)
	got = s.Scan("  .Z(b)); INV u2 (.I(b),", got)
	if s.Instance() != "u2" {
		t.Fatalf("instance = %q, want u2", s.Instance())
	}
	got = s.Scan("  .ZN(c));", got)

	want := []model.Edge{
		{Src: "u1.I", Dst: "a"},
		{Src: "u1.Z", Dst: "b"},
		{Src: "u2.I", Dst: "b"},
		{Src: "u2.ZN", Dst: "c"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("edges = %+v, want %+v", got, want)
	}
}

func TestEdgeScanner_StrayPortsAfterTerminator(t *testing.T) {
	var s EdgeScanner
	got := s.Scan("AND2 u1 (.A(a)); .B(b)", nil)

	want := []model.Edge{{Src: "u1.A", Dst: "a"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan = %+v, want %+v", got, want)
	}
}

func TestEdgeScanner_SeveralAssigns(t *testing.T) {
	var s EdgeScanner
	got := s.Scan("assign a = b; assign c = d;", nil)

	want := []model.Edge{{Src: "b", Dst: "a"}, {Src: "d", Dst: "c"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan = %+v, want %+v", got, want)
	}
}
