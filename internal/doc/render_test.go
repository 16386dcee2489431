package doc

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	list := func() *Doc {
		return Group(Concat(
			Text("["),
			Nest(Concat(SoftLine(), Text("x"), IfBreak(Text(","), nil))),
			SoftLine(),
			Text("]"),
		))
	}
	call := Group(Concat(
		Text("f("),
		Nest(Concat(SoftLine(), Text("x,"), Line(), Text("y"))),
		SoftLine(),
		Text(")"),
	))

	tests := []struct {
		name  string
		doc   *Doc
		width int
		want  string
	}{
		{"group flat", Group(Concat(Text("a"), Line(), Text("b"))), 10, "a b"},
		{"group broken", Group(Concat(Text("a"), Line(), Text("b"))), 2, "a\nb"},
		{"nest", call, 5, "f(\n    x,\n    y\n)"},
		{"nest fits", call, 20, "f(x, y)"},
		{"hard line breaks group", Group(Concat(Text("a"), Line(), Text("b"), HardLine(), Text("c"))), 100, "a\nb\nc"},
		{"hard line idempotent", Concat(Text("a"), HardLine(), HardLine(), Text("b")), 100, "a\nb"},
		{"blank lines collapse", Concat(Text("a"), BlankLine(), BlankLine(), HardLine(), Text("b")), 100, "a\n\nb"},
		{"blank line at start", Concat(BlankLine(), Text("a")), 100, "a"},
		{"if break flat", list(), 10, "[x]"},
		{"if break broken", list(), 2, "[\n    x,\n]"},
		{"line suffix", Concat(Text("a"), LineSuffix(Text(" // c")), BreakParent(), HardLine(), Text("b")), 100, "a // c\nb"},
		{"line suffix at end", Concat(Text("a"), LineSuffix(Text(" // c"))), 100, "a // c"},
		{
			"line suffix before more text breaks group",
			Group(Concat(Text("f("), Nest(Concat(SoftLine(), Text("a,"), LineSuffix(Text(" // c")), Line(), Text("b"))), SoftLine(), Text(")"))),
			100,
			"f(\n    a, // c\n    b\n)",
		},
		{
			"line suffix at group end stays flat",
			Concat(Group(Concat(Text("f("), Nest(Concat(SoftLine(), Text("a"))), SoftLine(), Text(")"), LineSuffix(Text(" // c")))), Text(";")),
			100,
			"f(a); // c",
		},
		{"trailing space trimmed", Concat(Text("a "), HardLine(), Text("b")), 100, "a\nb"},
		{
			"multi-line text verbatim",
			Concat(Text("{"), Nest(Concat(HardLine(), Text("s(\"a  \n  b\")"))), HardLine(), Text("}")),
			100,
			"{\n    s(\"a  \n  b\")\n}",
		},
		{"rest counts for fits", Concat(Group(Concat(Text("aaaa"), Line(), Text("bbbb"))), Text("cccc")), 12, "aaaa\nbbbbcccc"},
		{
			"pending indent counts for fits",
			Concat(Text("{"), Nest(Concat(HardLine(), Group(Concat(Text("aaa"), Line(), Text("bbb")))))),
			8,
			"{\n    aaa\n    bbb",
		},
		{"runes not bytes", Group(Concat(Text("ééé"), Line(), Text("b"))), 5, "ééé b"},
		{"empty", nil, 80, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.doc, tt.width).Text
			if got != tt.want {
				t.Fatalf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderRegions(t *testing.T) {
	d := Concat(
		Text("a"),
		HardLine(),
		Region(7, Concat(Text("fn x() {}"), LineSuffix(Text(" // c")), BreakParent())),
		HardLine(),
		Text("{"),
		Nest(Concat(HardLine(), Region(8, Text("y")))),
		HardLine(),
		Text("}"),
	)
	out := Render(d, 100)
	want := "a\nfn x() {} // c\n{\n    y\n}"
	if out.Text != want {
		t.Fatalf("text = %q, want %q", out.Text, want)
	}
	if len(out.Regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(out.Regions))
	}
	first, second := out.Regions[0], out.Regions[1]
	if first.ID != 7 || out.Text[first.Start:first.End] != "fn x() {} // c" || first.Indent != 0 {
		t.Errorf("first region = %+v (%q)", first, out.Text[first.Start:first.End])
	}
	if second.ID != 8 || out.Text[second.Start:second.End] != "    y" || second.Indent != 1 {
		t.Errorf("second region = %+v (%q)", second, out.Text[second.Start:second.End])
	}
}

func TestRenderDeterministic(t *testing.T) {
	build := func() *Doc {
		var parts []*Doc
		for i := range 50 {
			parts = append(parts, Group(Concat(Text("item"), Line(), Text(strings.Repeat("x", i)))))
		}
		return Join(HardLine(), parts)
	}
	a := Render(build(), 30).Text
	b := Render(build(), 30).Text
	if a != b {
		t.Fatal("rendering differs between runs")
	}
}

func TestRenderDeepNesting(t *testing.T) {
	var d *Doc = Text("x")
	depth := 10000
	for range depth {
		d = Group(Concat(Text("("), d, Text(")")))
	}
	out := Render(d, 100).Text
	if strings.Count(out, "(") != depth || strings.Count(out, ")") != depth {
		t.Fatal("delimiters lost")
	}
}

func TestJoinSkipsNil(t *testing.T) {
	d := Join(Text(", "), []*Doc{Text("a"), nil, Text("b")})
	if got := Render(d, 80).Text; got != "a, b" {
		t.Fatalf("Join = %q", got)
	}
}
