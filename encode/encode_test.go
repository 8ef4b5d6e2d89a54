package encode

import (
	"strings"
	"testing"

	"github.com/Rizhiy/pycs"
	"github.com/Rizhiy/pycs/typedesc"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func sampleTree(t *testing.T) *pycs.Node {
	t.Helper()
	n := pycs.NewNode()
	for _, set := range []struct {
		path  []string
		value any
	}{
		{[]string{"NAME"}, "run one"},
		{[]string{"DICT", "FOO"}, "bar"},
		{[]string{"DICT", "INT"}, 2},
		{[]string{"DICT", "RATE"}, 0.5},
		{[]string{"FLAGS"}, []any{1, "two", true}},
		{[]string{"ON"}, true},
	} {
		if err := n.Override(set.path, set.value); err != nil {
			t.Fatal(err)
		}
	}
	return n
}

func TestEncodeYAML(t *testing.T) {
	want := `NAME: run one
DICT:
  FOO: bar
  INT: 2
  RATE: 0.5
FLAGS: [1, two, true]
ON: true
`
	if diff := cmp.Diff(want, MustString(sampleTree(t))); diff != "" {
		t.Errorf("yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeJSON(t *testing.T) {
	var b strings.Builder
	if err := Encode(sampleTree(t), &b, EncodeFormat(JSONFormat)); err != nil {
		t.Fatal(err)
	}
	want := `{
  "NAME": "run one",
  "DICT": {
    "FOO": "bar",
    "INT": 2,
    "RATE": 0.5
  },
  "FLAGS": [1, "two", true],
  "ON": true
}
`
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeUnsetLeafIsNull(t *testing.T) {
	n := pycs.NewNode()
	if err := n.Set("MAYBE", pycs.NewLeaf(typedesc.String())); err != nil {
		t.Fatal(err)
	}
	if got := MustString(n); got != "MAYBE: null\n" {
		t.Errorf("yaml: got %q", got)
	}
	var b strings.Builder
	if err := Encode(n, &b, EncodeFormat(JSONFormat)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), `"MAYBE": null`) {
		t.Errorf("json: got %q", b.String())
	}
}

func TestEncodeEmptyNode(t *testing.T) {
	n := pycs.NewNode()
	if got := MustString(n); got != "{}\n" {
		t.Errorf("empty root: got %q", got)
	}
	if err := n.Set("EMPTY", pycs.NewNode()); err != nil {
		t.Fatal(err)
	}
	if got := MustString(n); got != "EMPTY: {}\n" {
		t.Errorf("empty child: got %q", got)
	}
}

func TestYAMLQuoting(t *testing.T) {
	n := pycs.NewNode()
	for _, set := range []struct {
		key   string
		value string
	}{
		{"AMBIG", "true"},
		{"NUMERIC", "3.14"},
		{"COLONED", "a: b"},
		{"PLAIN", "plain"},
	} {
		if err := n.Set(set.key, set.value); err != nil {
			t.Fatal(err)
		}
	}
	want := `AMBIG: "true"
NUMERIC: "3.14"
COLONED: "a: b"
PLAIN: plain
`
	if diff := cmp.Diff(want, MustString(n)); diff != "" {
		t.Errorf("quoting mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFormat(t *testing.T) {
	for _, tst := range []struct {
		in   string
		want Format
		err  bool
	}{
		{in: "yaml", want: YAMLFormat},
		{in: "y", want: YAMLFormat},
		{in: "json", want: JSONFormat},
		{in: "j", want: JSONFormat},
		{in: "toml", err: true},
	} {
		f, err := ParseFormat(tst.in)
		if tst.err {
			if err == nil {
				t.Errorf("%q: expected error", tst.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tst.in, err)
			continue
		}
		if f != tst.want {
			t.Errorf("%q: got %v, want %v", tst.in, f, tst.want)
		}
	}
}

func TestColoredOutputWrapsText(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = noColor }()

	n := pycs.NewNode()
	if err := n.Set("A", 1); err != nil {
		t.Fatal(err)
	}
	var plain, colored strings.Builder
	if err := Encode(n, &plain); err != nil {
		t.Fatal(err)
	}
	if err := Encode(n, &colored, EncodeColors(NewColors())); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(colored.String(), "A") || !strings.Contains(colored.String(), "1") {
		t.Error("colored output should still carry the text")
	}
	if colored.String() == plain.String() {
		t.Error("colored output should differ from plain output")
	}
}
