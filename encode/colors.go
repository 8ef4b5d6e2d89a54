package encode

import (
	"strings"

	"github.com/Rizhiy/pycs/typedesc"

	"github.com/fatih/color"
)

type Colorable struct {
	Kind typedesc.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range typedesc.Kinds() {
		able := Colorable{
			Kind: k,
			Attr: FieldColor,
		}
		colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Kind = typedesc.InvalidKind
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Kind = typedesc.BoolKind
	colors.Map[able] = color.CyanString

	able.Kind = typedesc.IntKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Kind = typedesc.FloatKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Kind = typedesc.StringKind
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Kind = typedesc.ListKind
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()

	able.Kind = typedesc.ClassKind
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func NoColors() *Colors {
	return &Colors{Default: colorDefault, Map: map[Colorable]func(string, ...any) string{}}
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k typedesc.Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k typedesc.Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
