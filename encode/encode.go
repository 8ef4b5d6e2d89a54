// Package encode renders config trees as YAML or JSON, optionally
// colored for terminals.
package encode

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Rizhiy/pycs"
	"github.com/Rizhiy/pycs/typedesc"
)

func Encode(n *pycs.Node, w io.Writer, opts ...EncodeOption) error {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Colors == nil {
		cfg.Colors = NoColors()
	}
	bw := bufio.NewWriter(w)
	var err error
	switch cfg.Format {
	case JSONFormat:
		err = encodeJSON(bw, n, cfg, 0)
		bw.WriteByte('\n')
	default:
		err = encodeYAML(bw, n, cfg, 0)
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

// MustString renders n as YAML, panicking on write errors. Handy in
// tests and diffs.
func MustString(n *pycs.Node) string {
	var b strings.Builder
	if err := Encode(n, &b); err != nil {
		panic(err)
	}
	return b.String()
}

func encodeYAML(w *bufio.Writer, n *pycs.Node, cfg *Config, depth int) error {
	if n.Len() == 0 {
		_, err := w.WriteString("{}\n")
		return err
	}
	indent := strings.Repeat("  ", depth)
	for _, key := range n.Keys() {
		e, _ := n.Entry(key)
		switch x := e.(type) {
		case *pycs.Node:
			w.WriteString(indent)
			w.WriteString(cfg.Colors.Color(typedesc.InvalidKind, FieldColor, yamlString(key)))
			w.WriteString(cfg.Colors.Color(typedesc.InvalidKind, SepColor, ":"))
			if x.Len() == 0 {
				w.WriteString(" {}\n")
				continue
			}
			w.WriteByte('\n')
			if err := encodeYAML(w, x, cfg, depth+1); err != nil {
				return err
			}
		case *pycs.Leaf:
			text, kind := valueText(x.Value())
			w.WriteString(indent)
			w.WriteString(cfg.Colors.Color(kind, FieldColor, yamlString(key)))
			w.WriteString(cfg.Colors.Color(kind, SepColor, ":"))
			w.WriteByte(' ')
			w.WriteString(cfg.Colors.Color(kind, ValueColor, text))
			if _, err := w.WriteString("\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeJSON(w *bufio.Writer, n *pycs.Node, cfg *Config, depth int) error {
	if n.Len() == 0 {
		_, err := w.WriteString("{}")
		return err
	}
	indent := strings.Repeat("  ", depth+1)
	w.WriteString("{\n")
	keys := n.Keys()
	for i, key := range keys {
		e, _ := n.Entry(key)
		w.WriteString(indent)
		w.WriteString(strconv.Quote(key))
		w.WriteString(": ")
		switch x := e.(type) {
		case *pycs.Node:
			if err := encodeJSON(w, x, cfg, depth+1); err != nil {
				return err
			}
		case *pycs.Leaf:
			w.WriteString(jsonValue(x.Value()))
		}
		if i < len(keys)-1 {
			w.WriteByte(',')
		}
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
	}
	w.WriteString(strings.Repeat("  ", depth))
	_, err := w.WriteString("}")
	return err
}

// valueText renders a leaf value as a YAML scalar and reports the
// kind used for coloring. An unset leaf renders as null.
func valueText(v any) (string, typedesc.Kind) {
	switch x := v.(type) {
	case nil:
		return "null", typedesc.InvalidKind
	case bool:
		return strconv.FormatBool(x), typedesc.BoolKind
	case int:
		return strconv.Itoa(x), typedesc.IntKind
	case int64:
		return strconv.FormatInt(x, 10), typedesc.IntKind
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), typedesc.FloatKind
	case string:
		return yamlString(x), typedesc.StringKind
	case []any:
		elems := make([]string, len(x))
		for i, e := range x {
			elems[i], _ = valueText(e)
		}
		return "[" + strings.Join(elems, ", ") + "]", typedesc.ListKind
	case *typedesc.Class:
		return x.Name, typedesc.ClassKind
	case typedesc.Object:
		return fmt.Sprintf("%v", x), typedesc.ClassKind
	default:
		return fmt.Sprintf("%v", x), typedesc.InvalidKind
	}
}

func jsonValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return strconv.Quote(x)
	case []any:
		elems := make([]string, len(x))
		for i, e := range x {
			elems[i] = jsonValue(e)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case *typedesc.Class:
		return strconv.Quote(x.Name)
	case typedesc.Object:
		return strconv.Quote(fmt.Sprintf("%v", x))
	default:
		return strconv.Quote(fmt.Sprintf("%v", x))
	}
}

func yamlString(s string) string {
	if !yamlNeedsQuote(s) {
		return s
	}
	return strconv.Quote(s)
}

func yamlNeedsQuote(s string) bool {
	if s == "" {
		return true
	}
	switch s {
	case "null", "true", "false", "yes", "no", "~":
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	if strings.TrimSpace(s) != s {
		return true
	}
	return strings.ContainsAny(s, ":#{}[]'\"\n&*|>%@`!,")
}
