package pycs

import (
	"fmt"
	"strings"
)

// ParsePath parses a $-rooted dotted path like $.DICT.FOO into its
// segments. The leading '$' may be omitted. Fields containing '.',
// '$', '[', ']' or quotes are written single-quoted, with \' escaping
// a quote.
func ParsePath(p string) ([]string, error) {
	if strings.HasPrefix(p, "$") {
		p = p[1:]
	}
	if p == "" {
		return nil, nil
	}
	if p[0] != '.' {
		p = "." + p
	}
	var segs []string
	for len(p) > 0 {
		if p[0] != '.' {
			return nil, fmt.Errorf("path: expected '.' at %q", p)
		}
		field, rest, err := parseField(p[1:])
		if err != nil {
			return nil, err
		}
		segs = append(segs, field)
		p = rest
	}
	return segs, nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("path: expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexByte(frag, '.')
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch c {
		case '\\':
			escaped = true
		case '\'':
			if !escaped {
				return string(res), frag[i+1:], nil
			}
			fallthrough
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("path: end of string scanning for \"'\"")
}

func pathField(f string) string {
	if f != "" && strings.IndexAny(f, "'.$[]") == -1 {
		return f
	}
	return "'" + strings.Replace(f, "'", "\\'", -1) + "'"
}

// PathString renders segments back into a $-rooted path.
func PathString(segs []string) string {
	var b strings.Builder
	b.WriteByte('$')
	for _, s := range segs {
		b.WriteByte('.')
		b.WriteString(pathField(s))
	}
	return b.String()
}

func childPath(n *Node, name string) string {
	return n.Path() + "." + pathField(name)
}
