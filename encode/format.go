package encode

import "fmt"

type Format int

const (
	YAMLFormat Format = iota
	JSONFormat
)

func (f Format) String() string {
	switch f {
	case YAMLFormat:
		return "yaml"
	case JSONFormat:
		return "json"
	}
	return "<unknown format>"
}

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"yaml": YAMLFormat,
		"y":    YAMLFormat,
		"json": JSONFormat,
		"j":    JSONFormat,
	}[v]
	if !ok {
		return 0, fmt.Errorf("unrecognized format %q", v)
	}
	return f, nil
}
