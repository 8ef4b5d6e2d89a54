package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Rizhiy/pycs/encode"
	"github.com/Rizhiy/pycs/loader"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	J     bool `cli:"name=j aliases=json desc='output in json'"`
	Y     bool `cli:"name=y aliases=yaml desc='output in yaml (default)'"`
	Color bool `cli:"name=color desc='encode with color'"`

	OutFormat *encode.Format

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**encode.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := encode.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var fmat encode.Format
	switch {
	case cfg.Y:
		fmat = encode.YAMLFormat
	case cfg.J:
		fmat = encode.JSONFormat
	}
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmat),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// patchOpts are the override documents shared by the tree-building
// subcommands: repeated -set path=value args and -p merge-patch
// files, combined in order on the instance tier.
type patchOpts struct {
	patches [][]byte
}

func (p *patchOpts) setOpt() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := loader.SetPatch(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		p.patches = append(p.patches, d)
		return 0, nil
	}
}

func (p *patchOpts) patchFileOpt() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := os.ReadFile(a)
		if err != nil {
			return nil, err
		}
		p.patches = append(p.patches, d)
		return 0, nil
	}
}

func (p *patchOpts) overlays() ([]*loader.Overlay, error) {
	if len(p.patches) == 0 {
		return nil, nil
	}
	combined, err := loader.CombinePatches(p.patches...)
	if err != nil {
		return nil, err
	}
	ov, err := loader.PatchOverlay(combined)
	if err != nil {
		return nil, err
	}
	return []*loader.Overlay{ov}, nil
}

type LoadConfig struct {
	*MainConfig
	patchOpts

	Load *cli.Command
}

type GetConfig struct {
	*MainConfig
	patchOpts

	Get *cli.Command
}

type OutDirConfig struct {
	*MainConfig
	patchOpts

	Path string `cli:"name=at desc='path of the output directory leaf'"`

	OutDir *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}
