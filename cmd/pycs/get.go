package main

import (
	"fmt"

	"github.com/Rizhiy/pycs"
	"github.com/Rizhiy/pycs/encode"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: get requires a config path and at least one file", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid query \"\"", cli.ErrUsage)
	}
	segs, err := pycs.ParsePath(path)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	tree, err := buildTree(&cfg.patchOpts, args[1:])
	if err != nil {
		return err
	}
	v, err := tree.Get(segs...)
	if err != nil {
		return err
	}
	if child, ok := v.(*pycs.Node); ok {
		return encode.Encode(child, cc.Out, cfg.encOpts(cc.Out)...)
	}
	_, err = fmt.Fprintf(cc.Out, "%v\n", v)
	return err
}
