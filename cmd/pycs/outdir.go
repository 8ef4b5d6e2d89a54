package main

import (
	"fmt"

	"github.com/Rizhiy/pycs"

	"github.com/scott-cotton/cli"
)

func outDir(cfg *OutDirConfig, cc *cli.Context, args []string) error {
	args, err := cfg.OutDir.Parse(cc, args)
	if err != nil {
		cfg.OutDir.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: outdir requires at least one config file", cli.ErrUsage)
	}
	segs, err := pycs.ParsePath(cfg.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	tree, err := buildTree(&cfg.patchOpts, args)
	if err != nil {
		return err
	}
	v, err := tree.Get(segs...)
	if err != nil {
		return err
	}
	dir, ok := v.(string)
	if !ok {
		return fmt.Errorf("value at %s is %T, want a path string", cfg.Path, v)
	}
	_, err = fmt.Fprintln(cc.Out, dir)
	return err
}
