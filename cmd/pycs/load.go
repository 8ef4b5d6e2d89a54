package main

import (
	"fmt"

	"github.com/Rizhiy/pycs"
	"github.com/Rizhiy/pycs/encode"
	"github.com/Rizhiy/pycs/loader"

	"github.com/scott-cotton/cli"
)

func load(cfg *LoadConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Load.Parse(cc, args)
	if err != nil {
		cfg.Load.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: load requires at least one config file", cli.ErrUsage)
	}
	tree, err := buildTree(&cfg.patchOpts, args)
	if err != nil {
		return err
	}
	return encode.Encode(tree, cc.Out, cfg.encOpts(cc.Out)...)
}

func buildTree(p *patchOpts, files []string) (*pycs.Node, error) {
	extra, err := p.overlays()
	if err != nil {
		return nil, err
	}
	tree, err := loader.BuildFiles(nil, files, extra...)
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	return tree, nil
}
