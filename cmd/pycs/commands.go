package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "O",
		Aliases:     []string{"ofmt"},
		Description: "output format: yaml/y, json/j",
		Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
	})

	return cli.NewCommandAt(&cfg.Main, "pycs").
		WithSynopsis("pycs [opts] command [opts]").
		WithDescription("pycs is a tool for working with layered experiment configs.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fmt.Errorf("%w: expected a command", cli.ErrUsage)
		}).
		WithSubs(
			LoadCommand(cfg),
			GetCommand(cfg),
			OutDirCommand(cfg),
			DiffCommand(cfg))
}

func LoadCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LoadConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, patchCmdOpts(&cfg.patchOpts)...)
	return cli.NewCommandAt(&cfg.Load, "load").
		WithAliases("l").
		WithSynopsis("load [-set path=val ...] [-p patchfile ...] base.yaml [tier2.yaml ...]").
		WithDescription(loadDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return load(cfg, cc, args)
		})
}

const loadDescription = `load builds a tier chain from config files and renders the result.

The first file seeds the root tier: every value declares a required
leaf of the value's type. Each following file is applied to a clone of
the previous tier; the last file becomes the instance tier, whose
schema is locked when loaded. Extra overrides from -set and -p are
applied to the instance tier before loading.`

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, patchCmdOpts(&cfg.patchOpts)...)
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <configpath> base.yaml [tier2.yaml ...]").
		WithDescription("get a value from a loaded config").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func OutDirCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &OutDirConfig{MainConfig: mainCfg, Path: "$.OUT_DIR"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, patchCmdOpts(&cfg.patchOpts)...)
	return cli.NewCommandAt(&cfg.OutDir, "outdir").
		WithSynopsis("outdir [-at path] base.yaml [tier2.yaml ...]").
		WithDescription("load a config and print its resolved output directory").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return outDir(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff a.yaml [tiers...] -- b.yaml [tiers...]").
		WithDescription("diff the rendered results of two tier chains").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func patchCmdOpts(p *patchOpts) []*cli.Opt {
	return []*cli.Opt{
		{
			Name:        "set",
			Description: "override path=value on the instance tier",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(p.setOpt()), "(path=value)"),
		},
		{
			Name:        "p",
			Aliases:     []string{"patch"},
			Description: "JSON merge-patch file applied to the instance tier",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(p.patchFileOpt()), "(filepath)"),
		},
	}
}
