package main

import (
	"fmt"
	"strings"

	"github.com/Rizhiy/pycs/encode"

	"github.com/scott-cotton/cli"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var aFiles, bFiles []string
	for i, arg := range args {
		if arg == "--" {
			aFiles, bFiles = args[:i], args[i+1:]
			break
		}
	}
	if len(aFiles) == 0 || len(bFiles) == 0 {
		return fmt.Errorf("%w: diff requires two file lists separated by --", cli.ErrUsage)
	}
	aTree, err := buildTree(&patchOpts{}, aFiles)
	if err != nil {
		return err
	}
	bTree, err := buildTree(&patchOpts{}, bFiles)
	if err != nil {
		return err
	}
	a := encode.MustString(aTree)
	b := encode.MustString(bTree)

	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	changed := false
	for i := range diffs {
		d := &diffs[i]
		switch d.Type {
		case diffpatch.DiffInsert:
			changed = true
			writeLines(cc, "+", color.GreenString, d.Text)
		case diffpatch.DiffDelete:
			changed = true
			writeLines(cc, "-", color.RedString, d.Text)
		case diffpatch.DiffEqual:
			writeLines(cc, " ", nil, d.Text)
		}
	}
	if changed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func writeLines(cc *cli.Context, prefix string, paint func(string, ...any) string, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		out := prefix + " " + line
		if paint != nil {
			out = paint("%s", out)
		}
		fmt.Fprintln(cc.Out, out)
	}
}
