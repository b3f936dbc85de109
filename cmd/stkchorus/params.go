package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/stkchorus/dsp/effects/modulation"
	"github.com/cwbudde/stkchorus/internal/config"
)

func runParams(config.Config) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tSymbol\tName\tUnit\tMin\tMax\tDefault\tHints\n")
	fmt.Fprintf(tw, "-\t------\t----\t----\t---\t---\t-------\t-----\n")

	for p := range modulation.ParamCount {
		info := p.Info()
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%g\t%g\t%g\t%s\n",
			int(p), info.Symbol, info.Name, info.Unit, info.Min, info.Max, info.Default, hintString(info))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Println()
	for i := range modulation.ProgramCount {
		name, _ := modulation.ProgramName(i)
		fmt.Printf("program %d: %s\n", i, name)
	}
	return nil
}

func hintString(info modulation.ParamInfo) string {
	var parts []string
	if info.Hints&modulation.HintAutomatable != 0 {
		parts = append(parts, "automatable")
	}
	if info.Hints&modulation.HintInteger != 0 {
		parts = append(parts, "integer")
	}
	if info.Hints&modulation.HintLogarithmic != 0 {
		parts = append(parts, "log")
	}
	if len(info.Labels) > 0 {
		parts = append(parts, strings.Join(info.Labels, "|"))
	}
	return strings.Join(parts, ", ")
}
