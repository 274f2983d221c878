package main

import (
	"fmt"

	"github.com/cwbudde/algo-fxchain/dsp/effectchain"
	"github.com/cwbudde/algo-fxchain/dsp/params"
	"github.com/cwbudde/algo-fxchain/internal/cli"
)

// EffectsCmd lists the registered effects and the controls.
type EffectsCmd struct{}

func (EffectsCmd) Run(_ *Globals) error {
	cli.PrintSection("Effects")

	for _, name := range effectchain.DefaultRegistry().Names() {
		fmt.Println("  " + name)
	}

	cli.PrintSection("Controls")

	for _, c := range params.Controls() {
		lo, hi := c.Range()
		cli.PrintInfo("  "+c.String(), fmt.Sprintf("default %g, range [%g, %g]", c.Default(), lo, hi))
	}

	return nil
}
