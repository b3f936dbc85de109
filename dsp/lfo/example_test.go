package lfo_test

import (
	"fmt"

	"github.com/cwbudde/stkchorus/dsp/lfo"
)

func ExampleOscillator_Tick() {
	o := lfo.New(8)
	o.SetWaveform(lfo.Triangle)
	o.SetRate(1)

	for range 8 {
		fmt.Printf("%.1f ", o.Tick())
	}
	fmt.Println()

	// Output:
	// 0.5 1.0 0.5 0.0 -0.5 -1.0 -0.5 0.0
}
