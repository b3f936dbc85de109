package design_test

import (
	"fmt"

	"github.com/cwbudde/stkchorus/dsp/filter/design"
)

func ExampleLowpass() {
	c := design.Lowpass(1000, design.ButterworthQ, 48000)

	for _, f := range []float64{100, 1000, 10000} {
		fmt.Printf("%5.0f Hz: %6.2f dB\n", f, c.MagnitudeDB(f, 48000))
	}
	// Output:
	//   100 Hz:  -0.00 dB
	//  1000 Hz:  -3.01 dB
	// 10000 Hz: -42.74 dB
}
