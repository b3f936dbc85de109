package lowpass

import (
	"math"
	"testing"

	"github.com/cwbudde/stkchorus/dsp/filter/biquad"
	"github.com/cwbudde/stkchorus/internal/testutil"
)

// steadyPeak runs input through f and returns the peak of the last quarter.
func steadyPeak(f *Filter, input []float64) float64 {
	out := append([]float64(nil), input...)
	f.ProcessBlock(out)
	return testutil.PeakAbs(out[3*len(out)/4:])
}

func TestPassband(t *testing.T) {
	tests := []struct {
		cutoff, freq float64
	}{
		{cutoff: 5000, freq: 100},
		{cutoff: 15000, freq: 440},
		{cutoff: 1000, freq: 20},
	}

	for _, tt := range tests {
		f := New(44100)
		f.SetCutoff(tt.cutoff)

		in := testutil.DeterministicSine(tt.freq, 44100, 1, 44100)
		if peak := steadyPeak(f, in); math.Abs(peak-1) > 0.01 {
			t.Fatalf("cutoff=%v freq=%v: passband peak = %v, want ~1", tt.cutoff, tt.freq, peak)
		}
	}
}

func TestStopband(t *testing.T) {
	f := New(44100)
	f.SetCutoff(200)

	in := testutil.DeterministicSine(15000, 44100, 1, 8192)
	if peak := steadyPeak(f, in); peak > 0.001 {
		t.Fatalf("stopband peak = %v, want < 0.001", peak)
	}
}

func TestAttenuationMonotonicAboveCutoff(t *testing.T) {
	f := New(48000)
	f.SetCutoff(1000)
	f.SetResonance(0.5)

	c := f.Coefficients()
	prev := math.Inf(1)
	for hz := 1500.0; hz < 23000; hz += 500 {
		m := c.MagnitudeSquared(hz, 48000)
		if m > prev {
			t.Fatalf("magnitude rose at %v Hz", hz)
		}
		prev = m
	}
}

func TestResonancePeak(t *testing.T) {
	f := New(48000)
	f.SetCutoff(2000)

	flat := f.Coefficients()
	f.SetResonance(1)
	peaked := f.Coefficients()

	if db := flat.MagnitudeDB(2000, 48000); math.Abs(db+3.01) > 0.05 {
		t.Fatalf("zero resonance at cutoff = %v dB, want -3.01", db)
	}

	want := 20 * math.Log10(MaxQ)
	if db := peaked.MagnitudeDB(2000, 48000); math.Abs(db-want) > 0.05 {
		t.Fatalf("full resonance at cutoff = %v dB, want %v", db, want)
	}
}

func TestBoundedAcrossParameterGrid(t *testing.T) {
	noise := testutil.DeterministicNoise(7, 1, 10000)
	step := testutil.DC(1, 10000)

	for _, sr := range []float64{22050, 44100, 96000} {
		for _, cutoff := range []float64{0, MinCutoffHz, 440, 8000, MaxCutoffHz, 1e6} {
			for _, res := range []float64{-1, 0, 0.5, 1, 2} {
				for _, in := range [][]float64{noise, step} {
					f := New(sr)
					f.SetCutoff(cutoff)
					f.SetResonance(res)

					if !f.Coefficients().Stable() {
						t.Fatalf("unstable coefficients sr=%v cutoff=%v res=%v", sr, cutoff, res)
					}

					out := append([]float64(nil), in...)
					f.ProcessBlock(out)
					testutil.RequireBounded(t, out, 100)
				}
			}
		}
	}
}

func TestPerSampleSweepStaysBounded(t *testing.T) {
	f := New(44100)
	f.SetResonance(1)

	in := testutil.DeterministicNoise(3, 1, 10000)
	out := make([]float64, len(in))
	for i, x := range in {
		f.SetCutoff(MinCutoffHz * math.Pow(MaxCutoffHz/MinCutoffHz, 0.5+0.5*math.Sin(float64(i)*0.01)))
		out[i] = f.Process(x)
	}

	testutil.RequireBounded(t, out, 100)
}

func TestCutoffJumpsStayBounded(t *testing.T) {
	for _, fs := range []float64{22050, 44100, 48000} {
		for _, period := range []int{1, 200} {
			f := New(fs)
			f.SetResonance(MaxResonance)

			in := testutil.DeterministicNoise(7, 1, 10000)
			out := make([]float64, len(in))
			for i, x := range in {
				if (i/period)%2 == 0 {
					f.SetCutoff(MinCutoffHz)
				} else {
					f.SetCutoff(MaxCutoffHz)
				}
				out[i] = f.Process(x)
			}

			testutil.RequireFinite(t, out)
			testutil.RequireBounded(t, out, 100)
		}
	}
}

func TestMatchesDesignResponse(t *testing.T) {
	for _, tt := range []struct {
		fs, cutoff, res float64
	}{
		{44100, 1000, 0},
		{44100, 5000, 0.5},
		{48000, 200, 1},
		{16000, MaxCutoffHz, 1},
	} {
		f := New(tt.fs)
		f.SetCutoff(tt.cutoff)
		f.SetResonance(tt.res)

		var ref biquad.Section
		ref.SetCoefficients(f.Coefficients())

		testutil.RequireSliceNearlyEqual(t, f.ImpulseResponse(2048), ref.ImpulseResponse(2048), 1e-9)
	}
}

func TestClamping(t *testing.T) {
	f := New(44100)

	f.SetCutoff(5)
	if f.Cutoff() != MinCutoffHz {
		t.Fatalf("Cutoff() = %v, want %v", f.Cutoff(), MinCutoffHz)
	}
	f.SetCutoff(30000)
	if f.Cutoff() != MaxCutoffHz {
		t.Fatalf("Cutoff() = %v, want %v", f.Cutoff(), MaxCutoffHz)
	}
	f.SetCutoff(math.NaN())
	if f.Cutoff() != MaxCutoffHz {
		t.Fatalf("NaN cutoff changed value to %v", f.Cutoff())
	}

	f.SetResonance(3)
	if f.Resonance() != MaxResonance || math.Abs(f.Q()-MaxQ) > 1e-12 {
		t.Fatalf("Resonance() = %v, Q() = %v", f.Resonance(), f.Q())
	}
	f.SetResonance(-3)
	if f.Resonance() != MinResonance {
		t.Fatalf("Resonance() = %v, want 0", f.Resonance())
	}
	f.SetResonance(math.NaN())
	if f.Resonance() != MinResonance {
		t.Fatalf("NaN resonance changed value to %v", f.Resonance())
	}
}

func TestCutoffAboveNyquistAtLowRate(t *testing.T) {
	f := New(16000)
	f.SetCutoff(MaxCutoffHz)

	if f.Cutoff() != MaxCutoffHz {
		t.Fatalf("Cutoff() = %v, want %v", f.Cutoff(), MaxCutoffHz)
	}
	if c := f.Coefficients(); !c.Stable() || c.B0 == 0 {
		t.Fatalf("expected a valid design below Nyquist, got %+v", c)
	}
}

func TestSampleRateChangeRecomputes(t *testing.T) {
	f := New(44100)
	f.SetCutoff(3000)
	before := f.Coefficients()

	f.SetSampleRate(44100)
	if f.Coefficients() != before {
		t.Fatal("unchanged rate must keep coefficients")
	}

	f.SetSampleRate(96000)
	if f.Coefficients() == before {
		t.Fatal("rate change must recompute coefficients")
	}

	f.SetSampleRate(-1)
	if f.SampleRate() != 44100 || f.Coefficients() != before {
		t.Fatalf("invalid rate should fall back to 44100, got %v", f.SampleRate())
	}
}

func TestSilenceInSilenceOut(t *testing.T) {
	f := New(44100)
	f.SetCutoff(8000)
	f.SetResonance(1)

	buf := make([]float64, 512)
	f.ProcessBlock(buf)
	testutil.RequireSilent(t, buf)
}

func TestNonFiniteInputIsSilenced(t *testing.T) {
	f := New(44100)
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if y := f.Process(x); y != 0 {
			t.Fatalf("Process(%v) = %v, want 0", x, y)
		}
	}

	out := []float64{0.5, 0.5, 0.5}
	f.ProcessBlock(out)
	testutil.RequireFinite(t, out)
}

func TestResetAndImpulseResponse(t *testing.T) {
	f := New(44100)
	f.SetCutoff(500)

	ir := f.ImpulseResponse(64)
	f.Process(1)
	f.Reset()

	got := make([]float64, 64)
	got[0] = 1
	f.ProcessBlock(got)
	testutil.RequireSliceNearlyEqual(t, got, ir, 0)
}

func TestResonanceToQ(t *testing.T) {
	if q := ResonanceToQ(0); math.Abs(q-1/math.Sqrt2) > 1e-15 {
		t.Fatalf("ResonanceToQ(0) = %v", q)
	}
	if q := ResonanceToQ(1); math.Abs(q-MaxQ) > 1e-12 {
		t.Fatalf("ResonanceToQ(1) = %v", q)
	}

	prev := 0.0
	for r := 0.0; r <= 1; r += 0.1 {
		q := ResonanceToQ(r)
		if q <= prev {
			t.Fatalf("ResonanceToQ not increasing at %v", r)
		}
		prev = q
	}
}

func BenchmarkProcessModulated(b *testing.B) {
	f := New(44100)
	f.SetResonance(0.5)
	x, cutoff := 0.0, 1000.0
	b.ReportAllocs()
	for b.Loop() {
		cutoff++
		if cutoff > 5000 {
			cutoff = 1000
		}
		f.SetCutoff(cutoff)
		x = f.Process(0.5)
	}
	_ = x
}
