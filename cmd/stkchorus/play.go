package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/stkchorus/dsp/effects/modulation"
	"github.com/cwbudde/stkchorus/internal/config"
	"github.com/cwbudde/stkchorus/internal/stream"
)

func runPlay(cfg config.Config) error {
	left, right, err := loadInput(cfg)
	if err != nil {
		return err
	}

	chorus, err := cfg.NewChorus()
	if err != nil {
		return err
	}

	var bridge modulation.ParamBridge
	var src stream.Source = stream.NewLoop(left)
	if cfg.Input != "" {
		src = stream.NewBuffer(left, right)
	}
	reader := stream.NewReader(chorus, src,
		stream.WithBridge(&bridge),
		stream.WithBlockSize(cfg.BlockSize),
		stream.WithGain(cfg.Gain),
	)

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(cfg.BlockSize) * time.Second / time.Duration(cfg.SampleRate),
	})
	if err != nil {
		return fmt.Errorf("audio device: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(reader)
	defer player.Close()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go readControls(runCtx, os.Stdin, &bridge)

	log.Printf("playing %v at %d Hz; type '<param> <value>' to change a parameter, Ctrl-C to stop",
		cfg.Duration, cfg.SampleRate)
	player.Play()

	timer := time.NewTimer(cfg.Duration)
	defer timer.Stop()

	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-runCtx.Done():
			return nil
		case <-timer.C:
			return nil
		case <-tick.C:
			if err := player.Err(); err != nil {
				return fmt.Errorf("playback: %w", err)
			}
			if !player.IsPlaying() {
				return nil
			}
		}
	}
}

// readControls posts "<symbol> <value>" lines from r to bridge until ctx is
// done or r is exhausted.
func readControls(ctx context.Context, r io.Reader, bridge *modulation.ParamBridge) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}

		p, v, err := parseControl(sc.Text())
		if err != nil {
			log.Printf("control: %v", err)
			continue
		}
		bridge.Post(p, v)
		log.Printf("%s = %g", p, v)
	}
}

func parseControl(line string) (modulation.Param, float64, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want '<param> <value>', got %q", line)
	}

	p, err := modulation.ParseParam(strings.ToLower(fields[0]))
	if err != nil {
		return 0, 0, err
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", p, err)
	}
	return p, v, nil
}
