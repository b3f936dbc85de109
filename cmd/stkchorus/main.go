// Command stkchorus runs the LFO-modulated lowpass chorus offline, in real
// time, or as an analysis tool.
//
// Usage:
//
//	stkchorus <command> [flags]
//
// Commands:
//
//	render   process a test signal or WAV file and write a float32 WAV
//	play     stream the processed signal to the default audio device
//	analyze  print the filter response and a measured transfer estimate
//	params   list the chorus parameters
//
// Every flag also reads a STKCHORUS_* environment variable as its default.
//
// Examples:
//
//	stkchorus render -source sweep -depth 1200 -lfo-freq 0.5 -out sweep.wav
//	stkchorus play -source noise -cutoff 2000 -resonance 0.7 -depth 2400
//	stkchorus analyze -cutoff 1000 -resonance 1
//	stkchorus params
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cwbudde/stkchorus/internal/config"
)

type command struct {
	name  string
	usage string
	run   func(cfg config.Config) error
}

var commands = []command{
	{"render", "process a test signal or WAV file and write a float32 WAV", runRender},
	{"play", "stream the processed signal to the default audio device", runPlay},
	{"analyze", "print the filter response and a measured transfer estimate", runAnalyze},
	{"params", "list the chorus parameters", runParams},
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("stkchorus: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, ok := lookup(os.Args[1])
	if !ok {
		if os.Args[1] != "-h" && os.Args[1] != "-help" && os.Args[1] != "help" {
			log.Printf("unknown command %q", os.Args[1])
		}
		usage()
		os.Exit(2)
	}

	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	cfg, err := config.Load(fs, os.Args[2:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("%s: %v", cmd.name, err)
	}

	if err := cmd.run(cfg); err != nil {
		log.Fatalf("%s: %v", cmd.name, err)
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: stkchorus <command> [flags]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(os.Stderr, "\nRun 'stkchorus <command> -h' for the flags of a command.\n")
}
