package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dudk/chord/device"
	"github.com/dudk/chord/music"
	"github.com/dudk/chord/stream"
)

var (
	successExitCode = 0
	errorExitCode   = 1
)

type config struct {
	musicPath  string
	exportPath string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("chord", flag.ContinueOnError)
	flags.Usage = func() { printUsage(flags) }
	exportPath := flags.String("e", "", "export the rendered audio to a wav file instead of playing it")
	if err := flags.Parse(args); err != nil {
		return errorExitCode
	}
	if flags.NArg() != 1 {
		printUsage(flags)
		return errorExitCode
	}

	c := config{
		musicPath:  flags.Arg(0),
		exportPath: *exportPath,
	}
	if err := c.run(); err != nil {
		fmt.Fprintf(os.Stderr, "chord: %v\n", err)
		return errorExitCode
	}
	return successExitCode
}

func (c *config) run() error {
	m, err := music.Import(c.musicPath)
	if err != nil {
		return err
	}

	if c.exportPath != "" {
		return stream.Export(m, c.exportPath)
	}

	d, err := device.DefaultOutput()
	if err != nil {
		return err
	}
	s, err := stream.New(d)
	if err != nil {
		d.Close()
		return err
	}
	defer s.Close()
	return s.Play(m)
}

func printUsage(flags *flag.FlagSet) {
	fmt.Println("Chord plays yaml music descriptions")
	fmt.Println()
	fmt.Println("Usage: chord [flags] <music.yml>")
	fmt.Println()
	flags.PrintDefaults()
}
