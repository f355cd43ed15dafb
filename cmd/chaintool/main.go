package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tdewolff/argp"
	"github.com/tdewolff/linechain"
)

type Info struct {
	Verbose bool   `short:"v" desc:"Log debug messages"`
	Input   string `index:"0" desc:"Input file, - for stdin"`
}

type Clip struct {
	Verbose bool   `short:"v" desc:"Log debug messages"`
	Op      string `short:"p" default:"or" desc:"Boolean operation: and, or, not, xor"`
	Output  string `short:"o" desc:"Output file"`
	Subject string `index:"0" desc:"Subject file"`
	Clip    string `index:"1" desc:"Clip file"`
}

type Offset struct {
	Verbose  bool    `short:"v" desc:"Log debug messages"`
	Delta    float64 `short:"d" desc:"Offset distance, negative to shrink"`
	MaxError int     `short:"e" default:"5000" desc:"Maximum error of round joins"`
	Output   string  `short:"o" desc:"Output file"`
	Input    string  `index:"0" desc:"Input file, - for stdin"`
}

func main() {
	root := argp.NewCmd(&Info{}, "Toolkit for arc-aware polylines")
	root.AddCmd(&Clip{}, "clip", "Apply a boolean operation to the chains of two files")
	root.AddCmd(&Offset{}, "offset", "Grow or shrink closed chains")
	root.Parse()
	root.PrintHelp()
}

func setVerbose(verbose bool) {
	if verbose {
		linechain.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
}

func readChains(filename string) ([]*linechain.Chain, error) {
	var b []byte
	var err error
	if filename == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, err
	}

	cs, err := linechain.ParseAll(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cs, nil
}

func writeChains(filename string, cs []*linechain.Chain) error {
	sb := strings.Builder{}
	for _, c := range cs {
		sb.WriteString(c.Format())
	}
	if filename == "" || filename == "-" {
		_, err := os.Stdout.WriteString(sb.String())
		return err
	}
	return os.WriteFile(filename, []byte(sb.String()), 0644)
}

func (cmd *Info) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	setVerbose(cmd.Verbose)

	cs, err := readChains(cmd.Input)
	if err != nil {
		return err
	}
	for i, c := range cs {
		kind := "open"
		if c.Closed() {
			kind = "closed"
		}
		fmt.Printf("Chain %d: %s, %d points, %d segments, %d arcs\n", i, kind, c.PointCount(), c.SegmentCount(), c.ArcCount())
		fmt.Printf("  Length: %g\n", c.Length())
		if c.Closed() {
			fmt.Printf("  Area: %g\n", c.Area(false))
		}
		b := c.Bounds()
		fmt.Printf("  Bounds: (%g,%g)-(%g,%g)\n", b.Min[0], b.Min[1], b.Max[0], b.Max[1])
		if si := c.SelfIntersectingWithArcs(); si != nil {
			fmt.Printf("  Self-intersection: segments %d and %d at %v\n", si.A, si.B, si.P)
		} else {
			fmt.Printf("  Self-intersection: none\n")
		}
	}
	return nil
}

func (cmd *Clip) Run() error {
	if cmd.Subject == "" || cmd.Clip == "" {
		return argp.ShowUsage
	}
	setVerbose(cmd.Verbose)

	var op linechain.ClipOp
	switch strings.ToLower(cmd.Op) {
	case "and":
		op = linechain.OpAnd
	case "or":
		op = linechain.OpOr
	case "not":
		op = linechain.OpNot
	case "xor":
		op = linechain.OpXor
	default:
		return fmt.Errorf("unknown operation: %s", cmd.Op)
	}

	subjects, err := readChains(cmd.Subject)
	if err != nil {
		return err
	}
	clips, err := readChains(cmd.Clip)
	if err != nil {
		return err
	}

	cs, err := linechain.Boolean(op, subjects, clips)
	if err != nil {
		return err
	}
	return writeChains(cmd.Output, cs)
}

func (cmd *Offset) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	setVerbose(cmd.Verbose)

	cs, err := readChains(cmd.Input)
	if err != nil {
		return err
	}
	return writeChains(cmd.Output, linechain.Offset(cs, cmd.Delta, cmd.MaxError))
}
