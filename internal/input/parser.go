// Package input parses the line-oriented hdmc.inpt file: particle,
// simulation, and analysis sections, each preceded by a fixed number of
// unparsed comment/blank lines.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dormrod/hard-disk-monte-carlo/internal/configuration"
)

// Params is everything parsed out of hdmc.inpt.
type Params struct {
	N               int
	Dispersity      configuration.Dispersity
	DispersityTag   string
	DispersityParams []float64
	Interaction     configuration.Interaction
	PackingFraction float64

	RandomSeed       int64
	EqCycles         int
	ProdCycles       int
	SwapProb         float64
	AcceptTarget     float64

	OutputPrefix  string
	XYZWriteFreq  int
	AnalysisFreq  int
	RDFMode       int // 0=off, 1=normalised, 2=raw
	RDFDelta      float64
	VoronoiMode   int // 0=off, 1=standard, 2=radical, 3=both
}

// lineScanner reads hdmc.inpt line by line, skipping a fixed number of
// header/comment lines per section, exactly as the original parser did.
type lineScanner struct {
	sc *bufio.Scanner
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{sc: bufio.NewScanner(r)}
}

func (ls *lineScanner) skip(n int) error {
	for i := 0; i < n; i++ {
		if !ls.sc.Scan() {
			return fmt.Errorf("input: unexpected end of file while skipping header lines")
		}
	}
	return nil
}

func (ls *lineScanner) next() (string, error) {
	if !ls.sc.Scan() {
		return "", fmt.Errorf("input: unexpected end of file")
	}
	return strings.TrimSpace(ls.sc.Text()), nil
}

// Parse reads Params from r, following the input file's section layout: a
// fixed-size run of skipped lines precedes each section, then one value
// per line, in order.
func Parse(r io.Reader) (*Params, error) {
	ls := newLineScanner(r)
	p := &Params{}

	// Particle section: 3 header lines.
	if err := ls.skip(3); err != nil {
		return nil, err
	}
	if err := readInt(ls, &p.N); err != nil {
		return nil, err
	}
	dispLine, err := ls.next()
	if err != nil {
		return nil, err
	}
	p.DispersityTag = dispLine
	switch {
	case strings.HasPrefix(dispLine, "mono"):
		p.Dispersity = configuration.Mono
		p.DispersityParams, err = readFloats(ls, 1)
	case strings.HasPrefix(dispLine, "bi"):
		p.Dispersity = configuration.Bi
		p.DispersityParams, err = readFloats(ls, 3)
	case strings.HasPrefix(dispLine, "poly"):
		p.Dispersity = configuration.Poly
		p.DispersityParams, err = readFloats(ls, 2)
	default:
		return nil, fmt.Errorf("input: unrecognised dispersity tag %q", dispLine)
	}
	if err != nil {
		return nil, err
	}

	intLine, err := ls.next()
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasPrefix(intLine, "add"):
		p.Interaction = configuration.Additive
	case strings.HasPrefix(intLine, "nonadd"):
		p.Interaction = configuration.NonAdditive
	default:
		return nil, fmt.Errorf("input: unrecognised interaction tag %q", intLine)
	}
	if p.Interaction == configuration.NonAdditive {
		return nil, fmt.Errorf("input: non-additive interactions are not implemented")
	}

	if err := readFloat(ls, &p.PackingFraction); err != nil {
		return nil, err
	}

	// Simulation section: 2 header lines.
	if err := ls.skip(2); err != nil {
		return nil, err
	}
	var seed int
	if err := readInt(ls, &seed); err != nil {
		return nil, err
	}
	p.RandomSeed = int64(seed)
	if err := readInt(ls, &p.EqCycles); err != nil {
		return nil, err
	}
	if err := readInt(ls, &p.ProdCycles); err != nil {
		return nil, err
	}
	if err := readFloat(ls, &p.SwapProb); err != nil {
		return nil, err
	}
	if err := readFloat(ls, &p.AcceptTarget); err != nil {
		return nil, err
	}

	// Analysis section: 2 header lines.
	if err := ls.skip(2); err != nil {
		return nil, err
	}
	prefix, err := ls.next()
	if err != nil {
		return nil, err
	}
	p.OutputPrefix = prefix
	if err := readInt(ls, &p.XYZWriteFreq); err != nil {
		return nil, err
	}
	if err := readInt(ls, &p.AnalysisFreq); err != nil {
		return nil, err
	}
	if err := readInt(ls, &p.RDFMode); err != nil {
		return nil, err
	}
	if err := readFloat(ls, &p.RDFDelta); err != nil {
		return nil, err
	}
	if err := readInt(ls, &p.VoronoiMode); err != nil {
		return nil, err
	}

	if err := ls.sc.Err(); err != nil {
		return nil, err
	}

	return p, nil
}

func readInt(ls *lineScanner, dst *int) error {
	line, err := ls.next()
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return fmt.Errorf("input: expected integer, got %q: %w", line, err)
	}
	*dst = v
	return nil
}

func readFloat(ls *lineScanner, dst *float64) error {
	line, err := ls.next()
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return fmt.Errorf("input: expected number, got %q: %w", line, err)
	}
	*dst = v
	return nil
}

func readFloats(ls *lineScanner, count int) ([]float64, error) {
	out := make([]float64, count)
	for i := range out {
		if err := readFloat(ls, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
