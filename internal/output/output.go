// Package output implements the row-wise writers for XYZ trajectory
// frames, per-snapshot analysis records, and the final RDF dump.
package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dormrod/hard-disk-monte-carlo/internal/analysis/rdf"
	"github.com/dormrod/hard-disk-monte-carlo/internal/configuration"
)

// XYZWriter writes extended-XYZ trajectory frames, one per call to
// WriteFrame.
type XYZWriter struct {
	w *bufio.Writer
}

// NewXYZWriter wraps w for buffered frame writes.
func NewXYZWriter(w io.Writer) *XYZWriter {
	return &XYZWriter{w: bufio.NewWriter(w)}
}

// WriteFrame writes one frame: header N, a blank comment line, then N
// lines of "Ar x y 0.0".
func (xw *XYZWriter) WriteFrame(cfg *configuration.Configuration) error {
	if _, err := fmt.Fprintln(xw.w, cfg.N); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(xw.w); err != nil {
		return err
	}
	for i := 0; i < cfg.N; i++ {
		if _, err := fmt.Fprintf(xw.w, "Ar %v %v 0.0\n", cfg.X[i], cfg.Y[i]); err != nil {
			return err
		}
	}
	return xw.w.Flush()
}

// RowWriter writes whitespace-separated numeric rows, one per snapshot.
type RowWriter struct {
	w *bufio.Writer
}

// NewRowWriter wraps w for buffered row writes.
func NewRowWriter(w io.Writer) *RowWriter {
	return &RowWriter{w: bufio.NewWriter(w)}
}

// WriteRow writes vals as one whitespace-separated line.
func (rw *RowWriter) WriteRow(vals []float64) error {
	for i, v := range vals {
		if i > 0 {
			if _, err := rw.w.WriteString(" "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(rw.w, "%v", v); err != nil {
			return err
		}
	}
	if _, err := rw.w.WriteString("\n"); err != nil {
		return err
	}
	return rw.w.Flush()
}

// WriteRDF writes one (bin, value) pair per line, in order.
func WriteRDF(w io.Writer, results []rdf.Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		if _, err := fmt.Fprintf(bw, "%v %v\n", r.R, r.G); err != nil {
			return err
		}
	}
	return bw.Flush()
}
