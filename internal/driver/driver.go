// Package driver runs the equilibration and production Monte Carlo loops,
// coupling the move kernel to the delta calibrator and the online
// analysers at the configured cadences.
package driver

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/dormrod/hard-disk-monte-carlo/internal/analysis/rdf"
	"github.com/dormrod/hard-disk-monte-carlo/internal/analysis/voronoi"
	"github.com/dormrod/hard-disk-monte-carlo/internal/configuration"
	"github.com/dormrod/hard-disk-monte-carlo/internal/input"
	"github.com/dormrod/hard-disk-monte-carlo/internal/loggingx"
	"github.com/dormrod/hard-disk-monte-carlo/internal/mc"
	"github.com/dormrod/hard-disk-monte-carlo/internal/output"
	"github.com/dormrod/hard-disk-monte-carlo/internal/relax"
	"github.com/dormrod/hard-disk-monte-carlo/internal/rng"
	geomvoronoi "github.com/dormrod/hard-disk-monte-carlo/internal/voronoi"
)

// analysers bundles the optional online analysers and their output
// writers so the production loop can pass them around as one value.
type analysers struct {
	rdfAcc  *rdf.Accumulator
	rdfMode int

	stdVor, radVor    *voronoi.Aggregator
	vorOut, radVorOut *output.RowWriter
}

// Run drives one complete simulation as described by params: initial
// configuration resolution, delta calibration, equilibration, production
// with its trajectory and analysis cadences, and the final RDF/Voronoi
// dump. Every phase transition and fatal condition is written through log
// before Run returns: fatal conditions are always surfaced through the log
// before termination, never swallowed.
func Run(params *input.Params, log *loggingx.Logger) error {
	log.DateTime("Simulation begun at: ")
	log.Write("Run identifier: " + uuid.New().String())
	log.Write("Hard Disk Monte Carlo")
	log.Separator()

	log.Write("Reading input parameters")
	log.Indent()
	log.Write("Number of particles:", params.N)
	log.Write("Particle dispersity:", params.DispersityTag)
	log.Write("Packing fraction:", params.PackingFraction)
	log.Dedent(1)
	log.Separator()

	stream := rng.New(params.RandomSeed)

	log.Write("Initialising Monte Carlo simulation")
	log.Indent()
	cfg, err := configuration.New(params.N, params.PackingFraction, params.Dispersity, params.DispersityParams, stream)
	if err != nil {
		return fatal(log, "cannot build configuration", err)
	}

	x, y, err := relax.Resolve(cfg.N, cfg.R, cfg.L, stream)
	if err != nil {
		return fatal(log, "cannot generate starting configuration", err)
	}
	copy(cfg.X, x)
	copy(cfg.Y, y)
	log.Write("Starting configuration constructed")

	if cfg.AnyOverlap() {
		return fatal(log, "starting configuration contains overlaps", nil)
	}
	log.Dedent(1)
	log.Separator()

	kernel := mc.NewKernel(cfg, stream, params.SwapProb, cfg.CellLen_2)

	an := analysers{}
	if params.RDFMode != 0 {
		an.rdfAcc = rdf.NewAccumulator(cfg.CellLen_2, params.RDFDelta)
		an.rdfMode = params.RDFMode
	}
	t := geomvoronoi.NewPlanarTessellator()
	switch params.VoronoiMode {
	case 1:
		an.stdVor = voronoi.NewAggregator(t, false)
	case 2:
		an.radVor = voronoi.NewAggregator(t, true)
	case 3:
		an.stdVor = voronoi.NewAggregator(t, false)
		an.radVor = voronoi.NewAggregator(t, true)
	}

	xyzOut, closers, err := openOutputs(params, &an)
	if err != nil {
		return fatal(log, "cannot open output files", err)
	}
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	equilibrate(kernel, params, log)

	if err := produce(kernel, params, log, xyzOut, &an); err != nil {
		return fatal(log, "error during production", err)
	}

	writeFinalAnalysis(params, cfg, &an, log)

	log.Write("Simulation complete")
	return nil
}

func fatal(log *loggingx.Logger, msg string, err error) error {
	if err != nil {
		return log.Fatal(msg, err)
	}
	return log.Fatal(msg)
}

func openOutputs(params *input.Params, an *analysers) (xyz *output.XYZWriter, closers []*os.File, err error) {
	if params.XYZWriteFreq > 0 {
		f, e := os.Create(params.OutputPrefix + ".xyz")
		if e != nil {
			return nil, closers, e
		}
		closers = append(closers, f)
		xyz = output.NewXYZWriter(f)
	}
	if an.stdVor != nil {
		f, e := os.Create(params.OutputPrefix + "_voronoi.dat")
		if e != nil {
			return nil, closers, e
		}
		closers = append(closers, f)
		an.vorOut = output.NewRowWriter(f)
	}
	if an.radVor != nil {
		f, e := os.Create(params.OutputPrefix + "_voronoi_radical.dat")
		if e != nil {
			return nil, closers, e
		}
		closers = append(closers, f)
		an.radVorOut = output.NewRowWriter(f)
	}
	return xyz, closers, nil
}

// equilibrate calibrates the translation step against params.AcceptTarget,
// then runs params.EqCycles cycles logging cumulative acceptance every
// EqCycles/100 cycles.
func equilibrate(k *mc.Kernel, params *input.Params, log *loggingx.Logger) {
	log.Write("Equilibration Monte Carlo")
	log.Indent()

	log.Write("Finding optimal displacement delta for acceptance probability:", params.AcceptTarget)
	log.Indent()
	log.Write("Disrupting any initial ordering")
	code, accProb := k.Calibrate(params.AcceptTarget)
	switch code {
	case mc.TooDense:
		log.Warn("System too dense to achieve target")
	case mc.TooDilute:
		log.Warn("System too dilute to achieve target")
	default:
		log.Write(fmt.Sprintf("Delta: %v acceptance: %v", k.TransDelta, accProb))
	}
	log.Dedent(1)
	log.Write("Translation delta set to:", k.TransDelta)

	log.Write("Running equilibration")
	log.Indent()
	logMoves := params.EqCycles / 100
	if logMoves < 1 {
		logMoves = 1
	}
	accCount := 0
	for i := 1; i <= params.EqCycles; i++ {
		accCount += k.Cycle()
		if i%logMoves == 0 {
			log.Write(fmt.Sprintf("Moves and acceptance: %d %v", i, float64(accCount)/float64(i*k.Cfg.N)))
		}
	}
	log.Dedent(2)
	log.Separator()
}

// produce runs params.ProdCycles cycles with the frozen (post-calibration)
// translation step, writing trajectory frames and invoking the analysers
// at their configured cadences.
func produce(k *mc.Kernel, params *input.Params, log *loggingx.Logger, xyzOut *output.XYZWriter, an *analysers) error {
	log.Write("Production Monte Carlo")
	log.Indent()

	logMoves := params.ProdCycles / 100
	if logMoves < 1 {
		logMoves = 1
	}
	accCount := 0
	for i := 1; i <= params.ProdCycles; i++ {
		accCount += k.Cycle()
		if i%logMoves == 0 {
			log.Write(fmt.Sprintf("Moves and acceptance: %d %v", i, float64(accCount)/float64(i*k.Cfg.N)))
		}
		if params.XYZWriteFreq > 0 && i%params.XYZWriteFreq == 0 {
			if err := xyzOut.WriteFrame(k.Cfg); err != nil {
				return err
			}
		}
		if params.AnalysisFreq > 0 && i%params.AnalysisFreq == 0 {
			if err := analyseConfiguration(k, an); err != nil {
				return err
			}
		}
	}
	log.Dedent(2)
	log.Separator()
	return nil
}

func analyseConfiguration(k *mc.Kernel, an *analysers) error {
	if an.rdfAcc != nil {
		an.rdfAcc.Sample(k.Cfg)
	}
	if an.stdVor != nil {
		snap, err := an.stdVor.Sample(k.Cfg)
		if err != nil {
			return err
		}
		if an.vorOut != nil {
			if err := an.vorOut.WriteRow(snapshotRow(snap)); err != nil {
				return err
			}
		}
	}
	if an.radVor != nil {
		snap, err := an.radVor.Sample(k.Cfg)
		if err != nil {
			return err
		}
		if an.radVorOut != nil {
			if err := an.radVorOut.WriteRow(snapshotRow(snap)); err != nil {
				return err
			}
		}
	}
	return nil
}

// snapshotRow flattens a voronoi.Snapshot into one output row: the
// 21-entry normalised size distribution followed by the degree
// assortativity.
func snapshotRow(s voronoi.Snapshot) []float64 {
	row := make([]float64, len(s.SizeDist)+1)
	for i, v := range s.SizeDist {
		row[i] = v
	}
	row[len(s.SizeDist)] = s.Assortativity
	return row
}

// writeFinalAnalysis dumps the aggregate RDF and Voronoi results at
// shutdown: one (bin, value) pair per line for the RDF, one final
// aggregate row for each active Voronoi variant.
func writeFinalAnalysis(params *input.Params, cfg *configuration.Configuration, an *analysers, log *loggingx.Logger) {
	log.Write("Writing analysis results")
	log.Indent()

	if an.rdfAcc != nil {
		f, err := os.Create(params.OutputPrefix + "_rdf.dat")
		if err != nil {
			log.Warn("could not write RDF dump", err)
		} else {
			normalise := an.rdfMode == 1
			results := rdf.Finalise(an.rdfAcc.Hist, an.rdfAcc.Delta, cfg.N, cfg.L, an.rdfAcc.AnalysisConfigs, normalise)
			if err := output.WriteRDF(f, results); err != nil {
				log.Warn("error writing RDF dump", err)
			}
			f.Close()
		}
	}

	if an.stdVor != nil && an.vorOut != nil {
		an.vorOut.WriteRow(snapshotRow(an.stdVor.Aggregate()))
	}
	if an.radVor != nil && an.radVorOut != nil {
		an.radVorOut.WriteRow(snapshotRow(an.radVor.Aggregate()))
	}

	log.Dedent(1)
}
