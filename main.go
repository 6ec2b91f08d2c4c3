package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hartwell/cdclsat/internal/dimacs"
	"github.com/hartwell/cdclsat/internal/metrics"
	"github.com/hartwell/cdclsat/internal/sat"
)

type config struct {
	instanceFile string
	gzipped      bool
	cpuProfile   bool
	memProfile   bool
	metricsAddr  string
}

var cfg config

var rootCmd = &cobra.Command{
	Use:   "cdclsat [flags] instance.cnf",
	Short: "cdclsat solves DIMACS CNF instances with a CDCL search procedure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.instanceFile = args[0]
		return run(cmd.Context(), &cfg)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&cfg.gzipped, "gzip", false, "treat the instance file as gzip-compressed")
	rootCmd.Flags().BoolVar(&cfg.cpuProfile, "cpuprofile", false, "save a pprof CPU profile to cpuprof")
	rootCmd.Flags().BoolVar(&cfg.memProfile, "memprofile", false, "save a pprof heap profile to memprof")
	rootCmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address until the solve completes")
}

func run(ctx context.Context, cfg *config) error {
	runID := uuid.New()

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			return fmt.Errorf("cdclsat: could not create cpuprof: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("cdclsat: could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	s := sat.NewSolver()

	var reg *prometheus.Registry
	if cfg.metricsAddr != "" {
		reg = prometheus.NewRegistry()
		rec := metrics.NewRecorder(reg)
		s.SetStatsRecorder(rec)

		srvCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := metrics.Serve(srvCtx, cfg.metricsAddr, reg); err != nil {
				log.Printf("run %s: metrics server stopped: %s", runID, err)
			}
		}()
	}

	if err := dimacs.LoadDIMACS(cfg.instanceFile, cfg.gzipped, s); err != nil {
		return fmt.Errorf("cdclsat: could not load instance: %w", err)
	}

	log.Printf("run %s: loaded %d variables, %d clauses", runID, s.NumVariables(), s.NumClauses())

	start := time.Now()
	status := s.Solve()
	elapsed := time.Since(start)

	log.Printf("run %s: time %.3fs, decisions %d, conflicts %d, propagations %d, learned-size EMA %.2f",
		runID, elapsed.Seconds(), s.TotalDecisions, s.TotalConflicts, s.TotalPropagations, s.LearnedClauseSizeEMA())

	switch status {
	case sat.True:
		fmt.Println("SAT")
	case sat.False:
		fmt.Println("UNSAT")
	default:
		return fmt.Errorf("cdclsat: solver returned an unexpected status %s", status)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			return fmt.Errorf("cdclsat: could not create memprof: %w", err)
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("cdclsat: could not write heap profile: %w", err)
		}
	}

	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
