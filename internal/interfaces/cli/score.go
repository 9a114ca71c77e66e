package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/boskovicgroup/bottchercomplexity/internal/application/scoring"
	"github.com/boskovicgroup/bottchercomplexity/internal/infrastructure/monitoring/logging"
	"github.com/boskovicgroup/bottchercomplexity/pkg/errors"
	"github.com/boskovicgroup/bottchercomplexity/pkg/sdf"
)

// metricsSourceCLI labels scores originating from the command line.
const metricsSourceCLI = "cli"

// ScoreFailure describes one record that could not be scored.
type ScoreFailure struct {
	File   string `json:"file"`
	Record int    `json:"record"`
	Name   string `json:"name,omitempty"`
	Code   string `json:"code"`
	Error  string `json:"error"`
}

// ScoreReport aggregates the outcome of one score invocation across all
// input files.
type ScoreReport struct {
	Results  []scoring.Result `json:"results"`
	Failures []ScoreFailure   `json:"failures,omitempty"`
}

// TableHeaders implements the table provider contract for --output table.
func (r *ScoreReport) TableHeaders() []string {
	return []string{"NAME", "ATOMS", "SCORE"}
}

// TableRows implements the table provider contract for --output table.
func (r *ScoreReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		name := res.Name
		if name == "" {
			name = "(unnamed)"
		}
		rows = append(rows, []string{
			name,
			strconv.Itoa(res.AtomCount),
			strconv.FormatFloat(res.Score, 'f', 4, 64),
		})
	}
	return rows
}

// String renders the report for the default text output.
func (r *ScoreReport) String() string {
	out := FormatTable(r.TableHeaders(), r.TableRows())
	if len(r.Failures) > 0 {
		out += fmt.Sprintf("\n%d record(s) failed:\n", len(r.Failures))
		for _, f := range r.Failures {
			out += fmt.Sprintf("  %s record %d [%s]: %s\n", f.File, f.Record, f.Code, f.Error)
		}
	}
	return out
}

// NewScoreCmd creates the score command.  It reads SDF streams from the
// given files, or from stdin when no files are named, and scores every
// record.  Records that fail to parse or score are reported and skipped.
func NewScoreCmd() *cobra.Command {
	var diagnostics bool

	cmd := &cobra.Command{
		Use:   "score [file...]",
		Short: "Score molecules from SDF files or stdin",
		Long:  "Score computes the Böttcher complexity of every molecule in the given\nSDF files.  With no arguments, or with \"-\", it reads from stdin.\nMalformed records are reported and skipped; the remaining records are\nstill scored.",
		Example: `  bottcher score molecules.sdf
  bottcher score --diagnostics -o json taxol.mol
  cat library.sdf | bottcher score -o table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("diagnostics") {
				diagnostics = cliCtx.Config.Scoring.Diagnostics
			}

			svc := scoring.NewService(cliCtx.Config.Scoring, cliCtx.Logger, nil)

			report := &ScoreReport{}
			if len(args) == 0 {
				args = []string{"-"}
			}
			for _, path := range args {
				if err := scoreFile(cmd, svc, path, diagnostics, report); err != nil {
					return err
				}
			}

			if err := PrintResult(cmd, report); err != nil {
				return err
			}
			if len(report.Results) == 0 && len(report.Failures) > 0 {
				return errors.Newf(errors.ErrCodeValidation,
					"no molecules scored, %d record(s) failed", len(report.Failures))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&diagnostics, "diagnostics", false,
		"include per-atom contributions in the output")

	return cmd
}

// scoreFile streams one SDF source into the report.  Per-record failures
// are collected; only I/O-level problems abort the run.
func scoreFile(cmd *cobra.Command, svc *scoring.Service, path string, diagnostics bool, report *ScoreReport) error {
	var in io.Reader
	display := path
	if path == "-" {
		in = cmd.InOrStdin()
		display = "(stdin)"
	} else {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeIO, "opening "+path)
		}
		defer f.Close()
		in = f
	}

	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	logger := cliCtx.Logger.Named("score")

	reader := sdf.NewReader(in)
	for recordNum := 1; ; recordNum++ {
		rec, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if errors.IsCode(err, errors.ErrCodeIO) {
				return err
			}
			report.Failures = append(report.Failures, failureFor(display, recordNum, "", err))
			logger.Warn("skipping unparseable record",
				logging.String("file", display),
				logging.Int("record", recordNum),
				logging.Err(err))
			continue
		}

		result, err := svc.ScoreRecord(metricsSourceCLI, rec, diagnostics)
		if err != nil {
			report.Failures = append(report.Failures, failureFor(display, recordNum, rec.Name, err))
			logger.Warn("skipping unscorable record",
				logging.String("file", display),
				logging.Int("record", recordNum),
				logging.String("name", rec.Name),
				logging.Err(err))
			continue
		}
		report.Results = append(report.Results, *result)
	}
}

func failureFor(file string, record int, name string, err error) ScoreFailure {
	return ScoreFailure{
		File:   file,
		Record: record,
		Name:   name,
		Code:   errors.GetCode(err).String(),
		Error:  err.Error(),
	}
}
