package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/collab-radar/internal/export"
	"github.com/sells-group/collab-radar/internal/model"
)

var (
	exportFormat string
	exportRunID  string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a recorded research run as CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		var run *model.ResearchRun
		if exportRunID != "" {
			run, err = env.Service.GetRun(cmd.Context(), exportRunID)
		} else {
			run, err = env.Service.LastRun(cmd.Context())
		}
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = format.Filename()
		}
		f, err := os.Create(out)
		if err != nil {
			return eris.Wrapf(err, "create %s", out)
		}
		defer f.Close()

		if err := export.Write(f, format, run.Results); err != nil {
			return err
		}
		zap.L().Info("export written",
			zap.String("run_id", run.ID),
			zap.String("file", out),
			zap.Int("records", len(run.Results)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "export format: csv or xlsx")
	exportCmd.Flags().StringVar(&exportRunID, "run-id", "", "run to export (default: most recent)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default: evidence.<format>)")
	rootCmd.AddCommand(exportCmd)
}
