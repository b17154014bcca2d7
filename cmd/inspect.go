package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/diagram-zoom/internal/fit"
	"github.com/ziadkadry99/diagram-zoom/internal/inspect"
	"github.com/ziadkadry99/diagram-zoom/internal/progress"
	"github.com/ziadkadry99/diagram-zoom/internal/walker"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [dir]",
	Short: "Run the zoom lifecycle headlessly over a built site",
	Long: `Loads every HTML page of a built site (site.output_dir unless a directory
is given), runs the diagram zoom lifecycle against it with a simulated
viewport and clock, and reports how each diagram was bound and fitted.
Diagrams that never became visible, or whose bounding box could not be
measured, are flagged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Bool("interactive", false, "inspect in interactive mode, including the fullscreen overlay")
	inspectCmd.Flags().Bool("write", false, "write the processed pages back to disk")
	inspectCmd.Flags().Bool("strict", false, "exit non-zero when any diagram is flagged")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dir := cfg.Site.OutputDir
	if len(args) == 1 {
		dir = args[0]
	}
	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		cfg.Interactive = true
	}
	write, _ := cmd.Flags().GetBool("write")
	strict, _ := cmd.Flags().GetBool("strict")

	pages, err := walker.Walk(walker.Config{
		RootDir: dir,
		Kinds:   []walker.Kind{walker.HTML},
	})
	if err != nil {
		return fmt.Errorf("walking site: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no HTML pages found in %s", dir)
	}

	opts := inspect.Options{
		Zoom:           cfg.ZoomOptions(),
		ViewportWidth:  cfg.Viewport.Width,
		ViewportHeight: cfg.Viewport.Height,
		Overlay:        cfg.Interactive,
		Logger:         logger,
	}

	reporter := progress.NewReporter("Inspecting")
	reporter.Start(len(pages))
	var reports []inspect.Page
	for i, p := range pages {
		reporter.Update(i, p.RelPath)
		rep, err := inspect.File(p.Path, opts)
		if err != nil {
			reporter.Finish()
			return fmt.Errorf("inspecting %s: %w", p.RelPath, err)
		}
		rep.Path = p.RelPath
		if write && len(rep.Diagrams) > 0 {
			if err := os.WriteFile(p.Path, rep.HTML, 0o644); err != nil {
				reporter.Finish()
				return fmt.Errorf("writing %s: %w", p.RelPath, err)
			}
		}
		reports = append(reports, rep)
	}
	reporter.Update(len(pages), "")
	reporter.Finish()

	problems := printReport(cmd.OutOrStdout(), reports)
	if strict && problems > 0 {
		return fmt.Errorf("%d diagram(s) flagged", problems)
	}
	return nil
}

// printReport writes one line per diagram and a summary, and returns the
// number of flagged diagrams.
func printReport(w io.Writer, reports []inspect.Page) int {
	var diagrams, problems int
	for _, rep := range reports {
		if len(rep.Diagrams) == 0 {
			continue
		}
		fmt.Fprintln(w, styleTitle.Render(rep.Path))
		for _, d := range rep.Diagrams {
			diagrams++
			status := styleSuccess.Render("ok")
			switch {
			case !d.Bound:
				status = styleWarning.Render("unbound")
				problems++
			case d.Mode != fit.Formula:
				status = styleWarning.Render(d.Mode.String())
				problems++
			}
			fmt.Fprintf(w, "  #%d %-8s scale %-7.3f %s\n",
				d.Index, status, d.Scale,
				styleDim.Render(fmt.Sprintf("attempts=%d fits=%d controls=%d fullscreen=%v", d.Attempts, d.Fits, d.Controls, d.Trigger)),
			)
		}
		if o := rep.Overlay; o != nil {
			fmt.Fprintf(w, "  overlay  opened=%v closed=%v mode=%s scale=%.3f\n", o.Opened, o.Closed, o.Mode, o.Scale)
		}
	}
	summary := fmt.Sprintf("%d page(s), %d diagram(s), %d flagged", len(reports), diagrams, problems)
	if problems > 0 {
		fmt.Fprintln(w, styleWarning.Render(summary))
	} else {
		fmt.Fprintln(w, styleSuccess.Render(summary))
	}
	return problems
}
