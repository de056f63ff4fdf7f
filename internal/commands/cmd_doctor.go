package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/cuesync/internal/core/doctor"
	"github.com/colonyops/cuesync/internal/core/styles"
	"github.com/colonyops/cuesync/internal/cuesync"
	"github.com/colonyops/cuesync/pkg/iojson"
)

type DoctorCmd struct {
	flags   *Flags
	app     *cuesync.App
	format  string
	autofix bool
}

func NewDoctorCmd(flags *Flags, app *cuesync.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "doctor",
		Usage:     "Check config, database, tools and stored tracks",
		UsageText: "cuesync doctor [options]",
		Description: `Runs diagnostic checks and exits 1 when any check fails.

Track checks verify the timing invariants the editor maintains: subtitles in
order, no overlaps, minimum duration, nothing past the media end. Overlaps
and short subtitles can be repaired with --autofix.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "autofix",
				Usage:       "trim overlapping subtitles and extend short ones",
				Destination: &cmd.autofix,
			},
		},
		Action: cmd.run,
	})
	return app
}

type doctorReport struct {
	Healthy bool            `json:"healthy"`
	Passed  int             `json:"passed"`
	Warned  int             `json:"warned"`
	Failed  int             `json:"failed"`
	Fixable int             `json:"fixable"`
	Checks  []doctor.Result `json:"checks"`
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := cmd.app.Doctor.RunChecks(ctx, cmd.flags.ConfigPath, cmd.autofix)

	passed, warned, failed := doctor.Summary(results)
	report := doctorReport{
		Healthy: failed == 0,
		Passed:  passed,
		Warned:  warned,
		Failed:  failed,
		Fixable: doctor.CountFixable(results),
		Checks:  results,
	}

	switch cmd.format {
	case "json":
		if err := iojson.WriteLine(c.Root().Writer, report); err != nil {
			return err
		}
	case "", "text":
		writeDoctorReport(c.Root().Writer, report, cmd.autofix)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", cmd.format)
	}

	if !report.Healthy {
		return cli.Exit("", 1)
	}
	return nil
}

var doctorIcons = map[doctor.Status]struct {
	glyph string
	style *lipgloss.Style
}{
	doctor.StatusPass: {"✔", &styles.NoticeInfoStyle},
	doctor.StatusWarn: {"●", &styles.NoticeWarnStyle},
	doctor.StatusFail: {"✘", &styles.NoticeErrorStyle},
}

func writeDoctorReport(w io.Writer, r doctorReport, autofix bool) {
	_, _ = fmt.Fprintln(w, styles.CommandHeaderStyle.Render("cuesync doctor"))
	_, _ = fmt.Fprintln(w, styles.DividerStyle.Render(strings.Repeat("─", 40)))

	for _, result := range r.Checks {
		_, _ = fmt.Fprintf(w, "\n%s\n", styles.ModalTitleStyle.Render(result.Name))
		for _, item := range result.Items {
			icon := doctorIcons[item.Status]
			line := "  " + icon.style.Render(icon.glyph) + " " + item.Label
			if item.Detail != "" {
				line += " " + styles.DividerStyle.Render(item.Detail)
			}
			_, _ = fmt.Fprintln(w, line)
		}
	}

	_, _ = fmt.Fprintf(w, "\n%s  %s  %s\n",
		styles.NoticeInfoStyle.Render(fmt.Sprintf("%d passed", r.Passed)),
		styles.NoticeWarnStyle.Render(fmt.Sprintf("%d warnings", r.Warned)),
		styles.NoticeErrorStyle.Render(fmt.Sprintf("%d failed", r.Failed)),
	)

	if !autofix && r.Fixable > 0 {
		_, _ = fmt.Fprintln(w, styles.DividerStyle.Render(
			fmt.Sprintf("Run 'cuesync doctor --autofix' to fix %d issue(s)", r.Fixable)))
	}
}
