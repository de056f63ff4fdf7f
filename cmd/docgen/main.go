// Command docgen generates CLI reference documentation from the cuesync
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/cuesync/internal/commands"
	"github.com/colonyops/cuesync/internal/cuesync"
)

func main() {
	flags := &commands.Flags{}
	app := &cuesync.App{}

	root := &cli.Command{
		Name:      "cuesync",
		Usage:     "Sync subtitle timings on a terminal timeline",
		UsageText: "cuesync [global options] command [command options]",
		Description: `cuesync is a subtitle timing editor for the terminal.

Import an SRT file to fix its timings, or a plain text script to sync every
line live while the media plays. Drag blocks on the timeline to move or resize
subtitles; every edit can be undone and is journalled per track.

Run 'cuesync' with no arguments to open the editor on a track.
Run 'cuesync import' to add tracks.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("CUESYNC_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file (defaults to <data-dir>/cuesync.log)",
				Sources: cli.EnvVars("CUESYNC_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("CUESYNC_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "path to data directory",
				Sources: cli.EnvVars("CUESYNC_DATA_DIR"),
				Value:   commands.DefaultDataDir(),
			},
		},
	}

	editCmd := commands.NewEditCmd(flags, app)
	root.Flags = append(root.Flags, editCmd.Flags()...)

	root = editCmd.Register(root)
	root = commands.NewImportCmd(flags, app).Register(root)
	root = commands.NewExportCmd(flags, app).Register(root)
	root = commands.NewRestoreCmd(flags, app).Register(root)
	root = commands.NewLsCmd(flags, app).Register(root)
	root = commands.NewRmCmd(flags, app).Register(root)
	root = commands.NewHistoryCmd(flags, app).Register(root)
	root = commands.NewDoctorCmd(flags, app).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)
	root = commands.NewKeysCmd(flags).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating %s: %v\n", filepath.Dir(outPath), err)
		os.Exit(1)
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
