package commands

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/cuesync/internal/core/config"
	"github.com/colonyops/cuesync/internal/core/styles"
	"github.com/colonyops/cuesync/pkg/iojson"
)

type KeysCmd struct {
	flags *Flags

	// flags
	raw bool
}

// NewKeysCmd creates a new keys command
func NewKeysCmd(flags *Flags) *KeysCmd {
	return &KeysCmd{flags: flags}
}

// Register adds the keys command to the application
func (cmd *KeysCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "keys",
		Usage:       "Show the effective keybindings",
		UsageText:   "cuesync keys [--raw]",
		Description: "Prints the built-in keybindings merged with the ones from the config file.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print markdown without rendering",
				Destination: &cmd.raw,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *KeysCmd) run(_ context.Context, c *cli.Command) error {
	doc := keybindingsMarkdown(cmd.flags.Config.Keybindings)
	out := c.Root().Writer

	if cmd.raw || !iojson.IsTerminal(os.Stdout) {
		_, err := fmt.Fprint(out, doc)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	rendered, err := renderer.Render(doc)
	if err != nil {
		return fmt.Errorf("render keybindings: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

// keybindingsMarkdown renders one table per context, default first.
func keybindingsMarkdown(bindings map[string]map[string]config.Keybinding) string {
	contexts := make([]string, 0, len(bindings))
	for ctx := range bindings {
		contexts = append(contexts, ctx)
	}
	slices.SortFunc(contexts, func(a, b string) int {
		switch {
		case a == config.ContextDefault:
			return -1
		case b == config.ContextDefault:
			return 1
		}
		return strings.Compare(a, b)
	})

	var sb strings.Builder
	sb.WriteString("# Keybindings\n")
	for _, ctx := range contexts {
		keys := make([]string, 0, len(bindings[ctx]))
		for k := range bindings[ctx] {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, func(a, b string) int {
			if c := strings.Compare(bindings[ctx][a].Action, bindings[ctx][b].Action); c != 0 {
				return c
			}
			return strings.Compare(a, b)
		})

		fmt.Fprintf(&sb, "\n## %s\n\n| Key | Action | Help |\n|---|---|---|\n", ctx)
		for _, k := range keys {
			kb := bindings[ctx][k]
			fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", strings.ReplaceAll(k, "|", "\\|"), kb.Action, kb.Help)
		}
	}
	return sb.String()
}
