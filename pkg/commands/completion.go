package commands

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(cardboard completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(cardboard completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// stored loads the dashboard without logging or applying the override.
func stored(ctx context.Context) (store.Persistence, *card.Document, bool) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, false
	}
	p, err := store.Open(cfg)
	if err != nil {
		return nil, nil, false
	}
	d := card.New()
	if _, err := p.Load(ctx, d); err != nil && !errors.Is(err, store.ErrNotRewritten) {
		return nil, nil, false
	}
	return p, d, true
}

func sectionCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	_, d, ok := stored(context.Background())
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, id := range d.SectionIDs() {
		if strings.HasPrefix(id, toComplete) {
			title := d.SectionTitles[id]
			out = append(out, id+"\t"+title)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func backupCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := context.Background()
	p, _, ok := stored(ctx)
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, b := range p.Backups(ctx) {
		if strings.HasPrefix(b.Name, toComplete) {
			out = append(out, b.Name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
