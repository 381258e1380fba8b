// Package categorize handles category tag lookups
package categorize

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/finflow/cmd/root"
	"fjacquet/finflow/internal/categorizer"

	"github.com/spf13/cobra"
)

var list bool

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize [tag...]",
	Short: "Resolve statement tags to categories",
	Long: `Show the category a statement tag (such as "#Food" or "#Money Sent") resolves to,
using the configured category mappings. With --list, print every mapping.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		if !list && len(args) == 0 {
			return fmt.Errorf("at least one tag is required unless --list is given")
		}
		return Run(c.GetTagMap(), args, list, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().BoolVarP(&list, "list", "l", false, "List all category mappings")
}

// Run writes the category of each tag, or the whole table when all is set.
func Run(tags categorizer.TagMap, args []string, all bool, out io.Writer) error {
	if all {
		for _, tag := range tags.Tags() {
			category, _ := tags.Lookup(tag)
			if _, err := fmt.Fprintf(out, "%s\t%s\n", tag, category); err != nil {
				return err
			}
		}
		return nil
	}

	for _, arg := range args {
		tag := strings.TrimPrefix(strings.TrimSpace(arg), "#")
		if _, err := fmt.Fprintf(out, "%s\t%s\n", arg, tags.Canonical(tag)); err != nil {
			return err
		}
	}
	return nil
}
