package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/narrator/internal/narration"
)

var templatesCmd = &cobra.Command{
	Use:   "templates [query]",
	Short: "List templates matching a search query",
	Long: `List the catalog templates whose category, sub-category or type contains
the query (case-insensitive). With no query every template is listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		matches := cat.Search(query)
		out := cmd.OutOrStdout()
		if len(matches) == 0 {
			fmt.Fprintln(out, "No matching application types found.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCATEGORY\tSUB-CATEGORY\tTYPE\tPLACEHOLDERS")
		for _, t := range matches {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Category, t.SubCategory, t.Type,
				strings.Join(narration.Placeholders(t.Description), " "))
		}
		return w.Flush()
	},
}
