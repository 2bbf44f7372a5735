package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lashon-study/lashon/internal/vocab"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List dictionary words",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		search, _ := cmd.Flags().GetString("search")
		listCats, _ := cmd.Flags().GetBool("categories")

		e, err := setup(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		if listCats {
			for _, c := range e.pool.Categories() {
				fmt.Fprintf(out, "%-16s %d\n", c, len(e.pool.ByCategory(c)))
			}
			return nil
		}
		printWords(out, e.pool.Search(category, search))
		return nil
	},
}

func init() {
	wordsCmd.Flags().String("category", "", "Only show this category")
	wordsCmd.Flags().String("search", "", "Filter by Hebrew, transliteration, or meaning")
	wordsCmd.Flags().Bool("categories", false, "List categories with word counts")
}

func printWords(out io.Writer, entries []vocab.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No words found.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tHebrew\tTranslit\tMeaning\tCategory")
	fmt.Fprintln(tw, strings.Repeat("─", 4)+"\t"+strings.Repeat("─", 8)+"\t"+strings.Repeat("─", 10)+"\t"+strings.Repeat("─", 16)+"\t"+strings.Repeat("─", 10))
	for _, en := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", en.ID, en.Headword, en.Translit, en.Gloss, en.Category)
	}
	_ = tw.Flush()
	fmt.Fprintf(out, "\n%d words\n", len(entries))
}
