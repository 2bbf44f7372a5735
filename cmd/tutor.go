package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lashon-study/lashon/internal/store"
	"github.com/lashon-study/lashon/internal/tutor"
	"github.com/lashon-study/lashon/internal/vocab"
)

var tutorCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Ask the tutor or inspect its LLM requests",
}

var tutorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent tutor requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		e, err := setup(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.store.EventRepo().QueryTutorEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No tutor events found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-12s  %-24s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 96))

		for _, ev := range events {
			ok := "✓"
			if !ev.Success {
				ok = "✗"
			}
			model := ev.Model
			if len(model) > 24 {
				model = model[:24]
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-12s  %-24s  %-6d  %-6d  %-7d  %s\n",
				ev.ID,
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.Purpose,
				model,
				ev.InputTokens,
				ev.OutputTokens,
				ev.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var tutorViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request and response of a tutor event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		e, err := setup(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		ev, err := e.store.EventRepo().GetTutorEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if ev == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)
		fmt.Fprintf(out, "ID:        %d\n", ev.ID)
		fmt.Fprintf(out, "Time:      %s\n", ev.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Provider:  %s\n", ev.Provider)
		fmt.Fprintf(out, "Model:     %s\n", ev.Model)
		fmt.Fprintf(out, "Purpose:   %s\n", ev.Purpose)
		fmt.Fprintf(out, "Tokens:    %d in / %d out\n", ev.InputTokens, ev.OutputTokens)
		fmt.Fprintf(out, "Latency:   %dms\n", ev.LatencyMs)
		fmt.Fprintf(out, "Success:   %v\n", ev.Success)
		if ev.ErrorMessage != "" {
			fmt.Fprintf(out, "Error:     %s\n", ev.ErrorMessage)
		}

		for _, part := range []struct{ title, body string }{
			{"REQUEST", ev.RequestBody},
			{"RESPONSE", ev.ResponseBody},
		} {
			fmt.Fprintln(out)
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, part.title)
			fmt.Fprintln(out, sep)
			if part.body == "" {
				fmt.Fprintln(out, "(not captured)")
			} else {
				fmt.Fprintln(out, part.body)
			}
		}
		return nil
	},
}

var tutorStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated tutor token usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.store.EventRepo().QueryTutorEvents(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		type agg struct {
			calls, failed, in, out int
			latency                int64
		}
		byModel := make(map[string]*agg)
		var models []string
		for _, ev := range events {
			a, ok := byModel[ev.Model]
			if !ok {
				a = &agg{}
				byModel[ev.Model] = a
				models = append(models, ev.Model)
			}
			a.calls++
			if !ev.Success {
				a.failed++
			}
			a.in += ev.InputTokens
			a.out += ev.OutputTokens
			a.latency += ev.LatencyMs
		}

		out := cmd.OutOrStdout()
		if len(models) == 0 {
			fmt.Fprintln(out, "No tutor events found.")
			return nil
		}
		fmt.Fprintf(out, "%-28s  %-6s  %-6s  %-8s  %-8s  %s\n", "Model", "Calls", "Failed", "In", "Out", "Avg ms")
		fmt.Fprintln(out, strings.Repeat("─", 76))
		for _, m := range models {
			a := byModel[m]
			fmt.Fprintf(out, "%-28s  %-6d  %-6d  %-8d  %-8d  %d\n", m, a.calls, a.failed, a.in, a.out, a.latency/int64(a.calls))
		}
		return nil
	},
}

var tutorExplainCmd = &cobra.Command{
	Use:   "explain <word>",
	Short: "Ask the tutor to explain a dictionary word",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, envOptions{withTutor: true})
		if err != nil {
			return err
		}
		defer e.Close()

		word := strings.Join(args, " ")
		entry, ok := findEntry(e.pool, word)
		if !ok {
			return fmt.Errorf("%q is not in the dictionary", word)
		}

		x, err := e.tutor.Explain(cmd.Context(), entry, "")
		if errors.Is(err, tutor.ErrDisabled) {
			return fmt.Errorf("%w: set an LLM API key (e.g. GEMINI_API_KEY) or tutor.provider in config", err)
		}
		if err != nil {
			return fmt.Errorf("explain %s: %w", entry.Headword, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s) - %s\n\n", entry.Headword, entry.Translit, entry.Gloss)
		fmt.Fprintf(out, "Example: %s\n         %s\n", x.Example, x.ExampleTranslation)
		if x.Tip != "" {
			fmt.Fprintf(out, "\nTip: %s\n", x.Tip)
		}
		return nil
	},
}

// findEntry prefers an exact headword, transliteration, or gloss match and
// falls back to the first substring match.
func findEntry(p *vocab.Pool, word string) (vocab.Entry, bool) {
	matches := p.Search("", word)
	if len(matches) == 0 {
		return vocab.Entry{}, false
	}
	w := strings.ToLower(strings.TrimSpace(word))
	for _, en := range matches {
		if en.Headword == word || strings.EqualFold(en.Translit, w) || strings.EqualFold(en.Gloss, w) {
			return en, true
		}
	}
	return matches[0], true
}

func init() {
	tutorListCmd.Flags().Int("limit", 20, "Maximum number of events to show")
	tutorListCmd.Flags().String("purpose", "", "Filter by purpose")

	tutorCmd.AddCommand(tutorListCmd)
	tutorCmd.AddCommand(tutorViewCmd)
	tutorCmd.AddCommand(tutorStatsCmd)
	tutorCmd.AddCommand(tutorExplainCmd)
}
