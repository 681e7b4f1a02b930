package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/academy/internal/llm"
	"github.com/abhisek/academy/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the generation call log",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generation calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.Since = time.Now().Add(-since)
		}
		calls, err := e.calls.Recent(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query calls: %w", err)
		}

		if len(calls) == 0 {
			fmt.Println("No generation calls found.")
			return nil
		}

		fmt.Printf("%-5s  %-16s  %-10s  %-20s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "When", "Purpose", "Lesson", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 120))

		for _, c := range calls {
			ok := "✓"
			if !c.Success {
				ok = "✗"
			}
			fmt.Printf("%-5d  %-16s  %-10s  %-20s  %-28s  %-6d  %-6d  %-7d  %s\n",
				c.ID,
				humanize.Time(c.Timestamp),
				c.Purpose,
				truncate(c.LessonID, 20),
				truncate(c.Model, 28),
				c.InputTokens,
				c.OutputTokens,
				c.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request and response of a call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		c, err := e.calls.Get(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get call: %w", err)
		}
		if c == nil {
			return fmt.Errorf("call %d not found", id)
		}

		sep := strings.Repeat("─", 60)

		fmt.Printf("ID:        %d\n", c.ID)
		fmt.Printf("Time:      %s (%s)\n", c.Timestamp.Local().Format("2006-01-02 15:04:05"), humanize.Time(c.Timestamp))
		fmt.Printf("Session:   %s\n", c.SessionID)
		fmt.Printf("Provider:  %s\n", c.Provider)
		fmt.Printf("Model:     %s\n", c.Model)
		fmt.Printf("Purpose:   %s\n", c.Purpose)
		if c.LessonID != "" {
			fmt.Printf("Lesson:    %s\n", c.LessonID)
		}
		fmt.Printf("Tokens:    %s in / %s out\n", humanize.Comma(int64(c.InputTokens)), humanize.Comma(int64(c.OutputTokens)))
		fmt.Printf("Latency:   %dms\n", c.LatencyMs)
		fmt.Printf("Success:   %v\n", c.Success)
		if c.ErrorMessage != "" {
			fmt.Printf("Error:     %s\n", c.ErrorMessage)
		}

		fmt.Println()
		fmt.Println(sep)
		fmt.Println("REQUEST")
		fmt.Println(sep)
		fmt.Println(orNotCaptured(c.RequestBody))

		fmt.Println(sep)
		fmt.Println("RESPONSE")
		fmt.Println(sep)
		fmt.Println(orNotCaptured(c.ResponseBody))
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		byPurpose, err := e.calls.UsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		if len(byPurpose) == 0 {
			fmt.Println("No generation usage recorded yet.")
			return nil
		}

		fmt.Println("Usage by Purpose")
		fmt.Println(strings.Repeat("─", 80))
		fmt.Printf("%-12s  %6s  %6s  %10s  %10s  %10s  %8s\n",
			"Purpose", "Calls", "Failed", "Input", "Output", "Total", "Avg Ms")
		fmt.Println(strings.Repeat("─", 80))

		var total store.Usage
		for _, u := range byPurpose {
			fmt.Printf("%-12s  %6d  %6d  %10s  %10s  %10s  %8d\n",
				u.Key, u.Calls, u.Failures,
				comma(u.InputTokens), comma(u.OutputTokens), comma(u.InputTokens+u.OutputTokens),
				u.AvgLatencyMs)
			total.Calls += u.Calls
			total.Failures += u.Failures
			total.InputTokens += u.InputTokens
			total.OutputTokens += u.OutputTokens
		}

		fmt.Println(strings.Repeat("─", 80))
		fmt.Printf("%-12s  %6d  %6d  %10s  %10s  %10s\n",
			"TOTAL", total.Calls, total.Failures,
			comma(total.InputTokens), comma(total.OutputTokens), comma(total.InputTokens+total.OutputTokens))

		byModel, err := e.calls.UsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Println("Estimated Cost (USD)")
		fmt.Println(strings.Repeat("─", 80))
		fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n",
			"Model", "Calls", "Input", "Output", "Cost")
		fmt.Println(strings.Repeat("─", 80))

		var totalCost float64
		var unknownModels []string
		for _, mu := range byModel {
			cost := llm.LookupCost(mu.Key)
			if cost == nil {
				unknownModels = append(unknownModels, mu.Key)
				fmt.Printf("%-32s  %6d  %10s  %10s  %10s\n",
					truncate(mu.Key, 32), mu.Calls, comma(mu.InputTokens), comma(mu.OutputTokens), "?")
				continue
			}
			c := cost.Cost(mu.InputTokens, mu.OutputTokens)
			totalCost += c
			fmt.Printf("%-32s  %6d  %10s  %10s  %10s\n",
				truncate(mu.Key, 32), mu.Calls, comma(mu.InputTokens), comma(mu.OutputTokens), formatCost(c))
		}

		fmt.Println(strings.Repeat("─", 80))
		label := "TOTAL"
		if len(unknownModels) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))

		if len(unknownModels) > 0 {
			fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
		}
		return nil
	},
}

var llmPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete logged calls older than a given age",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		age, _ := cmd.Flags().GetDuration("older-than")
		if age <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		cutoff := time.Now().Add(-age)
		n, err := e.calls.Prune(cmd.Context(), cutoff)
		if err != nil {
			return err
		}
		e.logger.Info("pruned call log", zap.Int64("removed", n), zap.Time("cutoff", cutoff))
		fmt.Printf("Removed %s calls recorded before %s.\n", humanize.Comma(n), humanize.Time(cutoff))
		return nil
	},
}

func orNotCaptured(s string) string {
	if s == "" {
		return "(not captured)"
	}
	return s
}

func comma(n int) string {
	return humanize.Comma(int64(n))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (quiz, assignment, explain, chat, notes)")
	llmListCmd.Flags().Duration("since", 0, "Only show calls newer than this, e.g. 24h")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "Age of the oldest call to keep")

	llmCmd.AddCommand(llmStatsCmd)
	llmCmd.AddCommand(llmPruneCmd)
}
