package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/attachr/internal/journal"
	"github.com/mark3labs/attachr/internal/logger"
	"github.com/spf13/cobra"
)

var historyFlags struct {
	failed bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded attach submissions",
	Long: `Show every attach submission recorded in the local journal, oldest first.

Retries of an unchanged selection share an idempotency key.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyFlags.failed, "failed", false, "Only show failed submissions")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	st, err := openStore(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("closing local store: %v", err)
		}
	}()

	entries, err := st.journal.List(ctx)
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		if historyFlags.failed && e.Outcome != journal.OutcomeFailed {
			continue
		}
		key := e.IdempotencyKey
		if len(key) > 8 {
			key = key[:8]
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.Seq),
			e.At.Local().Format(time.DateTime),
			e.ProductTitle,
			strings.Join(e.VariantIDs, ", "),
			string(e.Outcome),
			key,
			e.Error,
		})
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No attach submissions recorded")
		return nil
	}
	printTable(out, []string{"#", "When", "Product", "Variants", "Outcome", "Key", "Error"}, rows)
	return nil
}
