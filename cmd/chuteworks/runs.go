package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chuteworks/internal/sim/levels"
	"github.com/vovakirdan/chuteworks/internal/storage"
)

var (
	flagRunsLimit  int
	flagRunsRecent bool
	flagRunsClear  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [level]",
	Short: "Show run history",
	Long: `Display the best runs for a level, ranked by blocks delivered.
Without a level, shows a summary of every level that has been played.

Examples:
  chuteworks runs
  chuteworks runs intro
  chuteworks runs intro --recent --limit 5
  chuteworks runs intro --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsRecent, "recent", false, "Show the latest runs instead of the best")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the recorded runs of the level")
}

func runRuns(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening runs database: %v", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagRunsClear {
			fail("--clear needs a level")
		}
		printStats(store)
		return
	}

	level, err := levels.NewLoader(flagLevels).LoadByID(args[0])
	title := args[0]
	switch {
	case err == nil:
		title = level.Title()
	case errors.Is(err, levels.ErrNotFound):
		// Runs of removed levels stay readable.
	default:
		fail("%v", err)
	}

	if flagRunsClear {
		if err := store.ClearRuns(args[0]); err != nil {
			fail("clearing runs: %v", err)
		}
		fmt.Printf("Cleared runs for %s.\n", title)
		return
	}

	var runs []storage.Run
	heading := "Best Runs"
	if flagRunsRecent {
		heading = "Recent Runs"
		runs, err = store.RecentRuns(args[0], flagRunsLimit)
	} else {
		runs, err = store.TopRuns(args[0], flagRunsLimit)
	}
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	fmt.Printf("%s - %s\n", heading, title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'chuteworks play %s' to record the first run!\n", args[0])
		return
	}

	fmt.Printf("  %-4s  %-6s  %-4s  %-8s  %-5s  %-12s  %s\n", "Rank", "Blocks", "Cuts", "Upgrades", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-4s  %-8s  %-5s  %-12s  %s\n", "----", "------", "----", "--------", "----", "------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-4d  %-8d  %-5s  %-12s  %s\n",
			i+1, r.Delivered, r.Cuts, r.Upgrades, formatDuration(r.Duration), r.Player,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.BestDelivered(args[0]); err == nil {
		fmt.Printf("Best: %d blocks\n", best)
	}
}

func printStats(store *storage.Store) {
	stats, err := store.Stats()
	if err != nil {
		fail("retrieving stats: %v", err)
	}

	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println("Run summary:")
	fmt.Println()
	fmt.Printf("  %-16s  %-4s  %-4s  %-6s  %s\n", "Level", "Runs", "Best", "Total", "Avg time")
	fmt.Printf("  %-16s  %-4s  %-4s  %-6s  %s\n", "-----", "----", "----", "-----", "--------")
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-16s  %-4d  %-4d  %-6d  %s\n",
			id, s.Runs, s.BestDelivered, s.TotalDelivered, formatDuration(int(s.AvgDuration)))
	}
}

// formatDuration renders seconds as m:ss.
func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
