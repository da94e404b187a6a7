package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chuteworks/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels and figure shapes",
	Long:  `Shows the available levels and the figure shapes registered for spawning.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	lvls, err := loadLevels()
	if err != nil {
		fail("%v", err)
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "ID", "Size", "Tools", "Title")
	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "--", "----", "-----", "-----")

	for _, l := range lvls {
		tools := ""
		if l.Saw != nil {
			tools += "S"
		}
		if l.Rotator != nil {
			tools += "R"
		}
		if l.Transmuter != nil {
			tools += "T"
		}
		if tools == "" {
			tools = "-"
		}
		size := fmt.Sprintf("%dx%d", l.Geometry.Width, l.Geometry.Height)
		fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, l.ID, size, tools, l.Title())
	}

	shapes := registry.List()
	if len(shapes) > 0 {
		fmt.Println()
		fmt.Println("Figure shapes:")
		fmt.Println()
		for _, s := range shapes {
			fmt.Printf("  %-10s  %-12s  %d blocks, %dx%d\n", s.ID, s.Title, s.Blocks, s.Width, s.Height)
		}
	}

	fmt.Println()
	fmt.Println("Run 'chuteworks play <id>' to play a level.")
}
