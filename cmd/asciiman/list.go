package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List difficulty profiles",
	Long:  `Shows the configured difficulty profiles with pickup scores, ghost speeds and lock-on durations.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	profiles, err := loadProfiles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	names := profiles.Names()
	if len(names) == 0 {
		fmt.Println("No difficulty profiles configured.")
		return
	}

	fmt.Println("Difficulty profiles:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-8s  %-5s  %-7s  %s\n", "Mode", "Dot", "Special", "Ghosts (speed / lock-on)")
	fmt.Printf("  %-8s  %-5s  %-7s  %s\n", "----", "---", "-------", "------------------------")

	for _, name := range names {
		p, err := profiles.Profile(name)
		if err != nil {
			fmt.Printf("  %-8s  invalid: %v\n", name, err)
			continue
		}

		ghosts := make([]string, len(p.Ghosts))
		for i, g := range p.Ghosts {
			ghosts[i] = fmt.Sprintf("%s %v/%ds", g.Name, g.Speed, g.LockOnDuration)
		}

		marker := " "
		if strings.EqualFold(name, profiles.Default) {
			marker = "*"
		}
		fmt.Printf("%s %-8s  %-5d  %-7d  %s\n", marker, p.Name, p.RegularScore, p.SpecialScore, strings.Join(ghosts, ", "))
	}

	fmt.Println()
	fmt.Println("* default. Run 'asciiman play --difficulty <mode>' to play.")
}
