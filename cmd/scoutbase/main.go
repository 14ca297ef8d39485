// Package main provides the scoutbase CLI: a local-first store for FIRST
// Robotics event and match scouting data across seasons.
package main

import (
	"fmt"
	"os"

	// Season adapters register their factories at init.
	_ "github.com/frc-tools/scoutbase/internal/game/deepspace"
	_ "github.com/frc-tools/scoutbase/internal/game/powerup"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
