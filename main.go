// Package main is the entry point for the nhllineup CLI tool, which imports
// NHL skater season summaries and builds defensive lineups against a named
// opposing player.
package main

import "github.com/pable/go-nhl-lineup/cmd"

func main() {
	cmd.Execute()
}
