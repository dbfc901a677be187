// Package main is the entry point for the ns2stat CLI, which aggregates
// Natural Selection 2 round records into player and map statistics.
package main

import "github.com/pable/ns2-stats/cmd"

func main() {
	cmd.Execute()
}
