// Package main provides a CLI for managing multi-table inheritance views.
//
// The CLI supports:
//   - create: Synthesize the view, rules, and triggers for a parent/child pair
//   - drop: Tear the generated objects back down
//   - status: Report which generated objects currently exist
//
// Table pairs come either from lineage.yaml or from flags. Commands that
// touch the database need --db or the database section of the config.
//
// Usage:
//
//	lineage [flags] <command>
package main

func main() {
	Execute()
}
