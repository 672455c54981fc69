// Package main hosts the discovery CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the catalog: source imports, manual
// adds with duplicate prompts, ratings, wishlist upkeep, backups, and status
// reporting. It centralizes configuration resolution, store access, and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
