// Package main hosts the ytdlx CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves queries to classified format sets,
// renders them as JSON or tables, and exposes the supporting pieces (search,
// offline classification, stream probing, dependency checks, lookup history,
// configuration scaffolding). Wiring of config, logging, the binary locator,
// the extractor runner, and the history store lives in commandContext so
// subcommands only deal with presentation.
package main
