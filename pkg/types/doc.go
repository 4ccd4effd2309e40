// Package types defines the configuration, corpus records and standard
// errors shared by the cldflex conversion pipeline.
//
// The records mirror the tables cldflex writes: texts, examples, wordforms
// (including clitics), example parts and wordform parts. Each record has a
// fixed core plus an explicit extension map for passthrough columns taken
// from the source document.
package types
