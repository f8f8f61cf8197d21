// Package logging implements pgload.Logger.
//
// ConsoleLogger writes [VERBOSE] and [ERROR] prefixed lines to stderr and
// NullLogger drops everything. Previews and the run summary belong to the
// Reporter on stdout, never to a Logger.
package logging
