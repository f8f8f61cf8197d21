// Package services orchestrates a load run.
//
// ImportService wires discovery, parsing, persistence and verification
// together behind the pgload.Loader contract. Files are processed one at a
// time over a single connection pool, in file name order.
package services
