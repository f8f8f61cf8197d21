// Package loader materializes parsed datasets as PostgreSQL tables and reads
// them back.
//
// Each table is replaced inside a single transaction: the old table is
// dropped, a new one is created from the dataset's inferred column types, the
// rows are written with COPY, and a table comment records where the data came
// from. Readers either see the previous table or the complete new one.
//
// Identifiers are always quoted, so table names keep the exact spelling
// derived from the file name.
package loader
