// Package checksum hashes file content and in-memory datasets.
//
// Two digests are produced:
//
//   - Raw: SHA-256 of a file's bytes, recorded alongside the loaded table
//   - Dataset: an order-independent SHA-256 over column names and rows
//
// The dataset digest hashes each row on its own using a canonical, typed
// value encoding, sorts the row digests, and hashes the column names
// followed by the sorted digests. Two datasets with the same columns and the
// same multiset of rows hash identically whatever their row order, which
// lets a readback of a freshly written table be compared with the parsed
// source even though SELECT * guarantees no ordering.
//
// # Example Usage
//
//	calculator := checksum.New()
//	raw := calculator.CalculateRaw(fileContent)
//	sum := calculator.CalculateDataset(ds)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
