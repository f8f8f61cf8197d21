// Package files groups the file-side stages of a load run into sub-packages:
//   - filesystem: Filesystem abstraction (OS and in-memory)
//   - scanner: Discovery of input files and table name derivation
//   - reader: Decoding and parsing of delimited files into datasets
//   - loader: Replacing tables from datasets and reading them back
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/pgload/internal/files/loader"
//	    "github.com/vvka-141/pgload/internal/files/reader"
//	    "github.com/vvka-141/pgload/internal/files/scanner"
//	)
//
//	result, err := scanner.NewScanner().Scan("./exports", ".csv")
//
//	r, err := reader.New("latin1", ',')
//	ds, err := r.Read(result.Files[0])
//
//	store := loader.NewStore()
//	n, err := store.Replace(ctx, pool, pgload.TableRef{Schema: "public", Name: result.Files[0].TableName}, ds, "")
package files
