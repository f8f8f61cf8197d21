// Package manager checks for and creates the target database.
//
// It is used only when a run asks for the database to be created if it is
// missing. Statements go through pgload.DBConnection so the package has no
// dependency on the pgx pool, and database names are quoted with
// pgx.Identifier.
//
// # Example Usage
//
//	mgr := manager.New()
//	created, err := mgr.EnsureExists(ctx, maintenanceConn, "warehouse")
package manager
