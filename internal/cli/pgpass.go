package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/jackc/pgpassfile"

	"github.com/vvka-141/pgload/pkg/pgload"
)

// pgpassPath returns the platform-appropriate .pgpass file path.
func pgpassPath() string {
	if custom := os.Getenv("PGPASSFILE"); custom != "" {
		return custom
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "postgresql", "pgpass.conf")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pgpass")
}

// passwordSource describes where the driver will find the password for cfg.
// The password itself is never returned.
func passwordSource(cfg *pgload.ConnectionConfig) string {
	if cfg.Password != "" {
		if os.Getenv("PGPASSWORD") == cfg.Password {
			return "$PGPASSWORD"
		}
		return "connection string"
	}
	path := pgpassPath()
	if path == "" {
		return "none"
	}
	passfile, err := pgpassfile.ReadPassfile(path)
	if err != nil {
		return "none"
	}
	if passfile.FindPassword(cfg.Host, strconv.Itoa(cfg.Port), cfg.Database, cfg.Username) != "" {
		return path
	}
	return "none (no matching entry in " + path + ")"
}
