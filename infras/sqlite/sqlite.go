package sqlite

//nolint:revive
import (
	"fmt"
	"os"
	"path/filepath"

	"clinicbook/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

type Connection struct {
	DB *sqlx.DB
}

// New opens the SQLite database file, creating its directory when missing.
// WAL mode keeps the availability reads from blocking behind booking writes.
func New(config *config.Config) *Connection {
	path := config.Storage.SQLite.Path

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("Failed to create database directory")
		}
	}

	dsn := fmt.Sprintf(
		"file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=%d",
		path,
		config.Storage.SQLite.BusyTimeoutMillis,
	)

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to open SQLite database")
	}

	// SQLite allows one writer at a time; cap the pool accordingly.
	maxOpen := config.Storage.SQLite.MaxOpenConnections
	if maxOpen <= 0 {
		maxOpen = 1
	}

	db.SetMaxOpenConns(maxOpen)

	log.Info().
		Str("path", path).
		Msg("Connected to SQLite database")

	return &Connection{DB: db}
}
