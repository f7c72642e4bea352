package store

import (
	"github.com/pkg/errors"

	"github.com/talkincode/craftstore/config"
)

// Open selects the storage backend from configuration. This is the only
// place a backend type is decided; everything downstream sees Database.
func Open(cfg config.DBConfig, workdir string) (Database, error) {
	switch cfg.Type {
	case "postgres", "postgresql", "sqlite", "sqlite3":
		return NewGormDatabase(cfg, workdir)
	case "bolt", "boltdb", "":
		return NewBoltDatabase(cfg.Name, workdir)
	default:
		return nil, errors.Errorf("unsupported database type %q", cfg.Type)
	}
}
