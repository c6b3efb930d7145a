package cli

import (
	"fmt"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/langportal/internal/database"
)

// openDatabase opens and migrates the portal database with SQL logging off.
func openDatabase(path string) (*database.Database, error) {
	db, err := database.NewDatabase(path, database.WithLogLevel(logger.Silent))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
