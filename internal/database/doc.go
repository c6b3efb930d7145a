// Package database owns the SQLite connection and the schema.
//
// The schema is defined by the goose migrations in the migrations
// sub-package and applied on open. Per-entity data access lives in
// sub-packages (words, groups, activities, sessions, reviews, dashboard,
// reset, audit); each takes the shared *gorm.DB and scopes every call with
// the caller's context.
//
// # Usage
//
//	db, err := database.NewDatabase("./words.db")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//
//	repo := words.NewRepository(db.DB)
package database
