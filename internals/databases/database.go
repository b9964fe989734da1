package database

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fdp_backend/internals/configs"
)

func ConnectDB(cfg configs.Database) (*gorm.DB, error) {
	log.Println("🔌 Connecting to PostgreSQL...")

	// PgBouncer (transaction pooling) needs PreferSimpleProtocol
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(cfg),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	log.Println("✅ DB connected.")
	return db, nil
}

func TunePool(db *gorm.DB, cfg configs.Database) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}

// WarmUpQueries fills the pool in the background so the first request is not a cold one.
func WarmUpQueries(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(db); err != nil {
			log.Printf("warm-up ping err: %v", err)
			return
		}
		var n int64
		if err := db.Table("fdp_events").Where("event_status = ?", "upcoming").Count(&n).Error; err != nil {
			log.Printf("warm-up query err: %v", err)
		}
	}()
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
