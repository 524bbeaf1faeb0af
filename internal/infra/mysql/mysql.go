package mysql

import (
	"context"
	"fmt"
	"time"

	"storefront-service/internal/config"
	"storefront-service/internal/domain"
	"storefront-service/internal/infra"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models is every table the gorm store migrates.
var Models = []any{
	&domain.User{},
	&domain.PasswordReset{},
	&domain.Category{},
	&domain.Product{},
	&domain.Order{},
	&domain.Review{},
	&domain.Sale{},
	&domain.Blog{},
	&domain.Project{},
	&domain.Testimonial{},
}

func DSN(cfg config.MySQL) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.Params)
}

// Open connects with the configured retry budget, sizes the pool and
// migrates the schema.
func Open(ctx context.Context, cfg config.MySQL, retry config.Retry) (*gorm.DB, error) {
	var db *gorm.DB
	err := infra.Retry(ctx, "mysql", retry.Attempts, retry.Backoff, func(ctx context.Context) error {
		gdb, err := gorm.Open(mysql.Open(DSN(cfg)), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Warn),
			TranslateError: true,
		})
		if err != nil {
			return err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return err
		}
		db = gdb
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mysql connect: %w", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := db.WithContext(ctx).AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("mysql migrate: %w", err)
	}
	return db, nil
}
