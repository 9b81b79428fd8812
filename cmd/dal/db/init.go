package db

import (
	"context"
	"time"

	"VidTube.com/cmd/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormopentracing "gorm.io/plugin/opentracing"
)

var ErrNoRowsAffected = errors.New("no rows affected")

// Store 持有数据库句柄 通过依赖注入传递 不使用全局变量
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects to MySQL with query tracing enabled.
func Open(dsn string, maxOpenConns, maxIdleConns int) (*gorm.DB, error) {
	DB, err := gorm.Open(mysql.Open(dsn),
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			TranslateError:         true,
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}
	if err = DB.Use(gormopentracing.New()); err != nil {
		return nil, errors.Wrap(err, "use opentracing plugin")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, err
	}
	if maxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(maxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return DB, nil
}

func (s *Store) AutoMigrate() error {
	err := s.db.AutoMigrate(
		&model.User{},
		&model.WatchHistory{},
		&model.Video{},
		&model.Comment{},
		&model.Tweet{},
		&model.Like{},
		&model.Subscription{},
		&model.Playlist{},
		&model.PlaylistVideo{},
	)
	if err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	logrus.Info("database schema migrated")
	return nil
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fn against a Store bound to a single transaction.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func mustAffect(tx *gorm.DB, what string) error {
	if tx.Error != nil {
		return errors.Wrapf(tx.Error, "%s", what)
	}
	if tx.RowsAffected == 0 {
		return errors.Wrapf(ErrNoRowsAffected, "%s", what)
	}
	return nil
}
