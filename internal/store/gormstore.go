package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/talkincode/craftstore/config"
	"github.com/talkincode/craftstore/internal/domain"
)

// gormDatabase backs the store contract with a relational engine through
// gorm: postgres for hosted deployments, sqlite for the embedded file DB.
type gormDatabase struct {
	db *gorm.DB
}

// NewGormDatabase opens the relational backend described by cfg and migrates
// the schema. The sqlite file lives under workdir/data.
func NewGormDatabase(cfg config.DBConfig, workdir string) (Database, error) {
	level := gormlogger.Silent
	if cfg.Debug {
		level = gormlogger.Info
	}
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(level)}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Type {
	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			cfg.Host, cfg.User, cfg.Passwd, cfg.Name, cfg.Port)
		db, err = gorm.Open(postgres.Open(dsn), gcfg)
	case "sqlite", "sqlite3":
		if merr := os.MkdirAll(filepath.Join(workdir, "data"), 0o755); merr != nil {
			return nil, errors.Wrap(merr, "create data dir")
		}
		dbfile := filepath.Join(workdir, "data", cfg.Name+".db")
		db, err = gorm.Open(sqlite.Open(dbfile), gcfg)
	default:
		return nil, errors.Errorf("unsupported relational database type %q", cfg.Type)
	}
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	if sqlDB, serr := db.DB(); serr == nil {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
	}

	if err := db.Migrator().AutoMigrate(domain.Tables...); err != nil {
		return nil, errors.Wrap(err, "migrate schema")
	}
	zap.S().Infof("database connection successful, type: %s", cfg.Type)
	return &gormDatabase{db: db}, nil
}

func (g *gormDatabase) Products() ProductStore     { return (*gormProducts)(g) }
func (g *gormDatabase) Categories() CategoryStore  { return (*gormCategories)(g) }
func (g *gormDatabase) Orders() OrderStore         { return (*gormOrders)(g) }
func (g *gormDatabase) Admins() AdminStore         { return (*gormAdmins)(g) }
func (g *gormDatabase) Settings() SettingsStore    { return (*gormSettings)(g) }

func (g *gormDatabase) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return errors.Wrap(err, what)
}

type gormProducts gormDatabase

func (s *gormProducts) Create(ctx context.Context, p *domain.Product) error {
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	return errors.Wrap(s.db.WithContext(ctx).Create(p).Error, "create product")
}

func (s *gormProducts) Get(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFoundOr(err, "query product")
	}
	return &p, nil
}

func (s *gormProducts) List(ctx context.Context, category string) ([]domain.Product, error) {
	q := s.db.WithContext(ctx).Model(&domain.Product{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var rows []domain.Product
	if err := q.Order("id DESC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	return rows, nil
}

func (s *gormProducts) Update(ctx context.Context, p *domain.Product) error {
	var existing domain.Product
	if err := s.db.WithContext(ctx).Where("id = ?", p.ID).First(&existing).Error; err != nil {
		return notFoundOr(err, "query product")
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	return errors.Wrap(s.db.WithContext(ctx).Save(p).Error, "update product")
}

func (s *gormProducts) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormCategories gormDatabase

func (s *gormCategories) Create(ctx context.Context, cat *domain.Category) error {
	now := time.Now()
	cat.CreatedAt, cat.UpdatedAt = now, now
	return errors.Wrap(s.db.WithContext(ctx).Create(cat).Error, "create category")
}

func (s *gormCategories) Get(ctx context.Context, id int64) (*domain.Category, error) {
	var cat domain.Category
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&cat).Error; err != nil {
		return nil, notFoundOr(err, "query category")
	}
	return &cat, nil
}

func (s *gormCategories) List(ctx context.Context) ([]domain.Category, error) {
	var rows []domain.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "query categories")
	}
	return rows, nil
}

func (s *gormCategories) Update(ctx context.Context, cat *domain.Category) error {
	var existing domain.Category
	if err := s.db.WithContext(ctx).Where("id = ?", cat.ID).First(&existing).Error; err != nil {
		return notFoundOr(err, "query category")
	}
	cat.CreatedAt = existing.CreatedAt
	cat.UpdatedAt = time.Now()
	return errors.Wrap(s.db.WithContext(ctx).Save(cat).Error, "update category")
}

func (s *gormCategories) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Category{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete category")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormOrders gormDatabase

func (s *gormOrders) Create(ctx context.Context, o *domain.Order) error {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	return errors.Wrap(s.db.WithContext(ctx).Create(o).Error, "create order")
}

func (s *gormOrders) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, notFoundOr(err, "query order")
	}
	return &o, nil
}

func (s *gormOrders) List(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	q := s.db.WithContext(ctx).Model(&domain.Order{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if !filter.From.IsZero() {
		q = q.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("created_at <= ?", filter.To)
	}
	var rows []domain.Order
	if err := q.Order("id DESC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "query orders")
	}
	return rows, nil
}

type gormAdmins gormDatabase

func (s *gormAdmins) Create(ctx context.Context, opr *domain.SysOpr) error {
	now := time.Now()
	opr.CreatedAt, opr.UpdatedAt = now, now
	return errors.Wrap(s.db.WithContext(ctx).Create(opr).Error, "create operator")
}

func (s *gormAdmins) GetByUsername(ctx context.Context, username string) (*domain.SysOpr, error) {
	var opr domain.SysOpr
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&opr).Error; err != nil {
		return nil, notFoundOr(err, "query operator")
	}
	return &opr, nil
}

func (s *gormAdmins) Update(ctx context.Context, opr *domain.SysOpr) error {
	opr.UpdatedAt = time.Now()
	return errors.Wrap(s.db.WithContext(ctx).Save(opr).Error, "update operator")
}

func (s *gormAdmins) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.SysOpr{}).Count(&n).Error
	return n, errors.Wrap(err, "count operators")
}

type gormSettings gormDatabase

func (s *gormSettings) Get(ctx context.Context, category, name string) (string, error) {
	var cfg domain.SysConfig
	err := s.db.WithContext(ctx).Where("type = ? and name = ?", category, name).First(&cfg).Error
	if err != nil {
		return "", notFoundOr(err, "query setting")
	}
	return cfg.Value, nil
}

func (s *gormSettings) Set(ctx context.Context, category, name, value string) error {
	var cfg domain.SysConfig
	err := s.db.WithContext(ctx).Where("type = ? and name = ?", category, name).First(&cfg).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Wrap(s.db.WithContext(ctx).Create(&domain.SysConfig{
			Type:  category,
			Name:  name,
			Value: value,
		}).Error, "create setting")
	case err != nil:
		return errors.Wrap(err, "query setting")
	}
	return errors.Wrap(s.db.WithContext(ctx).Model(&domain.SysConfig{}).
		Where("id = ?", cfg.ID).
		Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error, "update setting")
}

func (s *gormSettings) List(ctx context.Context) ([]domain.SysConfig, error) {
	var rows []domain.SysConfig
	if err := s.db.WithContext(ctx).Order("type, name").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "query settings")
	}
	return rows, nil
}
