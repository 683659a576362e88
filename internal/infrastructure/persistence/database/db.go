package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookreview/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 按配置选择方言：sqlite（默认，单文件）、mysql、postgres
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. GORM日志输出到slog，debug模式打印SQL，其他模式只记录错误和慢查询
// 4. 自动迁移四张表（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 选择方言
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	// 2. 配置GORM日志
	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	// 3. 连接数据库
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormSlogLogger(slog.Default(), cfg.Database.SlowThreshold).LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	if cfg.Database.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	slog.Info("database connected", slog.String("driver", cfg.Database.Driver))

	// 6. 自动迁移表结构
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// openDialector 按驱动名创建GORM方言
func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	dsn := cfg.DSN()

	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", cfg.Driver)
	}
}

// autoMigrate 自动迁移表结构
// 注意：这里使用GORM的模型定义（带tag），不是domain层的实体
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&AuthorModel{},
		&BookModel{},
		&UserModel{},
		&ReviewModel{},
	)
}

// AuthorModel GORM作者模型
type AuthorModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:255;not null"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 目录数据只由导入工具写入，没有时间戳和软删除
// 2. ISBN唯一，重复导入时跳过已存在的图书
// 3. title和author_id建索引（LIKE前缀以外的匹配仍然是全表扫描）
type BookModel struct {
	ID        uint   `gorm:"primaryKey"`
	ISBN      string `gorm:"column:isbn;uniqueIndex;size:20;not null"`
	Title     string `gorm:"index;size:255;not null"`
	Published int    `gorm:"not null"`
	AuthorID  uint   `gorm:"index;not null"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Hash的格式由凭证方案决定（plain方案下就是原文）
type UserModel struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"uniqueIndex;size:255;not null"`
	Hash     string `gorm:"size:255;not null"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// ReviewModel GORM书评模型
// 设计说明:
// 1. 只追加：同一用户对同一本书可以有多行，(book_id, user_id)上没有唯一约束
// 2. created_on在插入时由GORM赋值（NowFunc，UTC），调用方不需要传入
// 3. 书评正文的列名是review
type ReviewModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"index:idx_reviews_book_user;not null"`
	UserID    uint      `gorm:"index:idx_reviews_book_user;not null"`
	Rating    int       `gorm:"not null;default:0"`
	Review    string    `gorm:"column:review;type:text;not null"`
	CreatedOn time.Time `gorm:"autoCreateTime;not null"`
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "reviews"
}
