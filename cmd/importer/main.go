// importer 把books.csv（isbn,title,author,published）导入图书目录
//
// 用法：
//
//	go run ./cmd/importer -file books.csv
//	go run ./cmd/importer -config config/config.prod.yaml -file books.csv
//
// 可以重复执行：已存在的作者和ISBN会被跳过
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/xiebiao/bookreview/internal/infrastructure/catalogimport"
	"github.com/xiebiao/bookreview/internal/infrastructure/config"
	"github.com/xiebiao/bookreview/internal/infrastructure/logger"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/database"
)

func main() {
	file := flag.String("file", "books.csv", "Catalog CSV file (isbn,title,author,published)")
	configPath := flag.String("config", "", "Config file path (default: config/config.yaml)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *file); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, file string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("加载.env失败: %w", err)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if _, err := logger.New(cfg.Log); err != nil {
		return err
	}

	db, err := database.NewDB(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	result, err := catalogimport.ImportFile(ctx, database.NewCatalogLoader(db), file)
	if err != nil {
		return err
	}

	slog.Info("catalog import finished",
		slog.String("file", file),
		slog.Int("authors", result.Authors),
		slog.Int("books", result.Books),
	)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}
