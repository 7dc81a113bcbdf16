// 目录导入工具：解析陨石坑 CSV 并整表替换 PostgreSQL 中的 _crater_catalog
package main

import (
	"context"
	"crater-nest/internal/ingest"
	"crater-nest/internal/logger"
	"crater-nest/internal/migrate"
	"crater-nest/internal/store"
	"crater-nest/internal/utils"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	l := logger.Setup()
	in := os.Getenv("CRATER_INPUT")
	if in == "" {
		in = "astro_sorted.csv"
	}
	batch := 5000
	if v := os.Getenv("CATALOG_BATCH"); v != "" {
		if n, e := strconv.Atoi(v); e == nil && n > 0 {
			batch = n
		}
	}
	recs, err := ingest.LoadFile(in, ingest.DefaultColumns)
	if err != nil {
		l.Error("catalog_read_error", "path", in, "err", err)
		os.Exit(1)
	}
	db, err := utils.OpenPostgresFromEnv()
	if err != nil {
		l.Error("db_open_error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		l.Error("db_ping_error", "err", err)
		os.Exit(1)
	}
	if err := migrate.EnsureSchema(db); err != nil {
		l.Error("schema_error", "err", err)
		os.Exit(1)
	}
	st := store.AttachDB(db).WithBatchSize(batch)
	if err := st.ReplaceCatalog(context.Background(), recs); err != nil {
		l.Error("catalog_import_error", "err", err)
		os.Exit(1)
	}
	n, _ := st.Count(context.Background())
	l.Info("catalog_import_ok", "path", in, "rows", n)
}
