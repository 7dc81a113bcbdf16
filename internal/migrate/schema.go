package migrate

import (
	"crater-nest/internal/logger"
	"database/sql"
)

// 约束：使用 IF NOT EXISTS 与既有结构共存；ordinal 保存目录中的行序，读取时按其排序
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS _crater_catalog (
            ordinal BIGINT PRIMARY KEY,
            crater_id TEXT NOT NULL,
            lat DOUBLE PRECISION NOT NULL,
            lon DOUBLE PRECISION NOT NULL,
            diameter_km DOUBLE PRECISION NOT NULL,
            loaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_crater_catalog_id ON _crater_catalog(crater_id)`,
	}
	for i, s := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	logger.L().Debug("schema_done")
	return nil
}
