// 包 store：PostgreSQL 中的陨石坑目录，作为文件之外的另一种有序输入源
package store

import (
	"context"
	"crater-nest/internal/logger"
	"crater-nest/internal/nest"
	"database/sql"

	_ "github.com/lib/pq"
)

const insertCatalog = "INSERT INTO _crater_catalog(ordinal,crater_id,lat,lon,diameter_km) VALUES($1,$2,$3,$4,$5)"

// Store：目录表访问入口
type Store struct {
	db        *sql.DB
	batchSize int
}

func AttachDB(db *sql.DB) *Store { return &Store{db: db, batchSize: 5000} }

// WithBatchSize：调整 ReplaceCatalog 的分批提交行数
func (s *Store) WithBatchSize(n int) *Store {
	if n > 0 {
		s.batchSize = n
	}
	return s
}

func (s *Store) DB() *sql.DB { return s.db }

// 文档注释：按 ordinal 顺序读取全部目录记录
// 约束：半径由 diameter_km / 2 得出，与文件输入一致
func (s *Store) ListRecords(ctx context.Context) ([]nest.Record, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT crater_id, lat, lon, diameter_km FROM _crater_catalog ORDER BY ordinal")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]nest.Record, 0)
	for rows.Next() {
		var id string
		var lat, lon, dia float64
		if err := rows.Scan(&id, &lat, &lon, &dia); err != nil {
			return nil, err
		}
		out = append(out, nest.NewRecord(id, lat, lon, dia))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.L().Debug("catalog_list_done", "records", len(out))
	return out, nil
}

// Count：目录行数
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM _crater_catalog").Scan(&n)
	return n, err
}

// 文档注释：整表替换目录
// 约束：首批事务内先清空再写入，之后每 batchSize 行提交一次；任一错误立即返回并回滚当前批次
func (s *Store) ReplaceCatalog(ctx context.Context, recs []nest.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, "DELETE FROM _crater_catalog"); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, insertCatalog)
	if err != nil {
		return err
	}
	for i, r := range recs {
		if _, err := stmt.ExecContext(ctx, int64(i), r.ID, r.Lat, r.Lon, r.Radius*2); err != nil {
			return err
		}
		if (i+1)%s.batchSize == 0 && i+1 < len(recs) {
			logger.L().Info("catalog_import_progress", "count", i+1)
			_ = stmt.Close()
			if err := tx.Commit(); err != nil {
				return err
			}
			tx, err = s.db.BeginTx(ctx, nil)
			if err != nil {
				return err
			}
			stmt, err = tx.PrepareContext(ctx, insertCatalog)
			if err != nil {
				return err
			}
		}
	}
	_ = stmt.Close()
	if err := tx.Commit(); err != nil {
		return err
	}
	logger.L().Info("catalog_import_done", "count", len(recs))
	return nil
}
