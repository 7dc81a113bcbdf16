// 包 pipeline：读取目录 → 构建包含森林 → 输出计数，串起一次完整运行
package pipeline

import (
	"context"
	"crater-nest/internal/export"
	"crater-nest/internal/ingest"
	"crater-nest/internal/logger"
	"crater-nest/internal/metrics"
	"crater-nest/internal/nest"
	"crater-nest/internal/store"
	"errors"
	"fmt"
	"time"
)

// Source：提供有序的陨石坑记录
type Source interface {
	Records(ctx context.Context) ([]nest.Record, error)
}

// Sink：消费容器 ID → 计数映射
type Sink interface {
	Write(ctx context.Context, counts nest.Counts) error
}

// FileSource：逗号分隔目录文件
type FileSource struct {
	Path    string
	Columns ingest.Columns
}

func (s FileSource) Records(context.Context) ([]nest.Record, error) {
	return ingest.LoadFile(s.Path, s.Columns)
}

// StoreSource：PostgreSQL 目录表
type StoreSource struct{ Store *store.Store }

func (s StoreSource) Records(ctx context.Context) ([]nest.Record, error) {
	recs, err := s.Store.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog table: %v", ingest.ErrInputUnavailable, err)
	}
	return recs, nil
}

// Result：一次运行的产物
type Result struct {
	Forest []*nest.Node
	Counts nest.Counts
	Stats  nest.Stats
}

// 文档注释：执行一次运行
// 约束：读取失败时不构建、不输出；输出失败时仍返回完整 Result，错误链包含 export.ErrOutputUnwritable
func Run(ctx context.Context, src Source, sink Sink, b nest.Builder) (*Result, error) {
	l := logger.L()
	recs, err := src.Records(ctx)
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues(ErrorKind(err)).Inc()
		return nil, err
	}
	l.Info("records_loaded", "count", len(recs))

	t0 := time.Now()
	forest, counts := b.Build(recs)
	dur := time.Since(t0)
	st := nest.Summary(forest, counts)
	metrics.ObserveBuild(len(recs), st.Roots, st.Nested, st.Containers, st.MaxDepth, dur)
	l.Info("forest_built", "body", b.Body.Name, "roots", st.Roots, "nested", st.Nested, "containers", st.Containers, "max_depth", st.MaxDepth, "duration_ms", dur.Milliseconds())

	res := &Result{Forest: forest, Counts: counts, Stats: st}
	if err := sink.Write(ctx, counts); err != nil {
		metrics.ErrorsTotal.WithLabelValues(ErrorKind(err)).Inc()
		return res, err
	}
	l.Info("export_ok", "keys", len(counts))
	return res, nil
}

// ErrorKind：错误分类标签，用于指标与日志
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ingest.ErrInputUnavailable):
		return "input_unavailable"
	case errors.Is(err, ingest.ErrMalformedField):
		return "malformed_field"
	case errors.Is(err, ingest.ErrShortRow):
		return "short_row"
	case errors.Is(err, export.ErrOutputUnwritable):
		return "output_unwritable"
	}
	return "other"
}
