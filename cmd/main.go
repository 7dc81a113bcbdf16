// 程序入口：读取配置、装配输入源与输出目标，执行一次陨石坑嵌套统计
package main

import (
	"context"
	"crater-nest/internal/export"
	"crater-nest/internal/ingest"
	"crater-nest/internal/logger"
	"crater-nest/internal/metrics"
	"crater-nest/internal/nest"
	"crater-nest/internal/pipeline"
	"crater-nest/internal/store"
	"crater-nest/internal/utils"
	"errors"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	l := logger.Setup()
	cfg, err := pipeline.ConfigFromEnv()
	if err != nil {
		l.Error("config_error", "err", err)
		os.Exit(1)
	}
	l.Debug("config_loaded", "source", cfg.Source, "input", cfg.InputPath, "sink", cfg.Sink, "output", cfg.OutputPath, "body", cfg.Body.Name, "radius_km", cfg.Body.RadiusKm)
	ctx := context.Background()

	var src pipeline.Source = pipeline.FileSource{Path: cfg.InputPath, Columns: ingest.DefaultColumns}
	if cfg.Source == "db" {
		db, err := utils.OpenPostgresFromEnv()
		if err != nil {
			l.Error("db_open_error", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		src = pipeline.StoreSource{Store: store.AttachDB(db)}
	}

	var sink pipeline.Sink = export.FileSink{Path: cfg.OutputPath}
	if cfg.Sink == "redis" {
		rc := utils.OpenRedisFromEnv()
		defer rc.Close()
		sink = &export.RedisSink{Client: rc, Key: cfg.RedisKey, TTL: cfg.RedisTTL}
	}

	_, err = pipeline.Run(ctx, src, sink, nest.Builder{Body: cfg.Body})
	code := 0
	switch {
	case err == nil:
		l.Info("exported", "sink", cfg.Sink)
	case errors.Is(err, export.ErrOutputUnwritable):
		// 计算已完成，仅结果未落地
		l.Error("export_error", "err", err)
	default:
		l.Error("run_error", "kind", pipeline.ErrorKind(err), "err", err)
		code = 1
	}
	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			l.Error("metrics_write_error", "path", cfg.MetricsTextfile, "err", err)
		}
	}
	if code != 0 {
		os.Exit(code)
	}
}
