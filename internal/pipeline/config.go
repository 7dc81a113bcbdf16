package pipeline

import (
	"crater-nest/internal/geo"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config：一次运行的输入/输出与天体参数，均来自环境变量
type Config struct {
	Source          string // file | db
	InputPath       string
	Sink            string // file | redis
	OutputPath      string
	RedisKey        string
	RedisTTL        time.Duration
	Body            geo.Body
	MetricsTextfile string
}

// 文档注释：读取环境变量，未设置时取默认值
// 约束：CRATER_BODY 未识别、CRATER_SOURCE/OUTPUT_SINK 取值非法时返回错误；
// CRATER_BODY_RADIUS_KM 为正数时覆盖所选天体的半径
func ConfigFromEnv() (Config, error) {
	c := Config{
		Source:          strings.ToLower(envOr("CRATER_SOURCE", "file")),
		InputPath:       envOr("CRATER_INPUT", "astro_sorted.csv"),
		Sink:            strings.ToLower(envOr("OUTPUT_SINK", "file")),
		OutputPath:      envOr("CRATER_OUTPUT", "nestedCratersLen.json"),
		RedisKey:        envOr("OUTPUT_REDIS_KEY", "crater:nested"),
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
	}
	if c.Source != "file" && c.Source != "db" {
		return c, fmt.Errorf("CRATER_SOURCE %q: want file or db", c.Source)
	}
	if c.Sink != "file" && c.Sink != "redis" {
		return c, fmt.Errorf("OUTPUT_SINK %q: want file or redis", c.Sink)
	}
	b, ok := geo.BodyByName(os.Getenv("CRATER_BODY"))
	if !ok {
		return c, fmt.Errorf("CRATER_BODY %q: unknown body", os.Getenv("CRATER_BODY"))
	}
	if s := os.Getenv("CRATER_BODY_RADIUS_KM"); s != "" {
		if f, e := strconv.ParseFloat(s, 64); e == nil && f > 0 {
			b.RadiusKm = f
		}
	}
	c.Body = b
	if s := os.Getenv("OUTPUT_REDIS_TTL_S"); s != "" {
		if n, e := strconv.Atoi(s); e == nil && n > 0 {
			c.RedisTTL = time.Duration(n) * time.Second
		}
	}
	return c, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
