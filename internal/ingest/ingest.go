// 包 ingest：读取逗号分隔的陨石坑目录，按固定列位置生成有序记录序列
package ingest

import (
	"bufio"
	"crater-nest/internal/logger"
	"crater-nest/internal/nest"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrInputUnavailable：输入源无法打开，处理前即中止
	ErrInputUnavailable = errors.New("input unavailable")
	// ErrMalformedField：必需的数值列无法解析
	ErrMalformedField = errors.New("malformed field")
	// ErrShortRow：行的列数不足以取到必需字段
	ErrShortRow = errors.New("short row")
)

// FieldError：定位到具体行列的解析错误，Unwrap 为 ErrMalformedField
type FieldError struct {
	Line   int
	Column int
	Value  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("line %d column %d: %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return ErrMalformedField }

// Columns：必需字段的列位置（从 0 开始）
type Columns struct {
	ID       int
	Lat      int
	Lon      int
	Diameter int
}

// DefaultColumns：id=1, lat=2, lon=3, diameter=6
var DefaultColumns = Columns{ID: 1, Lat: 2, Lon: 3, Diameter: 6}

func (c Columns) width() int {
	return max(c.ID, c.Lat, c.Lon, c.Diameter) + 1
}

// 文档注释：解析目录文本
// 约束：第一条非空行为表头并跳过；空行跳过；数值列去除首尾空白后严格按十进制解析；
// 任一数值列非法即整体失败，不返回部分结果。
func ReadCSV(r io.Reader, cols Columns) ([]nest.Record, error) {
	rd := bufio.NewScanner(r)
	rd.Buffer(make([]byte, 1024), 1024*1024)
	need := cols.width()
	out := make([]nest.Record, 0)
	header := true
	line := 0
	for rd.Scan() {
		line++
		text := strings.TrimRight(rd.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		if header {
			header = false
			continue
		}
		parts := strings.Split(text, ",")
		if len(parts) < need {
			return nil, fmt.Errorf("line %d: %d columns, need %d: %w", line, len(parts), need, ErrShortRow)
		}
		lat, err := parseField(parts, cols.Lat, line)
		if err != nil {
			return nil, err
		}
		lon, err := parseField(parts, cols.Lon, line)
		if err != nil {
			return nil, err
		}
		dia, err := parseField(parts, cols.Diameter, line)
		if err != nil {
			return nil, err
		}
		out = append(out, nest.NewRecord(parts[cols.ID], lat, lon, dia))
	}
	if err := rd.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseField(parts []string, col, line int) (float64, error) {
	v := strings.TrimSpace(parts[col])
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &FieldError{Line: line, Column: col, Value: v, Err: err}
	}
	return f, nil
}

// LoadFile：打开并解析目录文件
// 异常：打开失败包装为 ErrInputUnavailable；解析错误原样返回
func LoadFile(path string, cols Columns) ([]nest.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputUnavailable, path, err)
	}
	defer f.Close()
	logger.L().Debug("ingest_begin", "path", path)
	recs, err := ReadCSV(f, cols)
	if err != nil {
		return nil, err
	}
	logger.L().Info("ingest_done", "path", path, "records", len(recs))
	return recs, nil
}
