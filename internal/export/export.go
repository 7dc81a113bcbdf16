// 包 export：将计数映射落盘为缩进 JSON，或写入 Redis 哈希
package export

import (
	"context"
	"crater-nest/internal/logger"
	"crater-nest/internal/nest"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrOutputUnwritable：输出目标无法打开写入
var ErrOutputUnwritable = errors.New("output unwritable")

// MarshalCounts：扁平 key→整数 对象，键有序，4 空格缩进
func MarshalCounts(counts nest.Counts) ([]byte, error) {
	if counts == nil {
		counts = nest.Counts{}
	}
	return json.MarshalIndent(counts, "", "    ")
}

// 文档注释：写出计数文件（覆盖写）
// 异常：创建文件失败包装为 ErrOutputUnwritable；写入/关闭失败原样返回
func WriteFile(path string, counts nest.Counts) error {
	b, err := MarshalCounts(counts)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutputUnwritable, path, err)
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.L().Debug("export_file_written", "path", path, "keys", len(counts), "bytes", len(b))
	return nil
}

// FileSink：以文件为输出目标
type FileSink struct{ Path string }

func (s FileSink) Write(_ context.Context, counts nest.Counts) error { return WriteFile(s.Path, counts) }
