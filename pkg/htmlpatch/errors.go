package htmlpatch

import (
	"fmt"

	"github.com/go-errors/errors"
)

// ErrAnchorNotFound 锚点未匹配，或替换后文档中没有标记文本
var ErrAnchorNotFound = errors.Errorf("could not find insertion point")

// FileAccessError 目标文件无法打开、读取或写入
type FileAccessError struct {
	Op   string // read 或 write
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

func fileAccessError(op, path string, err error) error {
	return errors.Wrap(&FileAccessError{Op: op, Path: path, Err: err}, 1)
}
