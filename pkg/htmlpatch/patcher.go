package htmlpatch

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Status 插入结果
type Status int

const (
	StatusNotFound Status = iota
	StatusWritten
)

func (s Status) String() string {
	switch s {
	case StatusWritten:
		return "written"
	default:
		return "not_found"
	}
}

// Result 一次 Apply 的结果
type Result struct {
	Status Status
	// Matched 锚点正则是否命中
	Matched bool
	// Offset 片段插入位置（字节偏移），未命中时为 -1
	Offset int
}

// Patcher 在文本文件中按正则锚点插入片段
type Patcher struct {
	fs     afero.Fs
	logger *zap.Logger
	dryRun bool
}

type Option func(*Patcher)

// WithLogger 设置日志，nil 表示不输出
func WithLogger(logger *zap.Logger) Option {
	return func(p *Patcher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithDryRun 只计算结果，不写回文件
func WithDryRun(dryRun bool) Option {
	return func(p *Patcher) {
		p.dryRun = dryRun
	}
}

// NewPatcher 创建 Patcher
func NewPatcher(fs afero.Fs, opts ...Option) *Patcher {
	p := &Patcher{
		fs:     fs,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Apply 读取配方指定的文件，在第一个锚点前插入片段。
// 仅当替换后的内容包含 Marker 时才写回文件，否则文件保持不变。
// 重复执行会重复插入。
func (p *Patcher) Apply(r Recipe) (Result, error) {
	re, err := r.Compile()
	if err != nil {
		return Result{Offset: -1}, err
	}

	content, err := p.read(r.Path)
	if err != nil {
		return Result{Offset: -1}, err
	}
	p.logger.Debug("读取目标文件", zap.String("path", r.Path), zap.Int("bytes", len(content)))

	patched, offset := Splice(content, r.Fragment, re)
	result := Result{Matched: offset >= 0, Offset: offset}
	if result.Matched {
		p.logger.Debug("锚点已匹配", zap.String("path", r.Path), zap.Int("offset", offset))
	}

	if !strings.Contains(patched, r.Marker) {
		result.Status = StatusNotFound
		p.logger.Info("未找到插入点，文件未修改", zap.String("path", r.Path))
		return result, nil
	}
	result.Status = StatusWritten

	if p.dryRun {
		p.logger.Info("dry-run，跳过写入", zap.String("path", r.Path), zap.Int("bytes", len(patched)))
		return result, nil
	}

	if err := p.write(r.Path, patched); err != nil {
		return result, err
	}
	p.logger.Info("片段已写入", zap.String("path", r.Path), zap.Int("bytes", len(patched)), zap.Stringer("status", result.Status))
	return result, nil
}

// Splice 将第一个匹配替换为 fragment 加上第一个捕获组的文本，返回新内容与插入位置。
// 正则没有捕获组时保留整个匹配；捕获组未参与匹配时保留空串。
// 未匹配时原样返回 content 和 -1。
func Splice(content, fragment string, re *regexp.Regexp) (string, int) {
	loc := re.FindStringSubmatchIndex(content)
	if loc == nil {
		return content, -1
	}

	keep := content[loc[0]:loc[1]]
	if re.NumSubexp() > 0 {
		keep = ""
		if loc[2] >= 0 {
			keep = content[loc[2]:loc[3]]
		}
	}

	var b strings.Builder
	b.Grow(len(content) + len(fragment))
	b.WriteString(content[:loc[0]])
	b.WriteString(fragment)
	b.WriteString(keep)
	b.WriteString(content[loc[1]:])
	return b.String(), loc[0]
}

func (p *Patcher) read(path string) (string, error) {
	f, err := p.fs.Open(path)
	if err != nil {
		return "", fileAccessError("read", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fileAccessError("read", path, err)
	}
	return string(data), nil
}

// write 截断写入已存在的文件，保留原有权限
func (p *Patcher) write(path, content string) (err error) {
	f, err := p.fs.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return fileAccessError("write", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fileAccessError("write", path, cerr)
		}
	}()

	if _, err := f.WriteString(content); err != nil {
		return fileAccessError("write", path, err)
	}
	return nil
}
