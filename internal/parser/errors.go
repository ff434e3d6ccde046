package parser

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
// 抽取本身永不向调用方抛错（降级为空结果），这些错误只出现在日志里
var (
	ErrUnsupportedFileType = errors.New("不支持的简历文件类型")
	ErrExtractTextFailed   = errors.New("提取简历文本失败")
	errNoDocumentXML       = errors.New("docx中缺少 word/document.xml")
)

// ExtractError 包含详细上下文的抽取错误
type ExtractError struct {
	File    string // 文件名或标识
	Op      string // 失败的操作
	BaseErr error
	Detail  string
}

func (e *ExtractError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 文件:%s): %s", e.BaseErr, e.Op, e.File, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 文件:%s)", e.BaseErr, e.Op, e.File)
}

func (e *ExtractError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 以支持错误比较
func (e *ExtractError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// NewExtractError 错误构造函数
func NewExtractError(file, op string, base error, detail string) error {
	return &ExtractError{File: file, Op: op, BaseErr: base, Detail: detail}
}
