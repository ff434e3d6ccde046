package matcher

import (
	"errors"
	"fmt"
)

var (
	// ErrNilCandidate 候选人画像为nil
	ErrNilCandidate = errors.New("候选人画像不能为nil")
	// ErrNilJob 岗位要求为nil
	ErrNilJob = errors.New("岗位要求不能为nil")
	// ErrInvalidWeights 权重配置非法
	ErrInvalidWeights = errors.New("匹配权重配置非法")
)

// MatchError 匹配计算过程中的错误
type MatchError struct {
	Op      string // 出错的操作
	BaseErr error  // 原始错误
	Detail  string // 补充信息
}

// Error 实现error接口
func (e *MatchError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("匹配计算错误 [%s]: %v (%s)", e.Op, e.BaseErr, e.Detail)
	}
	return fmt.Sprintf("匹配计算错误 [%s]: %v", e.Op, e.BaseErr)
}

// Unwrap 支持errors.Is/As链式判断
func (e *MatchError) Unwrap() error {
	return e.BaseErr
}

// NewMatchError 创建匹配错误
func NewMatchError(op string, baseErr error, detail string) *MatchError {
	return &MatchError{Op: op, BaseErr: baseErr, Detail: detail}
}
