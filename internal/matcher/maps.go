package matcher

import (
	"context"

	"recruit-match-go/internal/types"
)

// CalculateMatchMaps 以map为进出参的匹配计算
// 供不关心内部类型的调用方（序列化边界/脚本接入）使用，
// 所有分数四舍五入保留两位小数
func (m *Matcher) CalculateMatchMaps(ctx context.Context, candidateFields, jobFields map[string]any) (map[string]any, error) {
	if candidateFields == nil {
		return nil, NewMatchError("CalculateMatchMaps", ErrNilCandidate, "")
	}
	if jobFields == nil {
		return nil, NewMatchError("CalculateMatchMaps", ErrNilJob, "")
	}

	candidate := types.CandidateProfileFromMap(candidateFields)
	job := types.JobRequirementFromMap(jobFields)

	result, err := m.CalculateMatch(ctx, candidate, job)
	if err != nil {
		return nil, err
	}
	return result.ToMap(), nil
}
