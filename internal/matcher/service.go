package matcher

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"recruit-match-go/internal/logger"
	"recruit-match-go/internal/types"
)

// MatchService 批量匹配服务：一个候选人对多个岗位打分并排序
type MatchService struct {
	matcher *Matcher
	logger  zerolog.Logger
}

// NewMatchService 创建批量匹配服务
func NewMatchService(matcher *Matcher) *MatchService {
	return &MatchService{
		matcher: matcher,
		logger:  logger.Logger.With().Str("component", "match_service").Logger(),
	}
}

// MatchAgainstJobs 计算候选人对每个岗位的匹配结果并按总分降序返回
// 单个岗位计算失败只记日志并跳过，不让整批失败；
// topN>0时只保留前topN条；总分相同按输入下标保持稳定顺序
func (s *MatchService) MatchAgainstJobs(ctx context.Context, candidate *types.CandidateProfile, jobs []*types.JobRequirement, topN int) ([]types.RankedMatch, error) {
	if candidate == nil {
		return nil, NewMatchError("MatchAgainstJobs", ErrNilCandidate, "")
	}

	runID := uuid.New().String()
	runLogger := s.logger.With().Str("run_id", runID).Logger()
	runLogger.Info().Int("jobs", len(jobs)).Msg("开始批量匹配")

	ranked := []types.RankedMatch{}
	for i, job := range jobs {
		if job == nil {
			runLogger.Warn().Int("job_index", i).Msg("岗位要求为nil，跳过")
			continue
		}
		result, err := s.matcher.CalculateMatch(ctx, candidate, job)
		if err != nil {
			runLogger.Warn().Err(err).Int("job_index", i).Msg("单岗位匹配失败，跳过")
			continue
		}
		ranked = append(ranked, types.RankedMatch{JobIndex: i, Result: result})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Result.OverallScore > ranked[b].Result.OverallScore
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	runLogger.Info().Int("ranked", len(ranked)).Msg("批量匹配完成")
	return ranked, nil
}
