package matcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruit-match-go/internal/types"
)

// rankingJobs 构造匹配度递增的三个岗位：技能全miss、半数命中、全命中
func rankingJobs() []*types.JobRequirement {
	worst := types.EmptyJobRequirement()
	worst.RequiredSkills = []string{"rust", "scala", "elixir", "haskell"}

	middle := types.EmptyJobRequirement()
	middle.RequiredSkills = []string{"python", "django", "rust", "scala"}

	best := types.EmptyJobRequirement()
	best.RequiredSkills = []string{"python", "django", "react", "postgresql"}

	return []*types.JobRequirement{worst, middle, best}
}

// TestMatchAgainstJobsOrdering 验证结果按总分降序且带原始下标
func TestMatchAgainstJobsOrdering(t *testing.T) {
	service := NewMatchService(newTestMatcher(t))

	ranked, err := service.MatchAgainstJobs(context.Background(), scenarioCandidate(), rankingJobs(), 0)
	require.NoError(t, err, "批量匹配不应返回错误")
	require.Len(t, ranked, 3, "三个岗位都应有结果")

	assert.Equal(t, 2, ranked[0].JobIndex, "技能全命中的岗位应排第一")
	assert.Equal(t, 1, ranked[1].JobIndex, "半数命中的岗位应排第二")
	assert.Equal(t, 0, ranked[2].JobIndex, "技能全miss的岗位应排最后")

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Result.OverallScore, ranked[i].Result.OverallScore, "总分应单调不增")
	}
}

// TestMatchAgainstJobsStableTies 验证总分相同按输入下标保持稳定顺序
func TestMatchAgainstJobsStableTies(t *testing.T) {
	service := NewMatchService(newTestMatcher(t))

	same := types.EmptyJobRequirement()
	same.RequiredSkills = []string{"python", "django"}
	other := types.EmptyJobRequirement()
	other.RequiredSkills = []string{"python", "django"}

	ranked, err := service.MatchAgainstJobs(context.Background(), scenarioCandidate(), []*types.JobRequirement{same, other}, 0)
	require.NoError(t, err, "批量匹配不应返回错误")
	require.Len(t, ranked, 2, "两个岗位都应有结果")
	assert.Equal(t, 0, ranked[0].JobIndex, "同分时应保持输入顺序")
	assert.Equal(t, 1, ranked[1].JobIndex, "同分时应保持输入顺序")
}

// TestMatchAgainstJobsTopN 验证topN截断
func TestMatchAgainstJobsTopN(t *testing.T) {
	service := NewMatchService(newTestMatcher(t))

	ranked, err := service.MatchAgainstJobs(context.Background(), scenarioCandidate(), rankingJobs(), 2)
	require.NoError(t, err, "批量匹配不应返回错误")
	require.Len(t, ranked, 2, "topN=2时只应保留前两条")
	assert.Equal(t, 2, ranked[0].JobIndex, "截断不应改变排序")

	// topN超过岗位数时全量返回
	ranked, err = service.MatchAgainstJobs(context.Background(), scenarioCandidate(), rankingJobs(), 10)
	require.NoError(t, err, "批量匹配不应返回错误")
	assert.Len(t, ranked, 3, "topN超过岗位数时应全量返回")
}

// TestMatchAgainstJobsSkipsNilJobs 验证nil岗位被跳过而非让整批失败
func TestMatchAgainstJobsSkipsNilJobs(t *testing.T) {
	service := NewMatchService(newTestMatcher(t))

	jobs := []*types.JobRequirement{nil, types.EmptyJobRequirement(), nil}
	ranked, err := service.MatchAgainstJobs(context.Background(), scenarioCandidate(), jobs, 0)
	require.NoError(t, err, "存在nil岗位不应让整批失败")
	require.Len(t, ranked, 1, "只有非nil岗位应产出结果")
	assert.Equal(t, 1, ranked[0].JobIndex, "保留的下标应指向原始输入位置")
}

// TestMatchAgainstJobsNilCandidate 验证候选人为nil时整批失败
func TestMatchAgainstJobsNilCandidate(t *testing.T) {
	service := NewMatchService(newTestMatcher(t))

	_, err := service.MatchAgainstJobs(context.Background(), nil, rankingJobs(), 0)
	assert.ErrorIs(t, err, ErrNilCandidate, "候选人为nil应返回对应错误")
}

// TestMatchAgainstJobsEmptyJobs 验证空岗位列表返回空结果
func TestMatchAgainstJobsEmptyJobs(t *testing.T) {
	service := NewMatchService(newTestMatcher(t))

	ranked, err := service.MatchAgainstJobs(context.Background(), scenarioCandidate(), nil, 0)
	require.NoError(t, err, "空岗位列表不应返回错误")
	assert.NotNil(t, ranked, "结果应为空切片而非nil")
	assert.Empty(t, ranked, "空岗位列表应返回空结果")
}
