package matcher

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"recruit-match-go/internal/config"
	"recruit-match-go/internal/embedding"
	"recruit-match-go/internal/lexicon"
	"recruit-match-go/internal/logger"
	"recruit-match-go/internal/types"
)

const (
	// neutralScore 无法判断时的中性分（地点未知、语义能力不可用等）
	neutralScore = 50.0

	// requiredSkillWeight / preferredSkillWeight 技能分内部的必备/加分占比
	requiredSkillWeight  = 0.8
	preferredSkillWeight = 0.2

	// gapPenaltyPerYear 经验不足每差一年扣的分
	gapPenaltyPerYear = 20.0
	// excessPenaltyPerYear 经验超出每多一年扣的分
	excessPenaltyPerYear = 5.0
	// excessFloor 经验超出的保底分
	excessFloor = 50.0

	// 学历分档
	educationMet      = 100.0
	educationOneBelow = 70.0
	educationBelow    = 40.0

	// 地点分档
	locationExact    = 100.0
	locationPartial  = 80.0
	locationMismatch = 30.0

	// containmentMinRunes 包含式模糊匹配要求较短技能的最小长度
	containmentMinRunes = 3

	// defaultSemanticTimeout 语义打分的默认超时
	defaultSemanticTimeout = 10 * time.Second
)

// Matcher 候选人-岗位匹配计算器
// 纯函数式：除语义分依赖外部embedding外，相同输入产出相同结果
type Matcher struct {
	lexicon         *lexicon.Lexicon
	weights         config.MatcherConfig
	similarity      embedding.Similarity
	semanticTimeout time.Duration
	logger          zerolog.Logger
}

// MatcherOption 匹配器的配置选项
type MatcherOption func(*Matcher)

// WithSimilarity 设置语义相似度后端（默认为不可用，语义分走中性值）
func WithSimilarity(similarity embedding.Similarity) MatcherOption {
	return func(m *Matcher) {
		if similarity != nil {
			m.similarity = similarity
		}
	}
}

// WithSemanticTimeout 设置语义打分的单次超时
func WithSemanticTimeout(timeout time.Duration) MatcherOption {
	return func(m *Matcher) {
		if timeout > 0 {
			m.semanticTimeout = timeout
		}
	}
}

// NewMatcher 创建匹配器，权重和不为1时拒绝创建
func NewMatcher(lex *lexicon.Lexicon, weights config.MatcherConfig, opts ...MatcherOption) (*Matcher, error) {
	if err := weights.Validate(); err != nil {
		return nil, NewMatchError("NewMatcher", ErrInvalidWeights, err.Error())
	}
	m := &Matcher{
		lexicon:         lex,
		weights:         weights,
		similarity:      embedding.NoopSimilarity{},
		semanticTimeout: defaultSemanticTimeout,
		logger:          logger.Logger.With().Str("component", "matcher").Logger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// CalculateMatch 计算候选人与单个岗位的匹配结果
// 五个子分各自落在[0,100]，总分为固定权重加权和
func (m *Matcher) CalculateMatch(ctx context.Context, candidate *types.CandidateProfile, job *types.JobRequirement) (*types.MatchResult, error) {
	if candidate == nil {
		return nil, NewMatchError("CalculateMatch", ErrNilCandidate, "")
	}
	if job == nil {
		return nil, NewMatchError("CalculateMatch", ErrNilJob, "")
	}

	result := &types.MatchResult{}
	skills := m.matchSkills(candidate, job)
	result.SkillsScore = skills.score
	result.MatchedSkills = skills.matched
	result.MissingSkills = skills.missing
	result.ExtraSkills = skills.extra

	result.ExperienceScore = m.matchExperience(candidate, job)
	result.EducationScore = m.matchEducation(candidate, job)
	result.LocationScore = m.matchLocation(candidate, job)
	result.SemanticScore = m.semanticScore(ctx, candidate, job)

	result.OverallScore = result.SkillsScore*m.weights.SkillsWeight +
		result.ExperienceScore*m.weights.ExperienceWeight +
		result.EducationScore*m.weights.EducationWeight +
		result.LocationScore*m.weights.LocationWeight +
		result.SemanticScore*m.weights.SemanticWeight

	result.MatchLevel = types.MatchLevelFromScore(result.OverallScore)

	result.Strengths = identifyStrengths(result, candidate)
	result.Weaknesses = identifyWeaknesses(result, candidate, job)
	result.Recommendations = generateRecommendations(result, job)

	m.logger.Debug().
		Float64("overall", result.OverallScore).
		Str("level", string(result.MatchLevel)).
		Int("matched_skills", len(result.MatchedSkills)).
		Msg("匹配计算完成")

	return result, nil
}

// SkillsSimilar 判断两个技能是否等价
// 链条：规范化相等 -> 同义词组 -> 受限包含（短词至少3个字符且两者不分属不同词组）
func (m *Matcher) SkillsSimilar(a, b string) bool {
	normA := lexicon.Normalize(a)
	normB := lexicon.Normalize(b)
	if normA == "" || normB == "" {
		return false
	}
	if normA == normB {
		return true
	}
	if m.lexicon.InSameSynonymGroup(normA, normB) {
		return true
	}

	// 包含式模糊匹配，守卫条件挡掉 java/javascript 这类误报
	shorter, longer := normA, normB
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		shorter, longer = longer, shorter
	}
	if utf8.RuneCountInString(shorter) < containmentMinRunes {
		return false
	}
	if m.lexicon.InDifferentSynonymGroups(normA, normB) {
		return false
	}
	return strings.Contains(longer, shorter)
}

// skillsResult 技能维度的打分明细
type skillsResult struct {
	score   float64
	matched []string
	missing []string
	extra   []string
}

// matchSkills 技能维度打分
// 必备技能占0.8、加分技能占0.2；无必备要求时必备命中率记1.0，
// 无加分要求时加分命中率记0.0；两个列表都为空时岗位对技能无任何
// 要求，直接满分
func (m *Matcher) matchSkills(candidate *types.CandidateProfile, job *types.JobRequirement) skillsResult {
	if len(job.RequiredSkills) == 0 && len(job.PreferredSkills) == 0 {
		extra := append([]string{}, candidate.Skills...)
		sort.Strings(extra)
		return skillsResult{
			score:   100.0,
			matched: []string{},
			missing: []string{},
			extra:   extra,
		}
	}

	var matchedRequired, missingRequired []string
	for _, req := range job.RequiredSkills {
		if m.anySimilar(req, candidate.Skills) {
			matchedRequired = append(matchedRequired, req)
		} else {
			missingRequired = append(missingRequired, req)
		}
	}

	var matchedPreferred, missingPreferred []string
	for _, pref := range job.PreferredSkills {
		if m.anySimilar(pref, candidate.Skills) {
			matchedPreferred = append(matchedPreferred, pref)
		} else {
			missingPreferred = append(missingPreferred, pref)
		}
	}

	// 候选人有而岗位没要求的技能
	jobSkills := append(append([]string{}, job.RequiredSkills...), job.PreferredSkills...)
	var extra []string
	for _, skill := range candidate.Skills {
		if !m.anySimilar(skill, jobSkills) {
			extra = append(extra, skill)
		}
	}

	requiredRate := 1.0
	if len(job.RequiredSkills) > 0 {
		requiredRate = float64(len(matchedRequired)) / float64(len(job.RequiredSkills))
	}
	preferredRate := 0.0
	if len(job.PreferredSkills) > 0 {
		preferredRate = float64(len(matchedPreferred)) / float64(len(job.PreferredSkills))
	}

	matched := append(matchedRequired, matchedPreferred...)
	missing := append(missingRequired, missingPreferred...)
	sort.Strings(matched)
	sort.Strings(missing)
	sort.Strings(extra)

	return skillsResult{
		score:   (requiredRate*requiredSkillWeight + preferredRate*preferredSkillWeight) * 100,
		matched: emptyIfNil(matched),
		missing: emptyIfNil(missing),
		extra:   emptyIfNil(extra),
	}
}

// anySimilar 判断目标技能是否与候选技能列表中的任一项等价
func (m *Matcher) anySimilar(target string, skills []string) bool {
	for _, skill := range skills {
		if m.SkillsSimilar(target, skill) {
			return true
		}
	}
	return false
}

// matchExperience 经验维度打分
// 落在[min,max]内满分；不足按每年20分扣、下限0；
// 超出按每年5分扣、保底50（资深候选人不因经验多被一票否决）
func (m *Matcher) matchExperience(candidate *types.CandidateProfile, job *types.JobRequirement) float64 {
	years := candidate.ExperienceYears
	minYears := job.MinExperienceYears
	maxYears := job.MaxExperienceYears

	switch {
	case years >= minYears && years <= maxYears:
		return 100.0
	case years < minYears:
		gap := minYears - years
		score := 100.0 - gap*gapPenaltyPerYear
		if score < 0 {
			return 0
		}
		return score
	default:
		excess := years - maxYears
		score := 100.0 - excess*excessPenaltyPerYear
		if score < excessFloor {
			return excessFloor
		}
		return score
	}
}

// matchEducation 学历维度打分
// 岗位无要求满分；达到或超过要求满分；低一档70；低两档及以上40
func (m *Matcher) matchEducation(candidate *types.CandidateProfile, job *types.JobRequirement) float64 {
	if job.EducationLevel == types.EducationNone {
		return educationMet
	}
	candidateRank := candidate.EducationLevel.Rank()
	requiredRank := job.EducationLevel.Rank()

	switch {
	case candidateRank >= requiredRank:
		return educationMet
	case candidateRank == requiredRank-1:
		return educationOneBelow
	default:
		return educationBelow
	}
}

// matchLocation 地点维度打分
// 远程岗位满分；任一侧地点未知中性分；规范化后相等满分；
// 逗号分段后任意两段互相包含算部分匹配80；否则30
func (m *Matcher) matchLocation(candidate *types.CandidateProfile, job *types.JobRequirement) float64 {
	if job.IsRemote {
		return 100.0
	}
	if candidate.Location == nil || job.Location == nil {
		return neutralScore
	}

	candLoc := strings.ToLower(strings.TrimSpace(*candidate.Location))
	jobLoc := strings.ToLower(strings.TrimSpace(*job.Location))
	if candLoc == "" || jobLoc == "" {
		return neutralScore
	}
	if candLoc == jobLoc {
		return locationExact
	}

	for _, candPart := range strings.Split(candLoc, ",") {
		candPart = strings.TrimSpace(candPart)
		if candPart == "" {
			continue
		}
		for _, jobPart := range strings.Split(jobLoc, ",") {
			jobPart = strings.TrimSpace(jobPart)
			if jobPart == "" {
				continue
			}
			if strings.Contains(candPart, jobPart) || strings.Contains(jobPart, candPart) {
				return locationPartial
			}
		}
	}
	return locationMismatch
}

// semanticScore 语义维度打分
// 候选文本=简介+技能+经历描述，岗位文本=描述+职责+必备技能；
// 任一侧为空、后端不可用、出错或超时一律降级为中性分50
func (m *Matcher) semanticScore(ctx context.Context, candidate *types.CandidateProfile, job *types.JobRequirement) float64 {
	var candParts []string
	if candidate.Summary != nil {
		candParts = append(candParts, *candidate.Summary)
	}
	candParts = append(candParts, strings.Join(candidate.Skills, " "))
	for _, entry := range candidate.ExperienceEntries {
		candParts = append(candParts, entry.Description)
	}
	candText := strings.TrimSpace(strings.Join(candParts, " "))

	jobText := strings.TrimSpace(job.DescriptionText + " " + strings.Join(job.RequiredSkills, " "))

	if candText == "" || jobText == "" {
		return neutralScore
	}

	ctx, cancel := context.WithTimeout(ctx, m.semanticTimeout)
	defer cancel()

	cos, err := m.similarity.Score(ctx, candText, jobText)
	if err != nil {
		m.logger.Warn().Err(err).Msg("语义打分失败，使用中性分")
		return neutralScore
	}

	score := cos * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// emptyIfNil 把nil切片换成空切片，保证输出里列表恒存在
func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
