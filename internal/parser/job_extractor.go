package parser

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"recruit-match-go/internal/lexicon"
	"recruit-match-go/internal/logger"
	"recruit-match-go/internal/types"
)

// JobExtractor 从岗位的描述/要求/加分项三段文本抽取结构化岗位要求
// 与简历抽取器同一套词表，保证两侧技能拼写一致
type JobExtractor struct {
	lexicon *lexicon.Lexicon
	logger  zerolog.Logger
}

// NewJobExtractor 创建岗位抽取器
func NewJobExtractor(lex *lexicon.Lexicon) *JobExtractor {
	return &JobExtractor{
		lexicon: lex,
		logger:  logger.Logger.With().Str("component", "job_extractor").Logger(),
	}
}

var (
	// remoteRegex 远程岗位特征
	remoteRegex = regexp.MustCompile(`(?i)\b(?:remote|work\s+from\s+home|wfh|fully\s+remote|work\s+anywhere|telecommute)\b`)

	// 年限要求的三种写法：区间、下限、上限
	yearsRangeReq = regexp.MustCompile(`(?i)(\d+)\s*(?:[-–—]|to)\s*(\d+)\s*\+?\s*years?`)
	yearsMinReq   = regexp.MustCompile(`(?i)(?:(?:at\s+least|minimum(?:\s+of)?|min\.?)\s+(\d+)\s*\+?\s*years?|(\d+)\s*\+\s*years?|(\d+)\s*\+?\s*years?\s+(?:of\s+)?(?:relevant\s+|professional\s+|work\s+)?experience)`)
	yearsMaxReq   = regexp.MustCompile(`(?i)(?:up\s+to|maximum(?:\s+of)?|max\.?|no\s+more\s+than)\s+(\d+)\s*years?`)

	// bulletRegex 条目行（破折号/圆点/星号开头）
	bulletRegex = regexp.MustCompile(`^\s*[-•*·]\s*(.+)$`)

	// qualificationHint 资质类语句特征
	qualificationHint = regexp.MustCompile(`(?i)\b(?:degree|bachelor|master|phd|diploma|certif|qualifi|graduate)\b|学位|学历|证书`)
)

// Extract 从岗位文本抽取岗位要求
// description+requirements产出必备技能，niceToHave产出加分技能（两者不相交）；
// 三段全空时返回EmptyJobRequirement的默认值
func (e *JobExtractor) Extract(ctx context.Context, description, requirements, niceToHave string) *types.JobRequirement {
	job := types.EmptyJobRequirement()

	coreText := strings.TrimSpace(description + "\n" + requirements)
	allText := coreText + "\n" + niceToHave

	// 必备技能扫描描述+要求；加分技能扫描加分项并剔除已是必备的
	job.RequiredSkills = e.lexicon.FindSkills(coreText)
	required := make(map[string]struct{}, len(job.RequiredSkills))
	for _, s := range job.RequiredSkills {
		required[s] = struct{}{}
	}
	preferred := []string{}
	for _, s := range e.lexicon.FindSkills(niceToHave) {
		if _, ok := required[s]; !ok {
			preferred = append(preferred, s)
		}
	}
	job.PreferredSkills = preferred

	job.MinExperienceYears, job.MaxExperienceYears = e.extractYearRange(coreText)
	job.EducationLevel = e.extractMinEducation(allText)
	job.IsRemote = remoteRegex.MatchString(allText)
	job.Location = e.extractJobLocation(allText)

	job.Responsibilities = extractBullets(description, 8)
	job.DescriptionText = strings.TrimSpace(description + "\n" + strings.Join(job.Responsibilities, "\n"))

	job.Qualifications = e.extractQualifications(requirements)
	job.Benefits = e.extractBenefits(allText)
	job.Keywords = e.buildKeywords(job)

	e.logger.Debug().
		Int("required_skills", len(job.RequiredSkills)).
		Int("preferred_skills", len(job.PreferredSkills)).
		Float64("min_years", job.MinExperienceYears).
		Bool("remote", job.IsRemote).
		Msg("岗位抽取完成")

	return job
}

// extractYearRange 抽取经验年限区间，缺省为[0,100]
// 区间写法优先；否则分别找下限和上限；max<min时抬高max
func (e *JobExtractor) extractYearRange(text string) (float64, float64) {
	minYears, maxYears := 0.0, 100.0

	if m := yearsRangeReq.FindStringSubmatch(text); m != nil {
		lo, errLo := strconv.Atoi(m[1])
		hi, errHi := strconv.Atoi(m[2])
		if errLo == nil && errHi == nil {
			minYears, maxYears = float64(lo), float64(hi)
			if maxYears < minYears {
				maxYears = minYears
			}
			return minYears, maxYears
		}
	}

	if m := yearsMinReq.FindStringSubmatch(text); m != nil {
		for _, g := range m[1:] {
			if g == "" {
				continue
			}
			if v, err := strconv.Atoi(g); err == nil {
				minYears = float64(v)
				break
			}
		}
	}
	if m := yearsMaxReq.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			maxYears = float64(v)
		}
	}
	if maxYears < minYears {
		maxYears = minYears
	}
	return minYears, maxYears
}

// extractMinEducation 抽取最低学历要求
// 岗位写的是门槛而非上限，取命中关键词中等级最低的一个
func (e *JobExtractor) extractMinEducation(text string) types.EducationLevel {
	lower := strings.ToLower(text)
	best := types.EducationNone
	for _, dk := range e.lexicon.DegreeKeywords {
		if !containsWord(lower, strings.ToLower(dk.Keyword)) {
			continue
		}
		level := types.EducationLevelFromString(dk.Level)
		if best == types.EducationNone || level.Rank() < best.Rank() {
			best = level
		}
	}
	return best
}

// extractJobLocation 抽取工作地点：已知城市 -> "City, Country" -> 大区名
func (e *JobExtractor) extractJobLocation(text string) *string {
	lower := strings.ToLower(text)
	for _, place := range e.lexicon.KnownPlaces {
		if containsWord(lower, strings.ToLower(place)) {
			p := place
			return &p
		}
	}
	if m := cityCountryRegex.FindStringSubmatch(text); m != nil {
		loc := m[1] + ", " + m[2]
		return &loc
	}
	for _, region := range e.lexicon.RegionNames {
		if containsWord(lower, strings.ToLower(region)) {
			r := region
			return &r
		}
	}
	return nil
}

// extractQualifications 从要求文本里收资质类语句（最多10条）
func (e *JobExtractor) extractQualifications(requirements string) []string {
	quals := []string{}
	for _, line := range strings.Split(requirements, "\n") {
		if len(quals) >= 10 {
			break
		}
		line = strings.TrimSpace(line)
		if m := bulletRegex.FindStringSubmatch(line); m != nil {
			line = strings.TrimSpace(m[1])
		}
		if line != "" && qualificationHint.MatchString(line) {
			quals = append(quals, line)
		}
	}
	return quals
}

// extractBenefits 用词表福利关键词扫描全文（最多15条）
func (e *JobExtractor) extractBenefits(text string) []string {
	lower := strings.ToLower(text)
	benefits := []string{}
	for _, keyword := range e.lexicon.BenefitKeywords {
		if len(benefits) >= 15 {
			break
		}
		if strings.Contains(lower, keyword) {
			benefits = append(benefits, keyword)
		}
	}
	return benefits
}

// buildKeywords 汇总搜索关键词：技能+福利+学历+地点
// 全部转小写（搜索侧不区分大小写），排序去重，最多50个
func (e *JobExtractor) buildKeywords(job *types.JobRequirement) []string {
	var raw []string
	for _, skill := range job.RequiredSkills {
		raw = append(raw, strings.ToLower(skill))
	}
	for _, skill := range job.PreferredSkills {
		raw = append(raw, strings.ToLower(skill))
	}
	raw = append(raw, job.Benefits...)
	if job.EducationLevel != types.EducationNone {
		raw = append(raw, string(job.EducationLevel))
	}
	if job.Location != nil {
		raw = append(raw, strings.ToLower(*job.Location))
	}
	if job.IsRemote {
		raw = append(raw, "remote")
	}
	keywords := sortedUnique(raw)
	if len(keywords) > 50 {
		keywords = keywords[:50]
	}
	return keywords
}

// extractBullets 收文本中的条目行，没有条目时退回非空行（限制条数）
func extractBullets(text string, limit int) []string {
	bullets := []string{}
	for _, line := range strings.Split(text, "\n") {
		if len(bullets) >= limit {
			return bullets
		}
		if m := bulletRegex.FindStringSubmatch(line); m != nil {
			bullets = append(bullets, strings.TrimSpace(m[1]))
		}
	}
	if len(bullets) > 0 {
		return bullets
	}
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		if len(lines) >= limit {
			break
		}
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
