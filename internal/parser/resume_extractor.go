package parser

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"recruit-match-go/internal/config"
	"recruit-match-go/internal/lexicon"
	"recruit-match-go/internal/logger"
	"recruit-match-go/internal/types"
)

// EntityRecognizer 可选的命名实体识别能力
// 任一方法返回空切片表示该类实体不可用，抽取器自动退回启发式
type EntityRecognizer interface {
	// People 识别文本中的人名
	People(ctx context.Context, text string) []string
	// Organizations 识别文本中的组织/公司名
	Organizations(ctx context.Context, text string) []string
	// Places 识别文本中的地名
	Places(ctx context.Context, text string) []string
}

// ResumeExtractor 从简历纯文本抽取结构化候选人画像
// 纯规则实现：词表扫描 + 正则 + 章节启发式，相同输入产出相同画像
type ResumeExtractor struct {
	lexicon    *lexicon.Lexicon
	segmenter  *Segmenter
	recognizer EntityRecognizer
	config     config.ExtractorConfig
	logger     zerolog.Logger

	// now 可注入的时钟，total years计算把"present"换算成当前年份
	now func() time.Time
}

// ResumeExtractorOption 简历抽取器的配置选项
type ResumeExtractorOption func(*ResumeExtractor)

// WithEntityRecognizer 设置命名实体识别器
func WithEntityRecognizer(recognizer EntityRecognizer) ResumeExtractorOption {
	return func(e *ResumeExtractor) {
		e.recognizer = recognizer
	}
}

// WithClock 注入时钟（测试用，固定"present"换算的基准年份）
func WithClock(now func() time.Time) ResumeExtractorOption {
	return func(e *ResumeExtractor) {
		if now != nil {
			e.now = now
		}
	}
}

// NewResumeExtractor 创建简历抽取器
func NewResumeExtractor(lex *lexicon.Lexicon, segmenter *Segmenter, cfg config.ExtractorConfig, opts ...ResumeExtractorOption) *ResumeExtractor {
	if cfg.MinChunkSize <= 0 {
		cfg.MinChunkSize = 20
	}
	if cfg.MaxExperienceGap <= 0 {
		cfg.MaxExperienceGap = 50
	}
	if cfg.MaxExperienceList <= 0 {
		cfg.MaxExperienceList = 5
	}
	e := &ResumeExtractor{
		lexicon:   lex,
		segmenter: segmenter,
		config:    cfg,
		logger:    logger.Logger.With().Str("component", "resume_extractor").Logger(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var (
	// emailRegex 邮箱
	emailRegex = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// phoneRegex 电话（允许国家码、括号、分隔符，至少7位数字）
	phoneRegex = regexp.MustCompile(`(?:\+?\d{1,3}[\s\-.]?)?(?:\(\d{2,4}\)[\s\-.]?)?\d{3,4}[\s\-.]?\d{3,4}(?:[\s\-.]?\d{2,4})?`)

	// 链接类正则
	linkedinRegex  = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/(?:in|pub)/[A-Za-z0-9\-_%]+/?`)
	githubRegex    = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[A-Za-z0-9\-_.]+/?`)
	urlRegex       = regexp.MustCompile(`(?i)https?://[^\s<>()]+`)
	portfolioHint  = regexp.MustCompile(`(?i)portfolio|\.dev\b|\.me\b|\.io\b`)

	// yearRangeRegex 年份区间，例如 "2019 - 2023"、"2020 to Present"
	yearRangeRegex = regexp.MustCompile(`(?i)(\d{4})\s*(?:[-–—]|to)\s*(\d{4}|present|current|now)`)

	// explicitYearsRegex 明示年限，例如 "5+ years of experience"
	explicitYearsRegex = regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+(?:of\s+)?experience`)

	// gradYearRegex 毕业年份
	gradYearRegex = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	// cityCountryRegex "City, Country" 形式的两段式地名
	cityCountryRegex = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)?),\s*([A-Z][a-z]+(?:\s[A-Z][a-z]+)?)\b`)
)

// Extract 从简历纯文本抽取候选人画像
// 文本为空/空白时返回EmptyProfile（Text为空表示解析失败）；
// 单个字段抽不出来只留零值，不让整体失败
func (e *ResumeExtractor) Extract(ctx context.Context, text string) *types.CandidateProfile {
	if strings.TrimSpace(text) == "" {
		e.logger.Warn().Msg("简历文本为空，返回空画像")
		return types.EmptyProfile()
	}

	// Text 保留原始输入不做裁剪，扫描用的文本单独整理
	profile := types.EmptyProfile()
	profile.Text = text
	text = strings.TrimSpace(text)

	sections := e.segmenter.Segment(text)

	// 技能：整篇全词扫描，不局限于技能章节（项目描述里也会提到技能）
	profile.Skills = e.lexicon.FindSkills(text)

	e.extractContacts(text, profile)
	profile.Name = e.extractName(ctx, text)
	profile.Summary = e.extractSummary(sections, text)
	profile.ExperienceEntries = e.extractExperience(ctx, sections)
	profile.ExperienceYears = e.extractTotalYears(text, sectionBody(sections, "experience"))
	profile.Education, profile.EducationLevel = e.extractEducation(sections, text)
	profile.Certifications = e.extractCertifications(sections, text)
	profile.Projects = e.extractProjects(sections)
	profile.Location = e.extractLocation(ctx, text)

	e.logger.Debug().
		Int("skills", len(profile.Skills)).
		Float64("experience_years", profile.ExperienceYears).
		Str("education", string(profile.EducationLevel)).
		Msg("简历抽取完成")

	return profile
}

// extractContacts 抽取邮箱、电话和各类链接
func (e *ResumeExtractor) extractContacts(text string, profile *types.CandidateProfile) {
	if email := emailRegex.FindString(text); email != "" {
		profile.Email = &email
	}
	if link := linkedinRegex.FindString(text); link != "" {
		profile.LinkedIn = &link
	}
	if link := githubRegex.FindString(text); link != "" {
		profile.GitHub = &link
	}

	// 电话只在前几行找，避免把正文里的数字串误判成电话
	head := topLines(text, 8)
	for _, candidate := range phoneRegex.FindAllString(head, -1) {
		if digitCount(candidate) >= 7 && !yearRangeRegex.MatchString(candidate) {
			phone := strings.TrimSpace(candidate)
			profile.Phone = &phone
			break
		}
	}

	// 其余URL：portfolio特征的归portfolio，剩下的进other_links
	seen := make(map[string]struct{})
	for _, raw := range urlRegex.FindAllString(text, -1) {
		link := strings.TrimRight(raw, ".,;")
		if linkedinRegex.MatchString(link) || githubRegex.MatchString(link) {
			continue
		}
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		if profile.Portfolio == nil && portfolioHint.MatchString(link) {
			l := link
			profile.Portfolio = &l
			continue
		}
		profile.OtherLinks = append(profile.OtherLinks, link)
	}
}

// extractName 抽取候选人姓名
// 优先NER人名；否则取前5行中首个2-4个词、不含数字/@/链接的行
func (e *ResumeExtractor) extractName(ctx context.Context, text string) *string {
	if e.recognizer != nil {
		if people := e.recognizer.People(ctx, topLines(text, 5)); len(people) > 0 {
			name := strings.TrimSpace(people[0])
			if name != "" {
				return &name
			}
		}
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i >= 5 {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.ContainsAny(line, "@0123456789") || strings.Contains(strings.ToLower(line), "http") {
			continue
		}
		words := strings.Fields(line)
		if len(words) >= 2 && len(words) <= 4 {
			return &line
		}
	}
	return nil
}

// extractSummary 取summary章节正文的首段；没有summary章节时退回文首段落
func (e *ResumeExtractor) extractSummary(sections []*Section, text string) *string {
	body := sectionBody(sections, "summary")
	if body == "" {
		// 无标题简历：跳过联系块，取第一个足够长的段落
		for _, block := range SplitBlocks(text, e.config.MinChunkSize*2) {
			if emailRegex.MatchString(block) || urlRegex.MatchString(block) {
				continue
			}
			body = block
			break
		}
	}
	if body == "" {
		return nil
	}
	blocks := SplitBlocks(body, 1)
	if len(blocks) == 0 {
		return nil
	}
	summary := blocks[0]
	return &summary
}

// extractExperience 把经历章节按空行切块，逐块解析为工作经历
func (e *ResumeExtractor) extractExperience(ctx context.Context, sections []*Section) []types.ExperienceEntry {
	body := sectionBody(sections, "experience")
	if body == "" {
		return []types.ExperienceEntry{}
	}

	var orgs []string
	if e.recognizer != nil {
		orgs = e.recognizer.Organizations(ctx, body)
	}

	entries := []types.ExperienceEntry{}
	for _, block := range SplitBlocks(body, e.config.MinChunkSize) {
		if len(entries) >= e.config.MaxExperienceList {
			break
		}
		lines := strings.Split(block, "\n")
		entry := types.ExperienceEntry{
			Title:       strings.TrimSpace(lines[0]),
			Description: block,
		}
		if m := yearRangeRegex.FindString(block); m != "" {
			entry.Duration = m
		}
		entry.Company = matchOrganization(block, orgs)
		if entry.Company == "" && len(lines) > 1 {
			second := strings.TrimSpace(lines[1])
			// 第二行通常是 "公司名 | 地点" 或 "公司名, 地点"
			second = strings.SplitN(second, "|", 2)[0]
			second = strings.SplitN(second, ",", 2)[0]
			second = yearRangeRegex.ReplaceAllString(second, "")
			entry.Company = strings.TrimSpace(strings.Trim(second, "-–— "))
		}
		entries = append(entries, entry)
	}
	return entries
}

// matchOrganization 返回首个出现在块中的NER组织名
func matchOrganization(block string, orgs []string) string {
	lower := strings.ToLower(block)
	for _, org := range orgs {
		if org != "" && strings.Contains(lower, strings.ToLower(org)) {
			return org
		}
	}
	return ""
}

// extractTotalYears 计算总工作年限
// 明示的"N years of experience"优先；否则累加经历章节里的年份区间，
// 单段区间长度截断到(0, MaxExperienceGap]，"present"按当前年份计
func (e *ResumeExtractor) extractTotalYears(text, experienceBody string) float64 {
	if m := explicitYearsRegex.FindStringSubmatch(text); m != nil {
		years, err := strconv.Atoi(m[1])
		if err == nil && years >= 0 {
			if years > e.config.MaxExperienceGap {
				years = e.config.MaxExperienceGap
			}
			return float64(years)
		}
	}

	source := experienceBody
	if source == "" {
		source = text
	}
	currentYear := e.now().Year()
	total := 0.0
	for _, m := range yearRangeRegex.FindAllStringSubmatch(source, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end := currentYear
		if y, err := strconv.Atoi(m[2]); err == nil {
			end = y
		}
		span := end - start
		if span <= 0 {
			continue
		}
		if span > e.config.MaxExperienceGap {
			span = e.config.MaxExperienceGap
		}
		total += float64(span)
	}
	if total > float64(e.config.MaxExperienceGap) {
		total = float64(e.config.MaxExperienceGap)
	}
	return total
}

// extractEducation 抽取教育经历条目和最高学历
// 学历阶梯按词表顺序（资历从高到低）首个命中者即为最高学历
func (e *ResumeExtractor) extractEducation(sections []*Section, text string) ([]types.EducationEntry, types.EducationLevel) {
	body := sectionBody(sections, "education")

	entries := []types.EducationEntry{}
	for _, block := range SplitBlocks(body, e.config.MinChunkSize/2) {
		if len(entries) >= 3 {
			break
		}
		lines := strings.Split(block, "\n")
		entry := types.EducationEntry{
			Degree:  strings.TrimSpace(lines[0]),
			Details: block,
		}
		if len(lines) > 1 {
			entry.Institution = strings.TrimSpace(strings.SplitN(lines[1], ",", 2)[0])
		}
		if m := gradYearRegex.FindAllString(block, -1); len(m) > 0 {
			entry.Year = m[len(m)-1]
		}
		entries = append(entries, entry)
	}

	// 学历关键词在全词边界上扫描，教育章节优先、全篇兜底
	scanText := strings.ToLower(body)
	if scanText == "" {
		scanText = strings.ToLower(text)
	}
	for _, dk := range e.lexicon.DegreeKeywords {
		if containsWord(scanText, strings.ToLower(dk.Keyword)) {
			return entries, types.EducationLevelFromString(dk.Level)
		}
	}
	// 教育章节没命中时再扫全篇（学历可能写在summary里）
	if body != "" {
		lowerAll := strings.ToLower(text)
		for _, dk := range e.lexicon.DegreeKeywords {
			if containsWord(lowerAll, strings.ToLower(dk.Keyword)) {
				return entries, types.EducationLevelFromString(dk.Level)
			}
		}
	}
	return entries, types.EducationNone
}

// extractCertifications 抽取证书列表（最多10条）
// 先收证书章节的条目行，再用词表关键词兜底扫描全篇
func (e *ResumeExtractor) extractCertifications(sections []*Section, text string) []string {
	certs := []string{}
	seen := make(map[string]struct{})
	add := func(c string) {
		c = strings.TrimSpace(strings.TrimLeft(c, "-•*· \t"))
		if c == "" || len(certs) >= 10 {
			return
		}
		key := strings.ToLower(c)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		certs = append(certs, c)
	}

	body := sectionBody(sections, "certifications")
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) != "" {
			add(line)
		}
	}

	lower := strings.ToLower(text)
	for _, keyword := range e.lexicon.CertificationKeywords {
		if len(certs) >= 10 {
			break
		}
		if strings.Contains(lower, strings.ToLower(keyword)) {
			add(keyword)
		}
	}
	return certs
}

// extractProjects 抽取项目条目（最多5条）
func (e *ResumeExtractor) extractProjects(sections []*Section) []types.ProjectEntry {
	body := sectionBody(sections, "projects")
	projects := []types.ProjectEntry{}
	for _, block := range SplitBlocks(body, e.config.MinChunkSize/2) {
		if len(projects) >= 5 {
			break
		}
		lines := strings.SplitN(block, "\n", 2)
		entry := types.ProjectEntry{
			Name: strings.TrimSpace(strings.Trim(lines[0], "-•*· ")),
		}
		if len(lines) > 1 {
			entry.Description = strings.TrimSpace(lines[1])
		}
		projects = append(projects, entry)
	}
	return projects
}

// extractLocation 抽取所在城市/地区
// 链条：NER地名(前10行) -> 已知城市表 -> "City, Country"正则 -> 大区名 -> nil
func (e *ResumeExtractor) extractLocation(ctx context.Context, text string) *string {
	head := topLines(text, 10)

	if e.recognizer != nil {
		if places := e.recognizer.Places(ctx, head); len(places) > 0 {
			place := strings.TrimSpace(places[0])
			if place != "" {
				return &place
			}
		}
	}

	lowerHead := strings.ToLower(head)
	for _, place := range e.lexicon.KnownPlaces {
		if containsWord(lowerHead, strings.ToLower(place)) {
			p := place
			return &p
		}
	}

	if m := cityCountryRegex.FindStringSubmatch(head); m != nil {
		loc := m[1] + ", " + m[2]
		return &loc
	}

	lowerAll := strings.ToLower(text)
	for _, region := range e.lexicon.RegionNames {
		if containsWord(lowerAll, strings.ToLower(region)) {
			r := region
			return &r
		}
	}
	return nil
}

// ----- 工具函数 -----

// sectionBody 在已切好的章节里查指定类别的正文
func sectionBody(sections []*Section, sectionType string) string {
	for _, s := range sections {
		if s.Type == sectionType {
			return s.Content
		}
	}
	return ""
}

// topLines 返回文本前n个非空行拼接的字符串
func topLines(text string, n int) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
		if len(out) >= n {
			break
		}
	}
	return strings.Join(out, "\n")
}

// containsWord 小写全词匹配（两侧均不是字母数字）
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	idx := 0
	for {
		pos := strings.Index(haystack[idx:], needle)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(needle)
		beforeOK := start == 0 || !isWordByte(haystack[start-1])
		afterOK := end == len(haystack) || !isWordByte(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// sortedUnique 排序去重字符串切片（原切片不变）
func sortedUnique(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
