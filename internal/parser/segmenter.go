package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"recruit-match-go/internal/lexicon"
)

// Section 定位到的一个文本章节
type Section struct {
	Type    string // 章节类别名（lexicon.SectionHeaders 的键）
	Title   string // 命中的标题行原文
	Content string // 标题之后到下一个已识别标题（任意类别）或文本结尾
}

// SegmenterConfig 分段器配置
type SegmenterConfig struct {
	// 自定义章节标题正则映射，键为章节类别名，覆盖词表生成的默认正则
	CustomSectionRegexMap map[string]string

	// 最小块大小（字符数），供调用方过滤噪声段落
	MinChunkSize int

	// 是否保留空行和格式
	PreserveFormat bool
}

// Segmenter 基于标题关键词启发式的章节定位器
// 标题行匹配"关键词 + 可选冒号"模式（不区分大小写）
type Segmenter struct {
	config SegmenterConfig

	// 编译好的章节标题正则
	sectionRegexMap map[string]*regexp.Regexp

	// 类别名的稳定遍历顺序
	sectionOrder []string
}

// NewSegmenter 用词表中的章节标题同义词构建分段器
func NewSegmenter(lex *lexicon.Lexicon, config SegmenterConfig) (*Segmenter, error) {
	if config.MinChunkSize <= 0 {
		config.MinChunkSize = 20
	}

	s := &Segmenter{
		config:          config,
		sectionRegexMap: make(map[string]*regexp.Regexp),
	}

	patterns := make(map[string]string)
	for section, synonyms := range lex.SectionHeaders {
		patterns[section] = headerPattern(synonyms)
	}
	// 合并自定义正则
	for section, pattern := range config.CustomSectionRegexMap {
		patterns[section] = pattern
	}

	for section, pattern := range patterns {
		regex, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("编译章节正则表达式错误 %s: %w", section, err)
		}
		s.sectionRegexMap[section] = regex
		s.sectionOrder = append(s.sectionOrder, section)
	}
	sort.Strings(s.sectionOrder)

	return s, nil
}

// headerPattern 由同义词列表生成标题行正则
// 匹配整行形如 "Experience"、"WORK HISTORY:"、"Skills :" 的标题
func headerPattern(synonyms []string) string {
	escaped := make([]string, 0, len(synonyms))
	for _, syn := range synonyms {
		escaped = append(escaped, regexp.QuoteMeta(syn))
	}
	return `(?i)^\s*(?:` + strings.Join(escaped, "|") + `)s?\s*[:：]?\s*$`
}

// Segment 把文本切分为有序章节列表
// 未命中任何标题的前导内容归入类别为空字符串的首章节（联系块等）
func (s *Segmenter) Segment(text string) []*Section {
	if !s.config.PreserveFormat {
		text = normalizeText(text)
	}
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")

	var sections []*Section
	current := &Section{Type: "", Title: ""}
	var content strings.Builder

	flush := func() {
		body := strings.TrimRight(content.String(), "\n")
		if body != "" || current.Title != "" {
			current.Content = strings.TrimSpace(body)
			sections = append(sections, current)
		}
	}

	for _, line := range lines {
		sectionType, ok := s.classifyLine(line)
		if ok && sectionType != current.Type {
			flush()
			current = &Section{Type: sectionType, Title: strings.TrimSpace(line)}
			content = strings.Builder{}
			continue
		}
		content.WriteString(line)
		content.WriteString("\n")
	}
	flush()

	return sections
}

// SectionBody 返回指定类别的章节正文，缺失时返回空串（不是错误）
func (s *Segmenter) SectionBody(text, sectionType string) string {
	for _, section := range s.Segment(text) {
		if section.Type == sectionType {
			return section.Content
		}
	}
	return ""
}

// MinChunkSize 返回噪声过滤阈值
func (s *Segmenter) MinChunkSize() int {
	return s.config.MinChunkSize
}

// classifyLine 判断一行是否为某个章节的标题行
func (s *Segmenter) classifyLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}
	for _, sectionType := range s.sectionOrder {
		if s.sectionRegexMap[sectionType].MatchString(trimmed) {
			return sectionType, true
		}
	}
	return "", false
}

var blankLineSplitter = regexp.MustCompile(`\n\s*\n+`)

// SplitBlocks 把章节正文按空行切成段落块，丢弃短于minLen的噪声块
func SplitBlocks(body string, minLen int) []string {
	var blocks []string
	for _, block := range blankLineSplitter.Split(body, -1) {
		block = strings.TrimSpace(block)
		if len(block) >= minLen {
			blocks = append(blocks, block)
		}
	}
	return blocks
}
