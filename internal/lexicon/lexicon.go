package lexicon

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon 技能词表：分类词汇、同义词组、学历阶梯、地名等静态数据。
// 构造后不可变，通过引用注入抽取器和匹配器，
// 测试时可用小型fixture词表替换（不使用包级全局变量）。
type Lexicon struct {
	// 分类词汇，键为类别名（programming_languages / frameworks / ...）
	// 值为规范（显示）拼写列表
	Categories map[string][]string

	// 同义词组，每组内的规范化拼写视为等价技能
	SynonymGroups [][]string

	// 学历关键词，按资历从高到低排列
	DegreeKeywords []DegreeKeyword

	// 证书关键词
	CertificationKeywords []string

	// 福利关键词（小写）
	BenefitKeywords []string

	// 地名表：城市在前、大区在后
	KnownPlaces []string
	RegionNames []string

	// 章节标题同义词，键为章节名
	SectionHeaders map[string][]string

	// 规范化拼写 -> 同义词组下标
	synonymIndex map[string]int
	// 规范化拼写 -> 规范显示拼写
	canonicalIndex map[string]string
	// 全词匹配用的编译正则，键为规范显示拼写
	termPatterns map[string]*regexp.Regexp
}

// DegreeKeyword 一个学历关键词及其对应的枚举值
type DegreeKeyword struct {
	Keyword string `yaml:"keyword"` // 例如 "phd"、"bachelor"、"b.tech"
	Level   string `yaml:"level"`   // types.EducationLevel 的字符串值
}

// lexiconFile 词表YAML文件的结构，用于测试替换
type lexiconFile struct {
	Categories            map[string][]string `yaml:"categories"`
	SynonymGroups         [][]string          `yaml:"synonym_groups"`
	DegreeKeywords        []DegreeKeyword     `yaml:"degree_keywords"`
	CertificationKeywords []string            `yaml:"certification_keywords"`
	BenefitKeywords       []string            `yaml:"benefit_keywords"`
	KnownPlaces           []string            `yaml:"known_places"`
	RegionNames           []string            `yaml:"region_names"`
	SectionHeaders        map[string][]string `yaml:"section_headers"`
}

// New 从给定数据构建词表并建立索引
func New(categories map[string][]string, synonymGroups [][]string) *Lexicon {
	lex := &Lexicon{
		Categories:    categories,
		SynonymGroups: synonymGroups,
	}
	lex.buildIndexes()
	return lex
}

// LoadFromYAML 从YAML文件加载词表（主要用于测试fixture）
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取词表文件失败: %w", err)
	}
	var f lexiconFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("解析词表文件失败: %w", err)
	}
	lex := &Lexicon{
		Categories:            f.Categories,
		SynonymGroups:         f.SynonymGroups,
		DegreeKeywords:        f.DegreeKeywords,
		CertificationKeywords: f.CertificationKeywords,
		BenefitKeywords:       f.BenefitKeywords,
		KnownPlaces:           f.KnownPlaces,
		RegionNames:           f.RegionNames,
		SectionHeaders:        f.SectionHeaders,
	}
	lex.buildIndexes()
	return lex, nil
}

// buildIndexes 建立规范化索引与全词匹配正则
func (l *Lexicon) buildIndexes() {
	l.synonymIndex = make(map[string]int)
	for i, group := range l.SynonymGroups {
		for _, term := range group {
			l.synonymIndex[Normalize(term)] = i
		}
	}

	l.canonicalIndex = make(map[string]string)
	l.termPatterns = make(map[string]*regexp.Regexp)
	for _, terms := range l.Categories {
		for _, term := range terms {
			norm := Normalize(term)
			if _, exists := l.canonicalIndex[norm]; !exists {
				l.canonicalIndex[norm] = term
			}
			if _, exists := l.termPatterns[term]; !exists {
				l.termPatterns[term] = wholeWordPattern(term)
			}
		}
	}
}

// AllSkillTerms 返回所有技能类别下的规范拼写（排序去重）
func (l *Lexicon) AllSkillTerms() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, terms := range l.Categories {
		for _, term := range terms {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}
	sort.Strings(out)
	return out
}

// FindSkills 对文本做全词、不区分大小写的技能扫描
// 命中时输出词表中的规范拼写，结果去重并按字母排序以保证可复现
func (l *Lexicon) FindSkills(text string) []string {
	if text == "" {
		return []string{}
	}
	seen := make(map[string]struct{})
	var found []string
	for _, term := range l.AllSkillTerms() {
		if l.termPatterns[term].MatchString(text) {
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				found = append(found, term)
			}
		}
	}
	sort.Strings(found)
	return found
}

// Canonical 返回规范化拼写对应的规范显示拼写，不在词表中时原样返回
func (l *Lexicon) Canonical(term string) string {
	if display, ok := l.canonicalIndex[Normalize(term)]; ok {
		return display
	}
	return term
}

// SynonymGroup 返回规范化技能所在同义词组的下标
func (l *Lexicon) SynonymGroup(normalized string) (int, bool) {
	id, ok := l.synonymIndex[normalized]
	return id, ok
}

// InSameSynonymGroup 判断两个规范化技能是否在同一同义词组
func (l *Lexicon) InSameSynonymGroup(a, b string) bool {
	ga, okA := l.synonymIndex[a]
	gb, okB := l.synonymIndex[b]
	return okA && okB && ga == gb
}

// InDifferentSynonymGroups 判断两个规范化技能是否分属不同同义词组
// 用于抑制包含式模糊匹配的误报（例如 java 与 javascript）
func (l *Lexicon) InDifferentSynonymGroups(a, b string) bool {
	ga, okA := l.synonymIndex[a]
	gb, okB := l.synonymIndex[b]
	return okA && okB && ga != gb
}

// normalizePunct 去标点用的正则（保留字母数字与空白）
var normalizePunct = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)

// normalizeSpace 折叠空白用的正则
var normalizeSpace = regexp.MustCompile(`\s+`)

// Normalize 技能字符串规范化：小写、去标点、折叠空白
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = normalizePunct.ReplaceAllString(s, "")
	s = normalizeSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// wholeWordPattern 为词表项构造全词、不区分大小写的匹配正则
// 不能直接用 \b：像 "c++"、"node.js" 这类词以非字母结尾
func wholeWordPattern(term string) *regexp.Regexp {
	escaped := regexp.QuoteMeta(strings.ToLower(term))
	return regexp.MustCompile(`(?i)(^|[^\p{L}\p{N}])` + escaped + `($|[^\p{L}\p{N}+#])`)
}
