package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNormalize 验证技能规范化：小写、去标点、折叠空白
func TestNormalize(t *testing.T) {
	assert.Equal(t, "python", Normalize("  Python  "), "前后空白应被去除并小写")
	assert.Equal(t, "c", Normalize("C++"), "标点应被去除")
	assert.Equal(t, "machine learning", Normalize("Machine   Learning!"), "连续空白应折叠为单个空格")
	assert.Equal(t, "nodejs", Normalize("Node.js"), "点号应被去除")
	assert.Equal(t, "", Normalize("!!!"), "纯标点字符串规范化后为空")
}

// TestFindSkillsWholeWord 验证全词匹配不会命中子串
func TestFindSkillsWholeWord(t *testing.T) {
	lex := Default()

	found := lex.FindSkills("Experienced in Python and Django development")
	assert.Contains(t, found, "Python", "应命中 Python")
	assert.Contains(t, found, "Django", "应命中 Django")

	// "Go" 不应命中 "Google" 里的子串
	found = lex.FindSkills("Worked at Google on search infrastructure")
	assert.NotContains(t, found, "Go", "Go 不应命中 Google 的子串")

	// 句尾标点不影响命中
	found = lex.FindSkills("My favorite language is Python.")
	assert.Contains(t, found, "Python", "句尾带句号仍应命中")
}

// TestFindSkillsSpecialChars 验证带特殊字符的技能词
func TestFindSkillsSpecialChars(t *testing.T) {
	lex := Default()

	found := lex.FindSkills("Proficient in C++ and C# programming")
	assert.Contains(t, found, "C++", "应命中 C++")
	assert.Contains(t, found, "C#", "应命中 C#")
	// "C" 不应因 "C++" 中的前缀而误报
	assert.NotContains(t, found, "C", "C 不应命中 C++ 的前缀")
}

// TestFindSkillsDeterministic 验证结果去重且按字母排序
func TestFindSkillsDeterministic(t *testing.T) {
	lex := Default()
	text := "Python python PYTHON Docker docker AWS"

	first := lex.FindSkills(text)
	second := lex.FindSkills(text)
	assert.Equal(t, first, second, "相同输入应产出相同结果")
	assert.True(t, sortedStrings(first), "结果应按字母排序")

	count := 0
	for _, s := range first {
		if s == "Python" {
			count++
		}
	}
	assert.Equal(t, 1, count, "结果应去重")
}

// TestFindSkillsEmptyText 验证空文本返回空列表而不是nil
func TestFindSkillsEmptyText(t *testing.T) {
	lex := Default()
	found := lex.FindSkills("")
	assert.NotNil(t, found, "空文本应返回空列表")
	assert.Empty(t, found, "空文本不应命中任何技能")
}

// TestSynonymGroups 验证同义词组的等价判断
func TestSynonymGroups(t *testing.T) {
	lex := Default()

	assert.True(t, lex.InSameSynonymGroup("js", "javascript"), "js 与 javascript 应在同一词组")
	assert.True(t, lex.InSameSynonymGroup("k8s", "kubernetes"), "k8s 与 kubernetes 应在同一词组")
	assert.False(t, lex.InSameSynonymGroup("python", "javascript"), "python 与 javascript 不应在同一词组")

	assert.True(t, lex.InDifferentSynonymGroups("java", "javascript"), "java 与 javascript 应分属不同词组")
	assert.False(t, lex.InDifferentSynonymGroups("java", "notaskill"), "词表外的词不构成不同词组")
}

// TestCanonical 验证规范显示拼写查询
func TestCanonical(t *testing.T) {
	lex := Default()
	assert.Equal(t, "Python", lex.Canonical("python"), "应返回词表中的规范拼写")
	assert.Equal(t, "somethingunknown", lex.Canonical("somethingunknown"), "词表外的词原样返回")
}

// TestLoadFromYAML 验证fixture词表加载与索引构建
func TestLoadFromYAML(t *testing.T) {
	content := `
categories:
  programming_languages:
    - Python
    - Elixir
synonym_groups:
  - [python, py]
degree_keywords:
  - keyword: phd
    level: phd
section_headers:
  skills:
    - skills
    - technical skills
`
	tmpDir, err := os.MkdirTemp("", "lexicon-test")
	require.NoError(t, err, "无法创建临时目录")
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "无法写入词表文件")

	lex, err := LoadFromYAML(path)
	require.NoError(t, err, "加载词表不应返回错误")

	found := lex.FindSkills("Elixir and Python developer")
	assert.Contains(t, found, "Elixir", "自定义词表的技能应可被命中")
	assert.True(t, lex.InSameSynonymGroup("python", "py"), "自定义同义词组应生效")
	assert.Len(t, lex.DegreeKeywords, 1, "学历关键词应被加载")
}

// TestLoadFromYAMLMissingFile 验证文件不存在时报错
func TestLoadFromYAMLMissingFile(t *testing.T) {
	_, err := LoadFromYAML("/nonexistent/lexicon.yaml")
	assert.Error(t, err, "文件不存在应返回错误")
}

// sortedStrings 判断切片是否按字母升序
func sortedStrings(items []string) bool {
	for i := 1; i < len(items); i++ {
		if items[i-1] > items[i] {
			return false
		}
	}
	return true
}
