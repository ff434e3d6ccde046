package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruit-match-go/internal/lexicon"
)

const sampleResume = `Ahmed Khan
Software Engineer
ahmed.khan@example.com | +92 300 1234567
Karachi, Pakistan

Summary
Backend engineer with a focus on distributed systems and developer tooling.

Work Experience

Senior Software Engineer
TechCorp | Karachi
2019 - 2023
Built and operated Python microservices on Kubernetes.

Software Engineer
StartupHub
2016 - 2019
Developed Django applications with PostgreSQL and Redis.

Education
BSc Computer Science
NED University, 2016

Skills
Python, Django, PostgreSQL, Docker, Kubernetes, AWS

Certifications
- AWS Certified Solutions Architect
- CKA

Projects
resume-parser
Open source resume parsing toolkit written in Go.
`

func newTestSegmenter(t *testing.T) *Segmenter {
	t.Helper()
	s, err := NewSegmenter(lexicon.Default(), SegmenterConfig{MinChunkSize: 20})
	require.NoError(t, err, "创建分段器不应返回错误")
	return s
}

// TestSegmentSampleResume 验证典型简历的章节切分
func TestSegmentSampleResume(t *testing.T) {
	s := newTestSegmenter(t)
	sections := s.Segment(sampleResume)
	require.NotEmpty(t, sections, "章节列表不应为空")

	types := make(map[string]string)
	for _, sec := range sections {
		types[sec.Type] = sec.Content
	}

	assert.Contains(t, types, "summary", "应识别出summary章节")
	assert.Contains(t, types, "experience", "应识别出experience章节")
	assert.Contains(t, types, "education", "应识别出education章节")
	assert.Contains(t, types, "skills", "应识别出skills章节")
	assert.Contains(t, types, "certifications", "应识别出certifications章节")
	assert.Contains(t, types, "projects", "应识别出projects章节")

	assert.Contains(t, types["experience"], "TechCorp", "经历章节应包含第一段经历")
	assert.Contains(t, types["experience"], "StartupHub", "经历章节应包含第二段经历")
	assert.NotContains(t, types["experience"], "NED University", "经历章节不应越界到教育章节")

	// 标题之前的联系块归入类别为空的首章节
	assert.Equal(t, "", sections[0].Type, "首章节应为未命名的联系块")
	assert.Contains(t, sections[0].Content, "ahmed.khan@example.com", "联系块应包含邮箱")
}

// TestSegmentHeaderVariants 验证标题同义词和冒号后缀
func TestSegmentHeaderVariants(t *testing.T) {
	s := newTestSegmenter(t)

	text := "EMPLOYMENT HISTORY:\nDid things at places.\n\nTechnical Skills\nPython, Go"
	sections := s.Segment(text)

	var haveExperience, haveSkills bool
	for _, sec := range sections {
		if sec.Type == "experience" {
			haveExperience = true
			assert.Contains(t, sec.Content, "Did things", "经历正文应归入对应章节")
		}
		if sec.Type == "skills" {
			haveSkills = true
		}
	}
	assert.True(t, haveExperience, "全大写带冒号的标题应被识别")
	assert.True(t, haveSkills, "同义词标题应被识别")
}

// TestSegmentEmptyText 验证空文本返回nil
func TestSegmentEmptyText(t *testing.T) {
	s := newTestSegmenter(t)
	assert.Nil(t, s.Segment(""), "空文本应返回nil")
	assert.Nil(t, s.Segment("   \n\n  "), "纯空白文本应返回nil")
}

// TestSectionBody 验证按类别取正文，缺失时为空串
func TestSectionBody(t *testing.T) {
	s := newTestSegmenter(t)
	body := s.SectionBody(sampleResume, "skills")
	assert.Contains(t, body, "Python", "技能正文应可按类别取出")
	assert.Equal(t, "", s.SectionBody(sampleResume, "benefits"), "缺失章节应返回空串")
}

// TestSplitBlocks 验证空行分块与噪声过滤
func TestSplitBlocks(t *testing.T) {
	body := "First block line one\nline two\n\nshort\n\nSecond block with enough characters here"
	blocks := SplitBlocks(body, 20)
	require.Len(t, blocks, 2, "短于阈值的噪声块应被丢弃")
	assert.Contains(t, blocks[0], "First block", "块应保持顺序")
	assert.Contains(t, blocks[1], "Second block", "块应保持顺序")
}
