package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDOCX 在内存中构造一个最小的docx文件
func buildDOCX(t *testing.T, paragraphs []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	for _, p := range paragraphs {
		doc += `<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`
	}
	doc += `</w:body></w:document>`

	f, err := zw.Create("word/document.xml")
	require.NoError(t, err, "无法创建zip条目")
	_, err = f.Write([]byte(doc))
	require.NoError(t, err, "无法写入document.xml")
	require.NoError(t, zw.Close(), "无法关闭zip写入器")
	return buf.Bytes()
}

// TestExtractFromBytesTXT 验证txt提取与换行归一化
func TestExtractFromBytesTXT(t *testing.T) {
	e := NewFileTextExtractor()

	text, metadata, err := e.ExtractFromBytes(context.Background(), []byte("line one\r\nline two\r\n\r\n\r\n\r\nline three"), "resume.txt")
	require.NoError(t, err, "txt提取不应返回错误")
	assert.Equal(t, "line one\nline two\n\nline three", text, "CRLF应归一化且连续空行应被压缩")
	assert.Equal(t, ".txt", metadata["file_ext"], "元数据应包含扩展名")
	assert.Equal(t, len("line one\nline two\n\nline three"), metadata["char_count"], "元数据应包含字符数")
}

// TestExtractFromBytesDOCX 验证docx解包与段落换行
func TestExtractFromBytesDOCX(t *testing.T) {
	e := NewFileTextExtractor()
	data := buildDOCX(t, []string{"Ahmed Khan", "Python developer with Django experience"})

	text, _, err := e.ExtractFromBytes(context.Background(), data, "resume.docx")
	require.NoError(t, err, "docx提取不应返回错误")
	assert.Contains(t, text, "Ahmed Khan", "应提取出第一段文本")
	assert.Contains(t, text, "Python developer", "应提取出第二段文本")
	assert.Contains(t, text, "Ahmed Khan\n", "段落之间应有换行")
}

// TestExtractFromBytesUnsupported 验证不支持的类型返回空文本而非错误
func TestExtractFromBytesUnsupported(t *testing.T) {
	e := NewFileTextExtractor()

	text, metadata, err := e.ExtractFromBytes(context.Background(), []byte("whatever"), "resume.xlsx")
	assert.NoError(t, err, "不支持的类型不应返回错误")
	assert.Equal(t, "", text, "不支持的类型应返回空文本作为失败标记")
	assert.Equal(t, ".xlsx", metadata["file_ext"], "元数据仍应包含扩展名")
}

// TestExtractFromBytesCorrupt 验证损坏文件返回空文本而非错误
func TestExtractFromBytesCorrupt(t *testing.T) {
	e := NewFileTextExtractor()

	text, _, err := e.ExtractFromBytes(context.Background(), []byte("not a real pdf"), "resume.pdf")
	assert.NoError(t, err, "损坏的pdf不应返回错误")
	assert.Equal(t, "", text, "损坏的pdf应返回空文本")

	text, _, err = e.ExtractFromBytes(context.Background(), []byte("not a real zip"), "resume.docx")
	assert.NoError(t, err, "损坏的docx不应返回错误")
	assert.Equal(t, "", text, "损坏的docx应返回空文本")
}

// TestExtractFromFile 验证从本地文件提取与文件缺失的降级
func TestExtractFromFile(t *testing.T) {
	e := NewFileTextExtractor()

	tmpDir, err := os.MkdirTemp("", "extractor-test")
	require.NoError(t, err, "无法创建临时目录")
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Python engineer"), 0644), "无法写入测试文件")

	text, _, err := e.ExtractFromFile(context.Background(), path)
	require.NoError(t, err, "文件提取不应返回错误")
	assert.Equal(t, "Python engineer", text, "应读取文件内容")

	text, _, err = e.ExtractFromFile(context.Background(), filepath.Join(tmpDir, "missing.txt"))
	assert.NoError(t, err, "文件不存在不应返回错误")
	assert.Equal(t, "", text, "文件不存在应返回空文本")
}
