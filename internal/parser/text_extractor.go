package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	ledongpdf "github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"

	"recruit-match-go/internal/logger"
)

// TextExtractor 文本提取器接口：把简历文件的原始字节拍平成纯文本。
// 失败按文件隔离：损坏或不支持的文件返回空文本而不是错误，
// 调用方通过空文本标记区分"无信号"和"崩溃"。
type TextExtractor interface {
	// ExtractFromBytes 从字节数组提取文本和元数据
	// filename 仅用于识别扩展名和诊断日志，文本提供后不再影响分支逻辑
	ExtractFromBytes(ctx context.Context, data []byte, filename string) (string, map[string]any, error)

	// ExtractFromFile 从本地文件提取文本和元数据
	ExtractFromFile(ctx context.Context, filePath string) (string, map[string]any, error)
}

// FileTextExtractor 默认实现，支持 PDF / DOCX / TXT
type FileTextExtractor struct {
	logger zerolog.Logger
}

// NewFileTextExtractor 创建文本提取器
func NewFileTextExtractor() *FileTextExtractor {
	return &FileTextExtractor{
		logger: logger.Logger.With().Str("component", "text_extractor").Logger(),
	}
}

// ExtractFromFile 读取本地文件后按字节提取
func (e *FileTextExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, map[string]any, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		e.logger.Warn().Err(err).Str("path", filePath).Msg("读取简历文件失败")
		return "", emptyMetadata(filepath.Ext(filePath)), nil
	}
	return e.ExtractFromBytes(ctx, data, filePath)
}

// ExtractFromBytes 按扩展名分派提取，统一做换行归一化
func (e *FileTextExtractor) ExtractFromBytes(ctx context.Context, data []byte, filename string) (string, map[string]any, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	metadata := emptyMetadata(ext)

	var text string
	var err error
	switch ext {
	case ".pdf":
		var pages int
		text, pages, err = extractPDF(data)
		metadata["pages"] = pages
	case ".docx":
		text, err = extractDOCX(data)
	case ".txt":
		text = string(bytes.ToValidUTF8(data, nil))
	default:
		e.logger.Warn().Err(ErrUnsupportedFileType).Str("ext", ext).Str("file", filename).Msg("跳过简历文件")
		return "", metadata, nil
	}

	if err != nil {
		// 单个文件的解析失败不向上传播，返回空文本作为失败标记
		e.logger.Warn().Err(err).Str("file", filename).Msg("提取简历文本失败")
		return "", metadata, nil
	}

	text = normalizeText(text)
	metadata["char_count"] = utf8.RuneCountInString(text)
	e.logger.Debug().Str("file", filename).Int("chars", utf8.RuneCountInString(text)).Msg("简历文本提取完成")
	return text, metadata, nil
}

// extractPDF 使用 ledongthuc/pdf 从字节提取PDF纯文本
// 底层库在畸形文件上会panic，这里统一转成错误
func extractPDF(data []byte) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = NewExtractError("", "extractPDF", ErrExtractTextFailed, fmt.Sprintf("PDF解析panic: %v", r))
		}
	}()

	reader, err := ledongpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, err
	}
	rs, err := reader.GetPlainText()
	if err != nil {
		return "", reader.NumPage(), err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", reader.NumPage(), err
	}
	return buf.String(), reader.NumPage(), nil
}

// extractDOCX 解包docx（zip容器），解析 word/document.xml 中的段落文本
// 只关心w:p(段落)和其中的w:t(文本游程)，段落结束补换行
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docXML io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return "", err
			}
			break
		}
	}
	if docXML == nil {
		return "", errNoDocumentXML
	}
	defer docXML.Close()

	decoder := xml.NewDecoder(docXML)
	var sb strings.Builder
	var inText bool
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}

// normalizeText 统一换行符并压缩连续空行
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(text)
}

func emptyMetadata(ext string) map[string]any {
	return map[string]any{
		"file_ext":   ext,
		"char_count": 0,
	}
}
