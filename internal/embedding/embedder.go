package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"recruit-match-go/internal/config"
	"recruit-match-go/internal/logger"
)

// TextEmbedder 文本向量化能力
type TextEmbedder interface {
	// EmbedStrings 将一批文本转换为向量，顺序与输入一致
	EmbedStrings(ctx context.Context, texts []string) ([][]float64, error)
	// GetDimensions 返回配置的向量维度
	GetDimensions() int
}

// HTTPEmbedder 调用OpenAI兼容 /embeddings 端点的向量化实现
type HTTPEmbedder struct {
	apiKey     string
	model      string
	dimensions int
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewHTTPEmbedder 创建HTTP向量化器
// 超时由配置的 timeout_seconds 控制，调用方不必再包context超时
func NewHTTPEmbedder(cfg config.EmbeddingConfig) (*HTTPEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API密钥不能为空")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("embedding端点地址不能为空")
	}
	model := cfg.Model
	if model == "" {
		model = "text-embedding-v3"
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPEmbedder{
		apiKey:     cfg.APIKey,
		model:      model,
		dimensions: cfg.Dimensions,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Logger.With().Str("component", "http_embedder").Logger(),
	}, nil
}

// GetDimensions 返回配置的向量维度
func (e *HTTPEmbedder) GetDimensions() int {
	return e.dimensions
}

// embeddingRequest OpenAI兼容的Embedding请求结构
type embeddingRequest struct {
	Input          interface{} `json:"input"` // string 或 []string
	Model          string      `json:"model"`
	Dimensions     int         `json:"dimensions,omitempty"`
	EncodingFormat string      `json:"encoding_format,omitempty"`
}

// embeddingResponse OpenAI兼容的Embedding响应结构
type embeddingResponse struct {
	Object string           `json:"object"`
	Data   []embeddingEntry `json:"data"`
	Model  string           `json:"model"`
	Usage  embeddingUsage   `json:"usage"`
	Error  *apiError        `json:"error,omitempty"`
}

type embeddingEntry struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

type embeddingUsage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// apiError 200响应里可能携带的API级错误
type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param"`
	Code    string `json:"code"`
}

// EmbedStrings 将文本批量转换为向量
func (e *HTTPEmbedder) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	var input interface{}
	if len(texts) == 1 {
		input = texts[0]
	} else {
		input = texts
	}
	reqBody := embeddingRequest{
		Input: input,
		Model: e.model,
	}
	if e.dimensions > 0 {
		reqBody.Dimensions = e.dimensions
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("API调用失败, 状态码: %d, 类型: %s, 错误: %s", resp.StatusCode, apiErr.Type, apiErr.Message)
		}
		return nil, fmt.Errorf("API调用失败, 状态码: %d, 响应: %s", resp.StatusCode, string(body))
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("解析响应JSON失败: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, fmt.Errorf("API返回错误: 类型=%s, 消息=%s", parsed.Error.Type, parsed.Error.Message)
	}
	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("响应向量数量不匹配: 期望%d, 实际%d", len(texts), len(parsed.Data))
	}

	// 响应顺序不保证，按index归位
	out := make([][]float64, len(texts))
	for _, entry := range parsed.Data {
		if entry.Index < 0 || entry.Index >= len(out) {
			return nil, fmt.Errorf("响应向量下标越界: %d", entry.Index)
		}
		out[entry.Index] = entry.Embedding
	}

	e.logger.Debug().
		Int("texts", len(texts)).
		Int("prompt_tokens", parsed.Usage.PromptTokens).
		Msg("向量化完成")

	return out, nil
}
