package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruit-match-go/internal/config"
)

// newTestServer 启动一个OpenAI兼容的假embedding服务
func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *HTTPEmbedder) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	embedder, err := NewHTTPEmbedder(config.EmbeddingConfig{
		BaseURL:        server.URL,
		APIKey:         "test-key",
		Model:          "test-model",
		Dimensions:     4,
		TimeoutSeconds: 2,
	})
	require.NoError(t, err, "创建HTTP向量化器不应返回错误")
	return server, embedder
}

// TestEmbedStrings 验证请求构造与响应解析（乱序index应被归位）
func TestEmbedStrings(t *testing.T) {
	var gotAuth, gotModel string
	_, embedder := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req), "请求体应为合法JSON")
		gotModel, _ = req["model"].(string)

		// 故意乱序返回，index应被用于归位
		resp := map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"object": "embedding", "index": 1, "embedding": []float64{0, 1, 0, 0}},
				{"object": "embedding", "index": 0, "embedding": []float64{1, 0, 0, 0}},
			},
			"model": "test-model",
			"usage": map[string]any{"prompt_tokens": 10, "total_tokens": 10},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp), "响应序列化失败")
	})

	vectors, err := embedder.EmbedStrings(context.Background(), []string{"first", "second"})
	require.NoError(t, err, "向量化不应返回错误")
	require.Len(t, vectors, 2, "应返回与输入等量的向量")
	assert.Equal(t, []float64{1, 0, 0, 0}, vectors[0], "乱序响应应按index归位")
	assert.Equal(t, []float64{0, 1, 0, 0}, vectors[1], "乱序响应应按index归位")
	assert.Equal(t, "Bearer test-key", gotAuth, "应携带Bearer认证头")
	assert.Equal(t, "test-model", gotModel, "应携带配置的模型名")
}

// TestEmbedStringsEmptyInput 验证空输入直接返回空结果
func TestEmbedStringsEmptyInput(t *testing.T) {
	_, embedder := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("空输入不应发起HTTP请求")
	})

	vectors, err := embedder.EmbedStrings(context.Background(), nil)
	require.NoError(t, err, "空输入不应返回错误")
	assert.Empty(t, vectors, "空输入应返回空结果")
}

// TestEmbedStringsAPIError 验证非200响应与API级错误
func TestEmbedStringsAPIError(t *testing.T) {
	_, embedder := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "Invalid API key",
			"type":    "invalid_request_error",
		})
	})

	_, err := embedder.EmbedStrings(context.Background(), []string{"text"})
	assert.Error(t, err, "非200响应应返回错误")
	assert.Contains(t, err.Error(), "Invalid API key", "错误应包含API返回的消息")
}

// TestEmbedStringsCountMismatch 验证响应数量不匹配时报错
func TestEmbedStringsCountMismatch(t *testing.T) {
	_, embedder := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   []map[string]any{},
			"model":  "test-model",
		})
	})

	_, err := embedder.EmbedStrings(context.Background(), []string{"a", "b"})
	assert.Error(t, err, "响应数量与输入不一致应返回错误")
}

// TestNewHTTPEmbedderValidation 验证必填配置
func TestNewHTTPEmbedderValidation(t *testing.T) {
	_, err := NewHTTPEmbedder(config.EmbeddingConfig{BaseURL: "https://example.com"})
	assert.Error(t, err, "缺少API密钥应报错")

	_, err = NewHTTPEmbedder(config.EmbeddingConfig{APIKey: "key"})
	assert.Error(t, err, "缺少端点地址应报错")
}

// TestSingleton 验证单例的复用与重置
func TestSingleton(t *testing.T) {
	ResetHTTPEmbedder()
	t.Cleanup(ResetHTTPEmbedder)

	cfg := config.EmbeddingConfig{BaseURL: "https://example.com/v1/embeddings", APIKey: "key"}
	first, err := GetHTTPEmbedder(cfg)
	require.NoError(t, err, "首次获取单例不应报错")
	second, err := GetHTTPEmbedder(cfg)
	require.NoError(t, err, "再次获取单例不应报错")
	assert.Same(t, first, second, "两次获取应返回同一实例")

	ResetHTTPEmbedder()
	third, err := GetHTTPEmbedder(cfg)
	require.NoError(t, err, "重置后获取不应报错")
	assert.NotSame(t, first, third, "重置后应创建新实例")
}

// TestSingletonRetryAfterFailure 验证首次构造失败后可重试，不会陷入(nil,nil)
func TestSingletonRetryAfterFailure(t *testing.T) {
	ResetHTTPEmbedder()
	t.Cleanup(ResetHTTPEmbedder)

	bad := config.EmbeddingConfig{BaseURL: "https://example.com/v1/embeddings"}
	embedder, err := GetHTTPEmbedder(bad)
	require.Error(t, err, "缺少API密钥应构造失败")
	assert.Nil(t, embedder, "构造失败不应返回实例")

	// 再次用坏配置调用仍应报错而不是返回(nil, nil)
	embedder, err = GetHTTPEmbedder(bad)
	require.Error(t, err, "重试失败的配置仍应报错")
	assert.Nil(t, embedder, "失败的重试不应返回实例")

	// 修正配置后重试应成功
	good := config.EmbeddingConfig{BaseURL: "https://example.com/v1/embeddings", APIKey: "key"}
	embedder, err = GetHTTPEmbedder(good)
	require.NoError(t, err, "修正配置后应构造成功")
	assert.NotNil(t, embedder, "成功的重试应返回实例")
}
