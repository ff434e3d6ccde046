package embedding

import (
	"context"
	"errors"
	"math"
	"strings"
)

// ErrSimilarityUnavailable 语义相似度能力未配置
var ErrSimilarityUnavailable = errors.New("语义相似度能力未配置")

// Similarity 两段文本的语义相似度能力
// 返回值在[-1, 1]区间；出错时由调用方降级为中性分
type Similarity interface {
	Score(ctx context.Context, a, b string) (float64, error)
}

// EmbeddingSimilarity 基于向量余弦的语义相似度实现
type EmbeddingSimilarity struct {
	embedder TextEmbedder
}

// NewEmbeddingSimilarity 创建基于向量化后端的相似度计算器
func NewEmbeddingSimilarity(embedder TextEmbedder) *EmbeddingSimilarity {
	return &EmbeddingSimilarity{embedder: embedder}
}

// Score 对两段文本各取一个向量并计算余弦相似度
// 任一文本为空白时返回错误，让调用方走中性分路径
func (s *EmbeddingSimilarity) Score(ctx context.Context, a, b string) (float64, error) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0, errors.New("相似度输入文本为空")
	}
	vectors, err := s.embedder.EmbedStrings(ctx, []string{a, b})
	if err != nil {
		return 0, err
	}
	if len(vectors) != 2 {
		return 0, errors.New("向量化返回数量异常")
	}
	return Cosine(vectors[0], vectors[1])
}

// NoopSimilarity 永远不可用的相似度实现
// 未配置embedding后端时注入它，匹配器对语义分统一降级为中性值
type NoopSimilarity struct{}

// Score 恒定返回不可用错误
func (NoopSimilarity) Score(_ context.Context, _, _ string) (float64, error) {
	return 0, ErrSimilarityUnavailable
}

// Cosine 计算两个向量的余弦相似度
// 维度不一致或任一向量为零向量时报错（零向量没有方向）
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.New("向量维度不一致")
	}
	if len(a) == 0 {
		return 0, errors.New("向量为空")
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, errors.New("零向量无法计算余弦相似度")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
