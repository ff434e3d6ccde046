package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCosine 验证余弦相似度的基本性质
func TestCosine(t *testing.T) {
	same, err := Cosine([]float64{1, 2, 3}, []float64{1, 2, 3})
	require.NoError(t, err, "相同向量不应报错")
	assert.InDelta(t, 1.0, same, 1e-9, "相同向量的余弦应为1")

	orthogonal, err := Cosine([]float64{1, 0}, []float64{0, 1})
	require.NoError(t, err, "正交向量不应报错")
	assert.InDelta(t, 0.0, orthogonal, 1e-9, "正交向量的余弦应为0")

	opposite, err := Cosine([]float64{1, 0}, []float64{-1, 0})
	require.NoError(t, err, "反向向量不应报错")
	assert.InDelta(t, -1.0, opposite, 1e-9, "反向向量的余弦应为-1")
}

// TestCosineErrors 验证维度不一致与零向量的错误路径
func TestCosineErrors(t *testing.T) {
	_, err := Cosine([]float64{1, 2}, []float64{1, 2, 3})
	assert.Error(t, err, "维度不一致应报错")

	_, err = Cosine([]float64{0, 0}, []float64{1, 2})
	assert.Error(t, err, "零向量应报错")

	_, err = Cosine([]float64{}, []float64{})
	assert.Error(t, err, "空向量应报错")
}

// fakeEmbedder 测试用的确定性向量化桩
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (f *fakeEmbedder) EmbedStrings(_ context.Context, texts []string) ([][]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		out[i] = f.vectors[text]
	}
	return out, nil
}

func (f *fakeEmbedder) GetDimensions() int { return 2 }

// TestEmbeddingSimilarity 验证基于向量后端的相似度计算
func TestEmbeddingSimilarity(t *testing.T) {
	s := NewEmbeddingSimilarity(&fakeEmbedder{
		vectors: map[string][]float64{
			"python developer": {1, 0},
			"python engineer":  {0.9, 0.1},
			"pastry chef":      {0, 1},
		},
	})

	close, err := s.Score(context.Background(), "python developer", "python engineer")
	require.NoError(t, err, "相似文本打分不应报错")
	far, err := s.Score(context.Background(), "python developer", "pastry chef")
	require.NoError(t, err, "无关文本打分不应报错")
	assert.Greater(t, close, far, "相似文本的相似度应高于无关文本")
}

// TestEmbeddingSimilarityErrors 验证空文本与后端错误的传播
func TestEmbeddingSimilarityErrors(t *testing.T) {
	s := NewEmbeddingSimilarity(&fakeEmbedder{})
	_, err := s.Score(context.Background(), "", "some job text")
	assert.Error(t, err, "空文本应报错，由调用方降级为中性分")

	s = NewEmbeddingSimilarity(&fakeEmbedder{err: errors.New("后端不可用")})
	_, err = s.Score(context.Background(), "candidate", "job")
	assert.Error(t, err, "后端错误应向上传播")
}

// TestNoopSimilarity 验证空实现恒定不可用
func TestNoopSimilarity(t *testing.T) {
	_, err := NoopSimilarity{}.Score(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrSimilarityUnavailable, "空实现应返回不可用错误")
}
