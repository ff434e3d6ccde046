package embedding

import (
	"sync"

	"recruit-match-go/internal/config"
)

var (
	embedderInstance *HTTPEmbedder
	embedderOnce     sync.Once
	embedderMutex    sync.Mutex
)

// GetHTTPEmbedder 获取HTTP向量化器的单例实例
// 如果实例不存在则创建，存在则返回已有实例
func GetHTTPEmbedder(cfg config.EmbeddingConfig) (*HTTPEmbedder, error) {
	if embedderInstance != nil {
		return embedderInstance, nil
	}

	embedderMutex.Lock()
	defer embedderMutex.Unlock()

	if embedderInstance != nil {
		return embedderInstance, nil
	}

	var err error
	embedderOnce.Do(func() {
		embedderInstance, err = NewHTTPEmbedder(cfg)
	})
	if err != nil {
		// 构造失败不占用once，后续调用可带修正后的配置重试
		embedderInstance = nil
		embedderOnce = sync.Once{}
		return nil, err
	}

	return embedderInstance, nil
}

// ResetHTTPEmbedder 重置向量化器单例（主要用于测试）
func ResetHTTPEmbedder() {
	embedderMutex.Lock()
	defer embedderMutex.Unlock()
	embedderInstance = nil
	embedderOnce = sync.Once{}
}
