package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 应用程序配置
type Config struct {
	// 匹配权重配置
	Matcher MatcherConfig `yaml:"matcher"`

	// Embedding后端配置（语义相似度）
	Embedding EmbeddingConfig `yaml:"embedding"`

	// 抽取器配置
	Extractor ExtractorConfig `yaml:"extractor"`

	// 词表文件路径（可选，为空时使用内置词表）
	LexiconPath string `yaml:"lexicon_path"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`
}

// MatcherConfig 匹配器配置
// 五个权重是配置而非硬编码常量，便于调优；加载时校验其和为1.0
type MatcherConfig struct {
	SkillsWeight     float64 `yaml:"skills_weight"`     // 技能权重，默认0.40
	ExperienceWeight float64 `yaml:"experience_weight"` // 经验权重，默认0.25
	EducationWeight  float64 `yaml:"education_weight"`  // 学历权重，默认0.15
	LocationWeight   float64 `yaml:"location_weight"`   // 地点权重，默认0.10
	SemanticWeight   float64 `yaml:"semantic_weight"`   // 语义权重，默认0.10
}

// EmbeddingConfig Embedding后端配置（OpenAI兼容接口）
type EmbeddingConfig struct {
	BaseURL        string `yaml:"base_url"`        // /embeddings 端点地址
	APIKey         string `yaml:"api_key"`         // API密钥，可由环境变量覆盖
	Model          string `yaml:"model"`           // 模型名称
	Dimensions     int    `yaml:"dimensions"`      // 向量维度
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 单次请求超时(秒)，超时降级为中性分
}

// ExtractorConfig 抽取器配置
type ExtractorConfig struct {
	MinChunkSize      int `yaml:"min_chunk_size"`      // 段落噪声过滤的最小字符数，默认20
	MaxExperienceGap  int `yaml:"max_experience_gap"`  // 单段年限区间的上限(年)，默认50
	MaxExperienceList int `yaml:"max_experience_list"` // 工作经历条目上限，默认5
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// weightSumTolerance 权重求和允许的浮点误差
const weightSumTolerance = 1e-9

// DefaultConfig 返回带有文档化默认值的配置（测试和无配置文件场景使用）
func DefaultConfig() *Config {
	return &Config{
		Matcher: MatcherConfig{
			SkillsWeight:     0.40,
			ExperienceWeight: 0.25,
			EducationWeight:  0.15,
			LocationWeight:   0.10,
			SemanticWeight:   0.10,
		},
		Embedding: EmbeddingConfig{
			Model:          "text-embedding-v3",
			Dimensions:     1024,
			TimeoutSeconds: 10,
		},
		Extractor: ExtractorConfig{
			MinChunkSize:      20,
			MaxExperienceGap:  50,
			MaxExperienceList: 5,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig 从文件加载配置，环境变量可覆盖敏感项
// 权重校验在此处fail fast，而不是在每次匹配时检查（调用方契约违规属于配置错误）
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("必须提供配置文件路径")
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 从环境变量覆盖配置（如果存在）
	if envKey := os.Getenv("EMBEDDING_API_KEY"); envKey != "" {
		config.Embedding.APIKey = envKey
	}
	if envURL := os.Getenv("EMBEDDING_BASE_URL"); envURL != "" {
		config.Embedding.BaseURL = envURL
	}
	if envModel := os.Getenv("EMBEDDING_MODEL"); envModel != "" {
		config.Embedding.Model = envModel
	}

	applyDefaults(config)

	if err := config.Matcher.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyDefaults 补齐未设置的配置项
func applyDefaults(config *Config) {
	if config.Extractor.MinChunkSize <= 0 {
		config.Extractor.MinChunkSize = 20
	}
	if config.Extractor.MaxExperienceGap <= 0 {
		config.Extractor.MaxExperienceGap = 50
	}
	if config.Extractor.MaxExperienceList <= 0 {
		config.Extractor.MaxExperienceList = 5
	}
	if config.Embedding.TimeoutSeconds <= 0 {
		config.Embedding.TimeoutSeconds = 10
	}
	if config.Embedding.Model == "" {
		config.Embedding.Model = "text-embedding-v3"
	}
	if config.Logger.Level == "" {
		config.Logger.Level = "info"
	}
	if config.Logger.Format == "" {
		config.Logger.Format = "json"
	}
}

// Validate 校验匹配权重：五个权重非负且和为1.0（允许浮点误差）
func (m MatcherConfig) Validate() error {
	weights := []float64{
		m.SkillsWeight, m.ExperienceWeight, m.EducationWeight,
		m.LocationWeight, m.SemanticWeight,
	}
	sum := 0.0
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("匹配权重不能为负数: %v", weights)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("匹配权重之和必须为1.0, 实际为 %v", sum)
	}
	return nil
}
