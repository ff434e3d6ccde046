package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"recruit-match-go/internal/config"
	"recruit-match-go/internal/embedding"
	"recruit-match-go/internal/lexicon"
	"recruit-match-go/internal/logger"
	"recruit-match-go/internal/matcher"
	"recruit-match-go/internal/parser"
	"recruit-match-go/internal/types"
)

// 命令行参数定义
var (
	configPath = pflag.String("config", "", "配置文件路径，留空使用内置默认配置")
	command    = pflag.String("cmd", "match", "执行的命令: extract=解析简历, parse-job=解析岗位, match=计算匹配, rank=批量匹配排序")

	resumePath = pflag.String("resume", "", "简历文件路径 (.pdf/.docx/.txt)")

	jobDescPath  = pflag.String("job-desc", "", "岗位描述文本文件路径")
	jobReqPath   = pflag.String("job-req", "", "岗位要求文本文件路径")
	jobNicePath  = pflag.String("job-nice", "", "岗位加分项文本文件路径")
	jobsPath     = pflag.String("jobs", "", "批量匹配用的岗位JSON数组文件路径")
	topN         = pflag.Int("top", 0, "批量匹配时保留的岗位数，0为不限制")
	withSemantic = pflag.Bool("semantic", false, "是否启用embedding语义打分（需要API密钥）")
)

func main() {
	pflag.Parse()

	// .env仅用于本地开发注入EMBEDDING_API_KEY等，不存在时静默忽略
	_ = godotenv.Load()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	lex := lexicon.Default()
	if cfg.LexiconPath != "" {
		loaded, err := lexicon.LoadFromYAML(cfg.LexiconPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "加载词表失败: %v\n", err)
			os.Exit(1)
		}
		lex = loaded
	}

	ctx := context.Background()

	switch *command {
	case "extract":
		handleExtract(ctx, cfg, lex)
	case "parse-job":
		handleParseJob(ctx, lex)
	case "match":
		handleMatch(ctx, cfg, lex)
	case "rank":
		handleRank(ctx, cfg, lex)
	default:
		fmt.Fprintf(os.Stderr, "错误: 未知命令 '%s'。支持的命令: extract, parse-job, match, rank\n", *command)
		pflag.Usage()
		os.Exit(1)
	}
}

// handleExtract 解析简历文件并输出候选人画像JSON
func handleExtract(ctx context.Context, cfg *config.Config, lex *lexicon.Lexicon) {
	profile := extractProfile(ctx, cfg, lex)
	printJSON(profile.ToMap())
}

// handleParseJob 解析岗位文本并输出岗位要求JSON
func handleParseJob(ctx context.Context, lex *lexicon.Lexicon) {
	job := extractJob(ctx, lex)
	printJSON(job.ToMap())
}

// handleMatch 计算候选人与岗位的匹配结果并输出JSON
func handleMatch(ctx context.Context, cfg *config.Config, lex *lexicon.Lexicon) {
	profile := extractProfile(ctx, cfg, lex)
	job := extractJob(ctx, lex)

	var opts []matcher.MatcherOption
	if *withSemantic {
		embedder, err := embedding.GetHTTPEmbedder(cfg.Embedding)
		if err != nil {
			fmt.Fprintf(os.Stderr, "初始化embedding后端失败: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, matcher.WithSimilarity(embedding.NewEmbeddingSimilarity(embedder)))
	}

	m, err := matcher.NewMatcher(lex, cfg.Matcher, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "创建匹配器失败: %v\n", err)
		os.Exit(1)
	}

	result, err := m.CalculateMatch(ctx, profile, job)
	if err != nil {
		fmt.Fprintf(os.Stderr, "匹配计算失败: %v\n", err)
		os.Exit(1)
	}
	printJSON(result.ToMap())
}

// handleRank 读取岗位JSON数组，对候选人批量匹配并按总分降序输出
func handleRank(ctx context.Context, cfg *config.Config, lex *lexicon.Lexicon) {
	profile := extractProfile(ctx, cfg, lex)

	if *jobsPath == "" {
		fmt.Fprintln(os.Stderr, "错误: 必须提供 --jobs 参数")
		os.Exit(1)
	}
	data, err := os.ReadFile(*jobsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取岗位文件失败: %v\n", err)
		os.Exit(1)
	}
	var jobMaps []map[string]any
	if err := json.Unmarshal(data, &jobMaps); err != nil {
		fmt.Fprintf(os.Stderr, "解析岗位JSON失败: %v\n", err)
		os.Exit(1)
	}
	jobs := make([]*types.JobRequirement, 0, len(jobMaps))
	for _, fields := range jobMaps {
		jobs = append(jobs, types.JobRequirementFromMap(fields))
	}

	m, err := matcher.NewMatcher(lex, cfg.Matcher)
	if err != nil {
		fmt.Fprintf(os.Stderr, "创建匹配器失败: %v\n", err)
		os.Exit(1)
	}
	ranked, err := matcher.NewMatchService(m).MatchAgainstJobs(ctx, profile, jobs, *topN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "批量匹配失败: %v\n", err)
		os.Exit(1)
	}

	out := make([]map[string]any, 0, len(ranked))
	for _, r := range ranked {
		entry := r.Result.ToMap()
		entry["job_index"] = r.JobIndex
		out = append(out, entry)
	}
	printJSON(out)
}

// extractProfile 读取并解析-resume指定的简历文件
func extractProfile(ctx context.Context, cfg *config.Config, lex *lexicon.Lexicon) *types.CandidateProfile {
	if *resumePath == "" {
		fmt.Fprintln(os.Stderr, "错误: 必须提供 --resume 参数")
		os.Exit(1)
	}

	textExtractor := parser.NewFileTextExtractor()
	text, _, err := textExtractor.ExtractFromFile(ctx, *resumePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "提取简历文本失败: %v\n", err)
		os.Exit(1)
	}

	segmenter, err := parser.NewSegmenter(lex, parser.SegmenterConfig{MinChunkSize: cfg.Extractor.MinChunkSize})
	if err != nil {
		fmt.Fprintf(os.Stderr, "创建分段器失败: %v\n", err)
		os.Exit(1)
	}
	extractor := parser.NewResumeExtractor(lex, segmenter, cfg.Extractor)
	return extractor.Extract(ctx, text)
}

// extractJob 读取三段岗位文本并解析为岗位要求
func extractJob(ctx context.Context, lex *lexicon.Lexicon) *types.JobRequirement {
	description := readOptionalFile(*jobDescPath)
	requirements := readOptionalFile(*jobReqPath)
	niceToHave := readOptionalFile(*jobNicePath)
	if description == "" && requirements == "" {
		fmt.Fprintln(os.Stderr, "错误: 必须提供 --job-desc 或 --job-req 参数")
		os.Exit(1)
	}
	return parser.NewJobExtractor(lex).Extract(ctx, description, requirements, niceToHave)
}

// readOptionalFile 读取可选的文本文件，路径为空时返回空串
func readOptionalFile(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取文件失败 %s: %v\n", path, err)
		os.Exit(1)
	}
	return string(data)
}

// printJSON 缩进输出JSON到stdout
func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "序列化输出失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
