package types

import "strings"

// EducationLevel 表示学历等级枚举
type EducationLevel string

const (
	// EducationNone 无学历要求/未知学历
	EducationNone EducationLevel = "none"
	// EducationDiploma 高中/文凭
	EducationDiploma EducationLevel = "diploma"
	// EducationAssociate 大专
	EducationAssociate EducationLevel = "associate"
	// EducationBachelor 本科
	EducationBachelor EducationLevel = "bachelor"
	// EducationMaster 硕士
	EducationMaster EducationLevel = "master"
	// EducationMBA 工商管理硕士（与硕士同级）
	EducationMBA EducationLevel = "mba"
	// EducationPhD 博士
	EducationPhD EducationLevel = "phd"
)

// educationRanks 学历等级的序数映射，用于比较高低
var educationRanks = map[EducationLevel]int{
	EducationNone:      0,
	EducationDiploma:   1,
	EducationAssociate: 2,
	EducationBachelor:  3,
	EducationMaster:    4,
	EducationMBA:       4,
	EducationPhD:       5,
}

// Rank 返回学历的序数等级 (diploma=1 ... phd=5, none=0)
func (l EducationLevel) Rank() int {
	return educationRanks[l]
}

// EducationLevelFromString 将字符串解析为学历枚举，无法识别时返回 none
func EducationLevelFromString(s string) EducationLevel {
	level := EducationLevel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := educationRanks[level]; ok {
		return level
	}
	return EducationNone
}

// ExperienceEntry 一段工作经历
type ExperienceEntry struct {
	Title       string `json:"title"`       // 职位名称（段落首行）
	Company     string `json:"company"`     // 公司名称
	Duration    string `json:"duration"`    // 时间区间，例如 "2019 - 2023"
	Description string `json:"description"` // 原始段落内容
}

// EducationEntry 一段教育经历
type EducationEntry struct {
	Degree      string `json:"degree"`      // 学位原文（段落首行）
	Institution string `json:"institution"` // 学校名称
	Year        string `json:"year"`        // 毕业年份
	Details     string `json:"details"`     // 原始段落内容
}

// ProjectEntry 一个项目条目
type ProjectEntry struct {
	Name        string `json:"name"`        // 项目名称
	Description string `json:"description"` // 项目描述
}

// CandidateProfile 从简历文本抽取出的候选人画像
// 每次简历重新上传时整体重建，抽取器不做字段级增量修改
type CandidateProfile struct {
	// 核心字段
	Skills            []string          `json:"skills"`             // 规范拼写、去重、按字母排序
	ExperienceYears   float64           `json:"experience_years"`   // 总工作年限 (>=0)
	EducationLevel    EducationLevel    `json:"education_level"`    // 最高学历
	Location          *string           `json:"location"`           // 城市/地区，未知为 nil
	Summary           *string           `json:"summary"`            // 个人简介
	ExperienceEntries []ExperienceEntry `json:"experience_entries"` // 最多5条，最近的在前

	// 联系方式与链接
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	LinkedIn   *string  `json:"linkedin"`
	GitHub     *string  `json:"github"`
	Portfolio  *string  `json:"portfolio"`
	OtherLinks []string `json:"other_links"`

	// 补充画像
	Education      []EducationEntry `json:"education"`      // 最多3条
	Certifications []string         `json:"certifications"` // 最多10条
	Projects       []ProjectEntry   `json:"projects"`       // 最多5条

	// Text 为抽取到的原始纯文本；为空表示解析失败（可与"部分结果"区分）
	Text string `json:"text"`
}

// EmptyProfile 返回一个所有字段均为默认值的候选人画像
// 解析失败时返回它而不是报错，由调用方决定画像是否可用
func EmptyProfile() *CandidateProfile {
	return &CandidateProfile{
		Skills:            []string{},
		EducationLevel:    EducationNone,
		ExperienceEntries: []ExperienceEntry{},
		OtherLinks:        []string{},
		Education:         []EducationEntry{},
		Certifications:    []string{},
		Projects:          []ProjectEntry{},
	}
}

// JobRequirement 从岗位描述抽取出的岗位要求
// 每当岗位的描述/要求/加分项文本变化时整体重算，其余时间不可变
type JobRequirement struct {
	RequiredSkills     []string       `json:"required_skills"`      // 必备技能，规范拼写、排序
	PreferredSkills    []string       `json:"preferred_skills"`     // 加分技能，与必备技能不相交
	MinExperienceYears float64        `json:"min_experience_years"` // 默认0
	MaxExperienceYears float64        `json:"max_experience_years"` // 默认100
	EducationLevel     EducationLevel `json:"education_level"`      // 最低学历要求，none表示无要求
	Location           *string        `json:"location"`             // 工作地点
	IsRemote           bool           `json:"is_remote"`            // 是否远程
	DescriptionText    string         `json:"description_text"`     // 描述+职责拼接，用于语义比较

	// 补充字段
	Qualifications   []string `json:"qualifications"`   // 学位/证书要求片段，最多10条
	Responsibilities []string `json:"responsibilities"` // 职责要点，最多8条
	Benefits         []string `json:"benefits"`         // 福利关键词，最多15条
	Keywords         []string `json:"keywords"`         // 搜索关键词，最多50个
}

// EmptyJobRequirement 返回带有文档化默认值的岗位要求
func EmptyJobRequirement() *JobRequirement {
	return &JobRequirement{
		RequiredSkills:     []string{},
		PreferredSkills:    []string{},
		MinExperienceYears: 0,
		MaxExperienceYears: 100,
		EducationLevel:     EducationNone,
		Qualifications:     []string{},
		Responsibilities:   []string{},
		Benefits:           []string{},
		Keywords:           []string{},
	}
}

// MatchLevel 匹配等级枚举
type MatchLevel string

const (
	MatchPoor      MatchLevel = "poor"
	MatchFair      MatchLevel = "fair"
	MatchGood      MatchLevel = "good"
	MatchGreat     MatchLevel = "great"
	MatchExcellent MatchLevel = "excellent"
)

// MatchLevelFromScore 按总分确定匹配等级，边界值归入更高档
func MatchLevelFromScore(score float64) MatchLevel {
	switch {
	case score >= 90:
		return MatchExcellent
	case score >= 75:
		return MatchGreat
	case score >= 60:
		return MatchGood
	case score >= 45:
		return MatchFair
	default:
		return MatchPoor
	}
}

// MatchResult 一次匹配计算的完整输出，核心本身不持久化它
type MatchResult struct {
	OverallScore float64 `json:"overall_score"` // 五个子分的固定加权和

	SkillsScore     float64 `json:"skills_score"`
	ExperienceScore float64 `json:"experience_score"`
	EducationScore  float64 `json:"education_score"`
	LocationScore   float64 `json:"location_score"`
	SemanticScore   float64 `json:"semantic_score"`

	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	ExtraSkills   []string `json:"extra_skills"`

	MatchLevel MatchLevel `json:"match_level"`

	// 规则生成的说明性文本，不影响打分，相同输入产生相同列表
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// RankedMatch 批量匹配中一个岗位的排名结果
type RankedMatch struct {
	JobIndex int          `json:"job_index"` // 输入切片中的下标
	Result   *MatchResult `json:"result"`
}
