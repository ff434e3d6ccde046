package types

import (
	"math"
)

// 本文件实现核心对外的扁平记录编解码。
// 上游（ORM/序列化层）以 map[field]value 形式传入记录，
// 字段名为 snake_case；缺失字段在此处一次性补默认值，
// 匹配逻辑内部不再出现 map 取值判断。

// CandidateProfileFromMap 从扁平记录构建候选人画像
// 任何缺失字段取文档化默认值：列表为空切片、数值为0、标量为 nil
func CandidateProfileFromMap(fields map[string]any) *CandidateProfile {
	p := EmptyProfile()
	if fields == nil {
		return p
	}
	p.Skills = stringSlice(fields["skills"])
	p.ExperienceYears = nonNegative(floatValue(fields["experience_years"]))
	p.EducationLevel = EducationLevelFromString(stringValue(fields["education_level"]))
	p.Location = stringPtr(fields["location"])
	p.Summary = stringPtr(fields["summary"])
	p.ExperienceEntries = experienceEntries(fields["experience_entries"])

	p.Name = stringPtr(fields["name"])
	p.Email = stringPtr(fields["email"])
	p.Phone = stringPtr(fields["phone"])
	p.LinkedIn = stringPtr(fields["linkedin"])
	p.GitHub = stringPtr(fields["github"])
	p.Portfolio = stringPtr(fields["portfolio"])
	p.OtherLinks = stringSlice(fields["other_links"])
	p.Education = educationEntries(fields["education"])
	p.Certifications = stringSlice(fields["certifications"])
	p.Projects = projectEntries(fields["projects"])
	p.Text = stringValue(fields["text"])
	return p
}

// ToMap 将候选人画像导出为扁平记录
// 列表字段始终存在（空列表而非缺失），未知标量为 nil
func (p *CandidateProfile) ToMap() map[string]any {
	entries := make([]map[string]any, 0, len(p.ExperienceEntries))
	for _, e := range p.ExperienceEntries {
		entries = append(entries, map[string]any{
			"title":       e.Title,
			"company":     e.Company,
			"duration":    e.Duration,
			"description": e.Description,
		})
	}
	education := make([]map[string]any, 0, len(p.Education))
	for _, e := range p.Education {
		education = append(education, map[string]any{
			"degree":      e.Degree,
			"institution": e.Institution,
			"year":        e.Year,
			"details":     e.Details,
		})
	}
	projects := make([]map[string]any, 0, len(p.Projects))
	for _, e := range p.Projects {
		projects = append(projects, map[string]any{
			"name":        e.Name,
			"description": e.Description,
		})
	}
	return map[string]any{
		"skills":             emptyIfNil(p.Skills),
		"experience_years":   p.ExperienceYears,
		"education_level":    string(p.EducationLevel),
		"location":           anyOrNil(p.Location),
		"summary":            anyOrNil(p.Summary),
		"experience_entries": entries,
		"name":               anyOrNil(p.Name),
		"email":              anyOrNil(p.Email),
		"phone":              anyOrNil(p.Phone),
		"linkedin":           anyOrNil(p.LinkedIn),
		"github":             anyOrNil(p.GitHub),
		"portfolio":          anyOrNil(p.Portfolio),
		"other_links":        emptyIfNil(p.OtherLinks),
		"education":          education,
		"certifications":     emptyIfNil(p.Certifications),
		"projects":           projects,
		"text":               p.Text,
	}
}

// JobRequirementFromMap 从扁平记录构建岗位要求
// 缺失字段取默认值：年限区间 0/100、非远程、无学历要求
func JobRequirementFromMap(fields map[string]any) *JobRequirement {
	j := EmptyJobRequirement()
	if fields == nil {
		return j
	}
	j.RequiredSkills = stringSlice(fields["required_skills"])
	j.PreferredSkills = stringSlice(fields["preferred_skills"])
	if v, ok := fields["min_experience_years"]; ok {
		j.MinExperienceYears = nonNegative(floatValue(v))
	}
	if v, ok := fields["max_experience_years"]; ok {
		j.MaxExperienceYears = floatValue(v)
	}
	if j.MaxExperienceYears < j.MinExperienceYears {
		j.MaxExperienceYears = j.MinExperienceYears
	}
	j.EducationLevel = EducationLevelFromString(stringValue(fields["education_level"]))
	j.Location = stringPtr(fields["location"])
	j.IsRemote = boolValue(fields["is_remote"])
	j.DescriptionText = stringValue(fields["description_text"])
	j.Qualifications = stringSlice(fields["qualifications"])
	j.Responsibilities = stringSlice(fields["responsibilities"])
	j.Benefits = stringSlice(fields["benefits"])
	j.Keywords = stringSlice(fields["keywords"])
	return j
}

// ToMap 将岗位要求导出为扁平记录
func (j *JobRequirement) ToMap() map[string]any {
	return map[string]any{
		"required_skills":      emptyIfNil(j.RequiredSkills),
		"preferred_skills":     emptyIfNil(j.PreferredSkills),
		"min_experience_years": j.MinExperienceYears,
		"max_experience_years": j.MaxExperienceYears,
		"education_level":      string(j.EducationLevel),
		"location":             anyOrNil(j.Location),
		"is_remote":            j.IsRemote,
		"description_text":     j.DescriptionText,
		"qualifications":       emptyIfNil(j.Qualifications),
		"responsibilities":     emptyIfNil(j.Responsibilities),
		"benefits":             emptyIfNil(j.Benefits),
		"keywords":             emptyIfNil(j.Keywords),
	}
}

// ToMap 将匹配结果导出为扁平记录，分数保留两位小数
func (r *MatchResult) ToMap() map[string]any {
	return map[string]any{
		"overall_score":    Round2(r.OverallScore),
		"skills_score":     Round2(r.SkillsScore),
		"experience_score": Round2(r.ExperienceScore),
		"education_score":  Round2(r.EducationScore),
		"location_score":   Round2(r.LocationScore),
		"semantic_score":   Round2(r.SemanticScore),
		"matched_skills":   emptyIfNil(r.MatchedSkills),
		"missing_skills":   emptyIfNil(r.MissingSkills),
		"extra_skills":     emptyIfNil(r.ExtraSkills),
		"match_level":      string(r.MatchLevel),
		"strengths":        emptyIfNil(r.Strengths),
		"weaknesses":       emptyIfNil(r.Weaknesses),
		"recommendations":  emptyIfNil(r.Recommendations),
	}
}

// Round2 四舍五入到两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ----- 记录取值辅助函数 -----

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func stringPtr(v any) *string {
	if s, ok := v.(string); ok && s != "" {
		return &s
	}
	return nil
}

func floatValue(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func boolValue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// stringSlice 兼容 []string 与 []any 两种列表表示
func stringSlice(v any) []string {
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

func experienceEntries(v any) []ExperienceEntry {
	out := []ExperienceEntry{}
	switch list := v.(type) {
	case []ExperienceEntry:
		out = append(out, list...)
	case []map[string]any:
		for _, m := range list {
			out = append(out, experienceEntryFromMap(m))
		}
	case []any:
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				out = append(out, experienceEntryFromMap(m))
			}
		}
	}
	return out
}

func experienceEntryFromMap(m map[string]any) ExperienceEntry {
	return ExperienceEntry{
		Title:       stringValue(m["title"]),
		Company:     stringValue(m["company"]),
		Duration:    stringValue(m["duration"]),
		Description: stringValue(m["description"]),
	}
}

func educationEntries(v any) []EducationEntry {
	out := []EducationEntry{}
	switch list := v.(type) {
	case []EducationEntry:
		out = append(out, list...)
	case []map[string]any:
		for _, m := range list {
			out = append(out, educationEntryFromMap(m))
		}
	case []any:
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				out = append(out, educationEntryFromMap(m))
			}
		}
	}
	return out
}

func educationEntryFromMap(m map[string]any) EducationEntry {
	return EducationEntry{
		Degree:      stringValue(m["degree"]),
		Institution: stringValue(m["institution"]),
		Year:        stringValue(m["year"]),
		Details:     stringValue(m["details"]),
	}
}

func projectEntries(v any) []ProjectEntry {
	out := []ProjectEntry{}
	switch list := v.(type) {
	case []ProjectEntry:
		out = append(out, list...)
	case []map[string]any:
		for _, m := range list {
			out = append(out, projectEntryFromMap(m))
		}
	case []any:
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				out = append(out, projectEntryFromMap(m))
			}
		}
	}
	return out
}

func projectEntryFromMap(m map[string]any) ProjectEntry {
	return ProjectEntry{
		Name:        stringValue(m["name"]),
		Description: stringValue(m["description"]),
	}
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func anyOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
