package matcher

import (
	"fmt"
	"strings"

	"recruit-match-go/internal/types"
)

// 洞见文本是面向招聘方的英文话术，规则固定、不参与打分

// identifyStrengths 按子分和明细生成优势列表
func identifyStrengths(result *types.MatchResult, candidate *types.CandidateProfile) []string {
	strengths := []string{}

	if result.SkillsScore >= 80 {
		strengths = append(strengths, fmt.Sprintf("Strong skills match (%d matched skills)", len(result.MatchedSkills)))
	}
	if result.ExperienceScore >= 90 {
		strengths = append(strengths, fmt.Sprintf("Excellent experience match (%g years)", candidate.ExperienceYears))
	}
	if result.EducationScore == 100 {
		strengths = append(strengths, "Meets education requirements")
	}
	if result.LocationScore >= 80 {
		strengths = append(strengths, "Location compatible")
	}
	if len(result.ExtraSkills) > 3 {
		strengths = append(strengths, fmt.Sprintf("Additional valuable skills (%d extra skills)", len(result.ExtraSkills)))
	}

	return strengths
}

// identifyWeaknesses 按子分和明细生成短板列表
func identifyWeaknesses(result *types.MatchResult, candidate *types.CandidateProfile, job *types.JobRequirement) []string {
	weaknesses := []string{}

	if result.SkillsScore < 60 {
		weaknesses = append(weaknesses, fmt.Sprintf("Missing %d key skills", len(result.MissingSkills)))
	}
	if result.ExperienceScore < 50 {
		gap := job.MinExperienceYears - candidate.ExperienceYears
		if gap > 0 {
			weaknesses = append(weaknesses, fmt.Sprintf("Experience gap of %g years", gap))
		}
	}
	if result.EducationScore < 70 {
		weaknesses = append(weaknesses, "Education level below preferred")
	}
	if result.LocationScore < 50 {
		weaknesses = append(weaknesses, "Location may require relocation")
	}

	return weaknesses
}

// generateRecommendations 按总分和短板生成建议列表
func generateRecommendations(result *types.MatchResult, job *types.JobRequirement) []string {
	recommendations := []string{}

	switch {
	case result.OverallScore >= 75:
		recommendations = append(recommendations, "Strong candidate - proceed to interview")
	case result.OverallScore >= 60:
		recommendations = append(recommendations, "Good candidate - consider for shortlist")
	default:
		recommendations = append(recommendations, "Review carefully - may need development")
	}

	if len(result.MissingSkills) > 0 {
		top := result.MissingSkills
		if len(top) > 3 {
			top = top[:3]
		}
		recommendations = append(recommendations, "Skills to develop: "+strings.Join(top, ", "))
	}
	if result.ExperienceScore < 70 {
		recommendations = append(recommendations, "Consider offering training/mentorship program")
	}
	if result.LocationScore < 70 && !job.IsRemote {
		recommendations = append(recommendations, "Discuss remote work or relocation support")
	}

	return recommendations
}
