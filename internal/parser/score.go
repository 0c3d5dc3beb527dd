package parser

import "strings"

const (
	maxScore          = 100
	maxHeuristicScore = 60
	heuristicPoints   = 8
)

// AIScore rates how much of the schema the model actually filled:
//
//	contact 20, objective 5, education 15, skills 20, projects 20,
//	experience 10, certifications 5, languages 3, hobbies/activities 2.
func AIScore(r *AIResume) int {
	if r == nil {
		return 0
	}
	score := 0

	for _, v := range []FlexString{r.Name, r.Contact.Email, r.Contact.Phone, r.Contact.Location} {
		if present(v) {
			score += 4
		}
	}
	if present(r.Contact.LinkedIn) || present(r.Contact.GitHub) || present(r.Contact.Portfolio) {
		score += 4
	}

	if present(r.Objective) {
		score += 5
	}

	score += capped(countEducation(r.Education)*5, 15)

	score += capped(len(r.TechnicalSkills), 10)
	score += capped(len(r.Tools), 5)
	score += capped(len(r.SoftSkills), 5)

	score += capped(countProjects(r.Projects)*5, 20)
	score += capped(countExperience(r.Experience)*5, 10)
	score += capped(countCertifications(r.Certifications)*2, 5)
	score += capped(countLanguages(r.Languages), 3)

	if len(r.Hobbies) > 0 {
		score++
	}
	if len(r.CoCurricular) > 0 {
		score++
	}

	return clampScore(score)
}

// HeuristicScore gives a fixed number of points per field group the regex
// parser recovered. It is capped well below a complete AI extraction.
func HeuristicScore(r *HeuristicResume) int {
	if r == nil {
		return 0
	}
	groups := []bool{
		r.Email != "" || r.Phone != "",
		r.Objective != "",
		len(r.Skills) > 0,
		len(r.Tools) > 0 || len(r.SoftSkills) > 0,
		len(r.Education) > 0,
		len(r.Experience) > 0,
		len(r.Projects) > 0,
		len(r.Certifications) > 0,
		len(r.Languages) > 0,
		len(r.Hobbies) > 0 || len(r.Achievements) > 0 || len(r.AreasOfInterest) > 0,
	}
	score := 0
	for _, found := range groups {
		if found {
			score += heuristicPoints
		}
	}
	return clampScore(capped(score, maxHeuristicScore))
}

func present(v FlexString) bool {
	return strings.TrimSpace(string(v)) != ""
}

func capped(v, limit int) int {
	if v > limit {
		return limit
	}
	return v
}

func clampScore(v int) int {
	switch {
	case v < 0:
		return 0
	case v > maxScore:
		return maxScore
	}
	return v
}

func countEducation(items []AIEducation) int {
	n := 0
	for _, e := range items {
		if present(e.Degree) || present(e.Institution) {
			n++
		}
	}
	return n
}

func countProjects(items []AIProject) int {
	n := 0
	for _, p := range items {
		if present(p.Name) {
			n++
		}
	}
	return n
}

func countExperience(items []AIExperience) int {
	n := 0
	for _, e := range items {
		if present(e.Title) || present(e.Company) {
			n++
		}
	}
	return n
}

func countCertifications(items []AICertification) int {
	n := 0
	for _, c := range items {
		if present(c.Name) {
			n++
		}
	}
	return n
}

func countLanguages(items []AILanguage) int {
	n := 0
	for _, l := range items {
		if present(l.Name) {
			n++
		}
	}
	return n
}
