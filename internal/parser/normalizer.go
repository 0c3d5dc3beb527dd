package parser

import (
	"regexp"
	"strings"

	"github.com/fadilmartias/job-portal/internal/model"
)

// NormalizeAI maps a model reply onto the canonical profile. existing is the
// profile currently stored for the candidate; only its user-owned social
// links are consulted.
func NormalizeAI(r *AIResume, existing model.ExtractedProfile) model.ExtractedProfile {
	out := model.EmptyExtractedProfile()
	if r == nil {
		out.ContactInfo = preserveSocialLinks(out.ContactInfo, existing.ContactInfo)
		return out
	}

	out.ContactInfo = preserveSocialLinks(model.ContactInfo{
		Email:     r.Contact.Email.String(),
		Phone:     r.Contact.Phone.String(),
		Location:  r.Contact.Location.String(),
		LinkedIn:  r.Contact.LinkedIn.String(),
		GitHub:    r.Contact.GitHub.String(),
		Portfolio: r.Contact.Portfolio.String(),
	}, existing.ContactInfo)
	out.CareerObjective = r.Objective.String()

	out.TechnicalSkills = uniqueStrings(r.TechnicalSkills)
	out.Tools = uniqueStrings(r.Tools)
	out.PersonalSkills = uniqueStrings(r.SoftSkills)

	for _, e := range r.Education {
		if !present(e.Degree) && !present(e.Institution) {
			continue
		}
		out.Education = append(out.Education, model.Education{
			Degree:      e.Degree.String(),
			Field:       e.Field.String(),
			Institution: e.Institution.String(),
			Year:        e.Year.String(),
			Grade:       e.CGPA.String(),
		})
	}

	out.Experience.Years = float64(r.TotalExperienceYears)
	for _, e := range r.Experience {
		if !present(e.Title) && !present(e.Company) {
			continue
		}
		if isInternship(e.Type.String(), e.Title.String()) {
			out.Experience.Internships++
		}
		out.Experience.Positions = append(out.Experience.Positions, model.Position{
			Title:       e.Title.String(),
			Company:     e.Company.String(),
			Duration:    e.Duration.String(),
			Description: strings.Join(e.Responsibilities, "\n"),
		})
	}

	projects := make([]model.Project, 0, len(r.Projects))
	for _, p := range r.Projects {
		projects = append(projects, model.Project{
			Name:        p.Name.String(),
			Duration:    p.Duration.String(),
			Role:        p.Role.String(),
			Tools:       uniqueStrings(p.Technologies),
			Description: p.Description.String(),
		})
	}
	out.Projects = categorizeProjects(DedupeProjects(projects))
	out.ProjectTypes = projectTypes(out.Projects)

	for _, l := range r.Languages {
		if !present(l.Name) {
			continue
		}
		out.Languages = append(out.Languages, model.Language{Name: l.Name.String(), Proficiency: l.Proficiency.String()})
	}
	for _, c := range r.Certifications {
		if !present(c.Name) {
			continue
		}
		out.Certifications = append(out.Certifications, model.Certification{
			Name:   c.Name.String(),
			Issuer: c.Issuer.String(),
			Date:   c.Date.String(),
		})
	}

	out.Achievements = uniqueStrings(r.CoCurricular)
	out.AreasOfInterest = uniqueStrings(r.AreasOfInterest)
	out.Hobbies = uniqueStrings(r.Hobbies)
	return out
}

// NormalizeHeuristic maps the regex parser output onto the canonical profile.
func NormalizeHeuristic(r *HeuristicResume, existing model.ExtractedProfile) model.ExtractedProfile {
	out := model.EmptyExtractedProfile()
	if r == nil {
		out.ContactInfo = preserveSocialLinks(out.ContactInfo, existing.ContactInfo)
		return out
	}

	out.ContactInfo = preserveSocialLinks(model.ContactInfo{
		Email:     r.Email,
		Phone:     r.Phone,
		Location:  r.Location,
		LinkedIn:  r.LinkedIn,
		GitHub:    r.GitHub,
		Portfolio: r.Portfolio,
	}, existing.ContactInfo)
	out.CareerObjective = r.Objective
	out.TechnicalSkills = uniqueStrings(r.Skills)
	out.Tools = uniqueStrings(r.Tools)
	out.PersonalSkills = uniqueStrings(r.SoftSkills)

	for _, e := range r.Education {
		out.Education = append(out.Education, model.Education{
			Degree:      e.Degree,
			Field:       e.Field,
			Institution: e.Institution,
			Year:        e.Year,
			Grade:       e.Grade,
		})
	}

	out.Experience.Years = r.ExperienceYears
	out.Experience.Internships = r.Internships
	for _, e := range r.Experience {
		out.Experience.Positions = append(out.Experience.Positions, model.Position{
			Title:       e.Title,
			Company:     e.Subtitle,
			Duration:    e.Duration,
			Description: e.Description,
		})
	}

	projects := make([]model.Project, 0, len(r.Projects))
	for _, p := range r.Projects {
		projects = append(projects, model.Project{
			Name:        p.Title,
			Duration:    p.Duration,
			Tools:       uniqueStrings(p.Tools),
			Description: p.Description,
		})
	}
	out.Projects = categorizeProjects(DedupeProjects(projects))
	out.ProjectTypes = projectTypes(out.Projects)

	for _, l := range r.Languages {
		name, level := splitLanguage(l)
		if name == "" {
			continue
		}
		out.Languages = append(out.Languages, model.Language{Name: name.String(), Proficiency: level.String()})
	}
	for _, c := range r.Certifications {
		name, issuer := splitCertification(c)
		out.Certifications = append(out.Certifications, model.Certification{Name: name, Issuer: issuer})
	}

	out.Achievements = uniqueStrings(r.Achievements)
	out.AreasOfInterest = uniqueStrings(r.AreasOfInterest)
	out.Hobbies = uniqueStrings(r.Hobbies)
	return out
}

// preserveSocialLinks keeps the stored linkedin/github/portfolio values when
// the new extraction left them empty. A non-empty extracted value wins.
func preserveSocialLinks(next, existing model.ContactInfo) model.ContactInfo {
	next.LinkedIn = firstNonEmpty(next.LinkedIn, existing.LinkedIn)
	next.GitHub = firstNonEmpty(next.GitHub, existing.GitHub)
	next.Portfolio = firstNonEmpty(next.Portfolio, existing.Portfolio)
	return next
}

// DedupeProjects keeps the first project for every trimmed, lower-cased name.
// Projects without a name are dropped.
func DedupeProjects(projects []model.Project) []model.Project {
	seen := make(map[string]struct{}, len(projects))
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		p.Name = strings.TrimSpace(p.Name)
		out = append(out, p)
	}
	return out
}

func categorizeProjects(projects []model.Project) []model.Project {
	for i := range projects {
		projects[i].Category = Categorize(projects[i].Name, projects[i].Description)
	}
	return projects
}

// projectTypes lists the distinct project categories in first-seen order.
func projectTypes(projects []model.Project) []string {
	types := []string{}
	seen := map[string]struct{}{}
	for _, p := range projects {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		types = append(types, p.Category)
	}
	return types
}

func uniqueStrings(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func isInternship(kind, title string) bool {
	return strings.Contains(strings.ToLower(kind), "intern") || strings.Contains(strings.ToLower(title), "intern")
}

var reCertificationIssuer = regexp.MustCompile(`^(.*?)\s+(?:-|–|\||by|from)\s+(.+)$`)

// splitCertification turns "Cloud Practitioner - AWS" into name and issuer.
func splitCertification(s string) (string, string) {
	s = strings.TrimSpace(s)
	if m := reCertificationIssuer.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return s, ""
}
