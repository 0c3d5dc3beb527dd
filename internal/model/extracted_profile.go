package model

// ExtractedProfile is the canonical structured document built from a resume.
// Both the AI and the heuristic parser output are normalized into this shape.
type ExtractedProfile struct {
	ContactInfo     ContactInfo     `json:"contact_info"`
	CareerObjective string          `json:"career_objective"`
	TechnicalSkills []string        `json:"technical_skills"`
	Tools           []string        `json:"tools"`
	PersonalSkills  []string        `json:"personal_skills"`
	Education       []Education     `json:"education"`
	Experience      WorkExperience  `json:"experience"`
	Projects        []Project       `json:"projects"`
	Languages       []Language      `json:"languages"`
	Certifications  []Certification `json:"certifications"`
	Achievements    []string        `json:"achievements"`
	AreasOfInterest []string        `json:"areas_of_interest"`
	Hobbies         []string        `json:"hobbies"`
	ProjectTypes    []string        `json:"project_types"`
}

type ContactInfo struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Grade       string `json:"grade"`
}

type WorkExperience struct {
	Years       float64    `json:"years"`
	Internships int        `json:"internships"`
	Positions   []Position `json:"positions"`
}

type Position struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Project struct {
	Name        string   `json:"name"`
	Duration    string   `json:"duration"`
	Role        string   `json:"role"`
	Tools       []string `json:"tools"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
}

type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// EmptyExtractedProfile returns a profile whose list fields are non-nil, so the
// stored document never contains JSON nulls.
func EmptyExtractedProfile() ExtractedProfile {
	return ExtractedProfile{
		TechnicalSkills: []string{},
		Tools:           []string{},
		PersonalSkills:  []string{},
		Education:       []Education{},
		Experience:      WorkExperience{Positions: []Position{}},
		Projects:        []Project{},
		Languages:       []Language{},
		Certifications:  []Certification{},
		Achievements:    []string{},
		AreasOfInterest: []string{},
		Hobbies:         []string{},
		ProjectTypes:    []string{},
	}
}

// IsEmpty reports whether nothing has been extracted yet.
func (p ExtractedProfile) IsEmpty() bool {
	return p.ContactInfo == (ContactInfo{}) &&
		p.CareerObjective == "" &&
		len(p.TechnicalSkills) == 0 &&
		len(p.Tools) == 0 &&
		len(p.PersonalSkills) == 0 &&
		len(p.Education) == 0 &&
		len(p.Experience.Positions) == 0 &&
		len(p.Projects) == 0 &&
		len(p.Languages) == 0 &&
		len(p.Certifications) == 0 &&
		len(p.Achievements) == 0 &&
		len(p.AreasOfInterest) == 0 &&
		len(p.Hobbies) == 0
}
