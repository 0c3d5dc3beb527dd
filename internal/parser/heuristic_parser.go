package parser

import (
	"regexp"
	"strconv"
	"strings"
)

type section int

const (
	sectionNone section = iota
	sectionIgnored
	sectionObjective
	sectionSkills
	sectionTools
	sectionSoftSkills
	sectionEducation
	sectionExperience
	sectionProjects
	sectionCertifications
	sectionLanguages
	sectionAchievements
	sectionInterests
	sectionHobbies
)

var sectionHeadings = map[string]section{
	"CAREER OBJECTIVE":             sectionObjective,
	"OBJECTIVE":                    sectionObjective,
	"SUMMARY":                      sectionObjective,
	"PROFESSIONAL SUMMARY":         sectionObjective,
	"PROFILE":                      sectionObjective,
	"PROFILE SUMMARY":              sectionObjective,
	"ABOUT ME":                     sectionObjective,
	"TECHNICAL SKILLS":             sectionSkills,
	"TECHNICAL SKILL":              sectionSkills,
	"SKILLS":                       sectionSkills,
	"KEY SKILLS":                   sectionSkills,
	"CORE SKILLS":                  sectionSkills,
	"TECHNICAL EXPERTISE":          sectionSkills,
	"TOOLS":                        sectionTools,
	"TOOLS USED":                   sectionTools,
	"TOOLS AND TECHNOLOGIES":       sectionTools,
	"TOOLS & TECHNOLOGIES":         sectionTools,
	"SOFTWARE":                     sectionTools,
	"SOFT SKILLS":                  sectionSoftSkills,
	"PERSONAL SKILLS":              sectionSoftSkills,
	"INTERPERSONAL SKILLS":         sectionSoftSkills,
	"EDUCATION":                    sectionEducation,
	"EDUCATIONAL QUALIFICATION":    sectionEducation,
	"EDUCATIONAL QUALIFICATIONS":   sectionEducation,
	"ACADEMIC DETAILS":             sectionEducation,
	"ACADEMIC QUALIFICATIONS":      sectionEducation,
	"ACADEMIC BACKGROUND":          sectionEducation,
	"EXPERIENCE":                   sectionExperience,
	"WORK EXPERIENCE":              sectionExperience,
	"PROFESSIONAL EXPERIENCE":      sectionExperience,
	"EMPLOYMENT HISTORY":           sectionExperience,
	"INTERNSHIP":                   sectionExperience,
	"INTERNSHIPS":                  sectionExperience,
	"INTERNSHIP EXPERIENCE":        sectionExperience,
	"PROJECTS":                     sectionProjects,
	"PROJECT":                      sectionProjects,
	"ACADEMIC PROJECTS":            sectionProjects,
	"PERSONAL PROJECTS":            sectionProjects,
	"CERTIFICATIONS":               sectionCertifications,
	"CERTIFICATION":                sectionCertifications,
	"CERTIFICATES":                 sectionCertifications,
	"COURSES":                      sectionCertifications,
	"LANGUAGES":                    sectionLanguages,
	"LANGUAGES KNOWN":              sectionLanguages,
	"LANGUAGE":                     sectionLanguages,
	"ACHIEVEMENTS":                 sectionAchievements,
	"AWARDS":                       sectionAchievements,
	"ACTIVITIES":                   sectionAchievements,
	"EXTRACURRICULAR":              sectionAchievements,
	"EXTRACURRICULAR ACTIVITIES":   sectionAchievements,
	"EXTRA-CURRICULAR ACTIVITIES":  sectionAchievements,
	"EXTRA CURRICULAR ACTIVITIES":  sectionAchievements,
	"CO-CURRICULAR ACTIVITIES":     sectionAchievements,
	"CO CURRICULAR ACTIVITIES":     sectionAchievements,
	"ACHIEVEMENTS AND ACTIVITIES":  sectionAchievements,
	"AREAS OF INTEREST":            sectionInterests,
	"AREA OF INTEREST":             sectionInterests,
	"FIELDS OF INTEREST":           sectionInterests,
	"HOBBIES":                      sectionHobbies,
	"INTERESTS":                    sectionHobbies,
	"HOBBIES AND INTERESTS":        sectionHobbies,
	"HOBBIES & INTERESTS":          sectionHobbies,
	"CONTACT":                      sectionIgnored,
	"CONTACT DETAILS":              sectionIgnored,
	"CONTACT INFORMATION":          sectionIgnored,
	"PERSONAL DETAILS":             sectionIgnored,
	"PERSONAL INFORMATION":         sectionIgnored,
	"DECLARATION":                  sectionIgnored,
	"REFERENCES":                   sectionIgnored,
	"ACHIEVEMENTS & CERTIFICATION": sectionCertifications,
}

var (
	reEmail      = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	rePhone      = regexp.MustCompile(`\+?\d[\d\s\-().]{8,16}\d`)
	reLinkedIn   = regexp.MustCompile(`(?i)(https?://)?([a-z]{2,3}\.)?linkedin\.com/in/[A-Za-z0-9_\-%]+/?`)
	reGitHub     = regexp.MustCompile(`(?i)(https?://)?(www\.)?github\.com/[A-Za-z0-9_\-]+/?`)
	reURL        = regexp.MustCompile(`(?i)(https?://[^\s,|]+|\b[a-z0-9\-]+\.(github\.io|netlify\.app|vercel\.app|dev|me)\b[^\s,|]*)`)
	reLocation   = regexp.MustCompile(`(?im)^\s*(?:location|address|city)\s*[:\-]\s*(.+)$`)
	reBullet     = regexp.MustCompile(`^\s*([\-\*•·–▪●➢►✓❖]|\d+[.)])\s*`)
	reYear       = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	reDuration   = regexp.MustCompile(`(?i)\b((jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+)?(19|20)\d{2}\s*(-|–|to)\s*(((jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+)?(19|20)\d{2}|present|current|now)\b|\b\d+\s*(months?|weeks?)\b`)
	reCGPA       = regexp.MustCompile(`(?i)\b(?:cgpa|gpa|cpi|sgpa)\s*[:\-]?\s*(\d+(?:\.\d+)?(?:\s*/\s*\d+(?:\.\d+)?)?)`)
	rePercentage = regexp.MustCompile(`\b(\d{1,3}(?:\.\d+)?)\s*%`)
	reYears      = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\b(?:\s+of)?\s+(?:experience|exp)`)
	reDegree     = regexp.MustCompile(`(?i:\b(bachelor(?:'s)?|master(?:'s)?|diploma|ph\.?\s?d|doctorate|higher secondary|secondary school|senior secondary)\b)|\b(B\.\s?E|B\.\s?Tech|BTech|M\.\s?Tech|MTech|B\.\s?Sc|BSc|M\.\s?Sc|MSc|B\.\s?Com|BCom|M\.\s?Com|BCA|MCA|MBA|BBA|BE|HSC|SSLC|SSC|XII)\b`)
	reInstitute  = regexp.MustCompile(`(?i)\b(college|university|school|institute|institution|academy|polytechnic|iit|nit)\b`)
	reEduParts   = regexp.MustCompile(`\s*[,|]\s*|\s+[-–]\s+`)
	reSplitItems = regexp.MustCompile(`[,;|•·\n]+`)
	reEntryParts = regexp.MustCompile(`\s+(?:\||–|-|@|at)\s+|\s*\|\s*`)
	reLabel      = regexp.MustCompile(`^[A-Za-z &/]{2,30}:\s*`)
	reToolsLabel = regexp.MustCompile(`(?i)^(tech(nology)?\s*stack|technologies(\s+used)?|tools(\s+used)?|built\s+with|stack)\s*[:\-]\s*`)
)

var toolVocabulary = map[string]struct{}{
	"git": {}, "github": {}, "gitlab": {}, "bitbucket": {}, "vs code": {}, "vscode": {}, "visual studio code": {},
	"visual studio": {}, "figma": {}, "adobe xd": {}, "canva": {}, "photoshop": {}, "illustrator": {},
	"docker": {}, "postman": {}, "jira": {}, "trello": {}, "slack": {}, "notion": {}, "jupyter": {},
	"jupyter notebook": {}, "google colab": {}, "colab": {}, "android studio": {}, "xcode": {}, "eclipse": {},
	"intellij": {}, "intellij idea": {}, "pycharm": {}, "netbeans": {}, "tableau": {}, "power bi": {},
	"excel": {}, "ms excel": {}, "ms office": {}, "microsoft office": {}, "word": {}, "powerpoint": {},
	"npm": {}, "yarn": {}, "webpack": {}, "vite": {}, "jenkins": {}, "vercel": {}, "netlify": {}, "heroku": {},
	"firebase console": {}, "arduino ide": {}, "matlab": {}, "autocad": {}, "blender": {},
}

var softSkillVocabulary = []string{
	"communication", "teamwork", "team work", "leadership", "problem solving", "problem-solving",
	"time management", "critical thinking", "adaptability", "creativity", "collaboration",
	"decision making", "public speaking", "presentation", "self-motivated", "quick learner",
}

var skillVocabulary = []string{
	"HTML", "CSS", "JavaScript", "TypeScript", "React", "React.js", "Angular", "Vue", "Node.js", "Express",
	"Next.js", "Bootstrap", "Tailwind", "jQuery", "PHP", "Laravel", "Python", "Django", "Flask", "FastAPI",
	"Java", "Spring Boot", "Kotlin", "Swift", "Dart", "Flutter", "C", "C++", "C#", ".NET", "Go", "Golang",
	"Rust", "Ruby", "Rails", "SQL", "MySQL", "PostgreSQL", "MongoDB", "Redis", "Firebase", "GraphQL",
	"REST", "AWS", "Azure", "GCP", "Kubernetes", "Linux", "TensorFlow", "PyTorch", "Pandas", "NumPy",
	"Scikit-learn", "Machine Learning", "Deep Learning", "NLP", "OpenCV", "Arduino", "Raspberry Pi",
	"Unity", "R",
}

var skillVocabularyPatterns = compileVocabulary(skillVocabulary)

func compileVocabulary(words []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		// C, C++ and R are only meaningful as standalone tokens.
		out[i] = regexp.MustCompile(`(^|[^A-Za-z0-9+#.])` + regexp.QuoteMeta(w) + `($|[^A-Za-z0-9+#])`)
	}
	return out
}

// HeuristicParser extracts what keyword and regex rules can find. It never
// fails; anything it cannot find stays empty.
type HeuristicParser struct{}

func NewHeuristicParser() *HeuristicParser {
	return &HeuristicParser{}
}

func (p *HeuristicParser) Parse(text string) *HeuristicResume {
	r := &HeuristicResume{}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	r.Email = reEmail.FindString(text)
	r.Phone = findPhone(text)
	r.LinkedIn = strings.TrimSuffix(reLinkedIn.FindString(text), "/")
	r.GitHub = strings.TrimSuffix(reGitHub.FindString(text), "/")
	r.Portfolio = findPortfolio(text)
	if m := reLocation.FindStringSubmatch(text); m != nil {
		r.Location = strings.TrimSpace(m[1])
	}

	sections, preamble := splitSections(text)
	r.Name = guessName(preamble)

	r.Objective = strings.Join(stripBullets(sections[sectionObjective]), " ")

	for _, item := range splitItems(sections[sectionSkills]) {
		if isTool(item) {
			r.Tools = append(r.Tools, item)
			continue
		}
		r.Skills = append(r.Skills, item)
	}
	r.Tools = append(r.Tools, splitItems(sections[sectionTools])...)
	r.SoftSkills = splitItems(sections[sectionSoftSkills])
	if len(r.Skills) == 0 {
		r.Skills = scanVocabulary(text)
	}
	if len(r.SoftSkills) == 0 {
		r.SoftSkills = scanSoftSkills(text)
	}

	r.Education = parseEducation(sections[sectionEducation])
	r.Experience = parseEntries(sections[sectionExperience])
	for _, e := range r.Experience {
		if isInternship("", e.Title) {
			r.Internships++
		}
	}
	if m := reYears.FindStringSubmatch(text); m != nil {
		r.ExperienceYears, _ = strconv.ParseFloat(m[1], 64)
	}
	r.Projects = parseEntries(sections[sectionProjects])

	r.Certifications = stripBullets(sections[sectionCertifications])
	r.Languages = splitItems(sections[sectionLanguages])
	r.Achievements = stripBullets(sections[sectionAchievements])
	r.AreasOfInterest = splitItems(sections[sectionInterests])
	r.Hobbies = splitItems(sections[sectionHobbies])
	return r
}

// splitSections groups lines under the last heading seen. Lines before the
// first heading are returned as the preamble. "Skills: Go, SQL" opens the
// skills section and keeps "Go, SQL" as its first line.
func splitSections(text string) (map[section][]string, []string) {
	sections := map[section][]string{}
	var preamble []string
	current := sectionNone

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if s, rest, ok := matchHeading(line); ok && !(rest != "" && s == sectionTools && isEntrySection(current)) {
			if rest != "" && isSkillSection(current) && isSkillSubLabel(s) {
				target := inlineSkillTarget(current, s)
				sections[target] = append(sections[target], line)
				continue
			}
			current = s
			if rest != "" {
				sections[current] = append(sections[current], rest)
			}
			continue
		}
		if current == sectionNone {
			preamble = append(preamble, line)
			continue
		}
		sections[current] = append(sections[current], line)
	}
	return sections, preamble
}

// isEntrySection reports whether "Tools: ..." lines belong to the current
// entry rather than opening a tools section.
func isEntrySection(s section) bool {
	return s == sectionExperience || s == sectionProjects
}

func isSkillSection(s section) bool {
	return s == sectionSkills || s == sectionTools || s == sectionSoftSkills
}

// isSkillSubLabel reports whether an inline heading such as
// "Languages: Java, Python" labels a group inside a skills block instead of
// opening a new section.
func isSkillSubLabel(s section) bool {
	return s == sectionLanguages || isSkillSection(s)
}

// inlineSkillTarget keeps a sub-labelled line inside the skill block. Only
// tool and soft skill labels move it to their own list.
func inlineSkillTarget(current, label section) section {
	if label == sectionTools || label == sectionSoftSkills {
		return label
	}
	return current
}

func matchHeading(line string) (section, string, bool) {
	head, rest := line, ""
	if i := strings.IndexAny(line, ":"); i >= 0 {
		head, rest = line[:i], strings.TrimSpace(line[i+1:])
	}
	if len(head) > 40 {
		return sectionNone, "", false
	}
	key := strings.ToUpper(strings.Join(strings.Fields(strings.Trim(head, " -–_*#=")), " "))
	s, ok := sectionHeadings[key]
	return s, rest, ok
}

func guessName(preamble []string) string {
	for _, line := range preamble {
		if strings.ContainsAny(line, "@0123456789:/") {
			continue
		}
		if words := strings.Fields(line); len(words) >= 1 && len(words) <= 5 {
			return line
		}
	}
	return ""
}

func findPhone(text string) string {
	for _, m := range rePhone.FindAllString(text, -1) {
		digits := 0
		for _, r := range m {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 10 && digits <= 13 {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

func findPortfolio(text string) string {
	for _, m := range reURL.FindAllString(text, -1) {
		lower := strings.ToLower(m)
		if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "github.com") || strings.Contains(lower, "@") {
			continue
		}
		return strings.TrimRight(m, ".)")
	}
	return ""
}

func stripBullet(line string) string {
	return strings.TrimSpace(reBullet.ReplaceAllString(line, ""))
}

func isBullet(line string) bool {
	return reBullet.MatchString(line)
}

func stripBullets(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = stripBullet(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// splitItems turns list-like section lines into items, dropping "Label:"
// prefixes such as "Languages: Java, Python".
func splitItems(lines []string) []string {
	var out []string
	for _, line := range lines {
		line = reLabel.ReplaceAllString(stripBullet(line), "")
		for _, item := range reSplitItems.Split(line, -1) {
			item = strings.Trim(strings.TrimSpace(item), ".-–*")
			item = strings.TrimSpace(item)
			if item == "" || len(item) > 50 {
				continue
			}
			out = append(out, item)
		}
	}
	return out
}

func isTool(item string) bool {
	_, ok := toolVocabulary[strings.ToLower(strings.TrimSpace(item))]
	return ok
}

func scanVocabulary(text string) []string {
	var out []string
	for i, re := range skillVocabularyPatterns {
		if re.MatchString(text) {
			out = append(out, skillVocabulary[i])
		}
	}
	return out
}

func scanSoftSkills(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, s := range softSkillVocabulary {
		if strings.Contains(lower, s) {
			out = append(out, strings.ToUpper(s[:1])+s[1:])
		}
	}
	return out
}

func parseEducation(lines []string) []HeuristicEducation {
	var out []HeuristicEducation
	for _, raw := range lines {
		line := stripBullet(raw)
		if line == "" {
			continue
		}
		switch {
		case reDegree.MatchString(line):
			out = append(out, HeuristicEducation{})
		case len(out) == 0 && reInstitute.MatchString(line):
			out = append(out, HeuristicEducation{})
		case len(out) == 0:
			continue
		}
		fillEducation(&out[len(out)-1], line)
	}
	return out
}

func fillEducation(e *HeuristicEducation, line string) {
	if e.Year == "" {
		if years := reYear.FindAllString(line, -1); len(years) > 0 {
			e.Year = years[len(years)-1]
		}
	}
	if e.Grade == "" {
		if m := reCGPA.FindStringSubmatch(line); m != nil {
			e.Grade = strings.ReplaceAll(m[1], " ", "")
		} else if m := rePercentage.FindStringSubmatch(line); m != nil {
			e.Grade = m[1] + "%"
		}
	}

	for _, part := range reEduParts.Split(line, -1) {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
		case e.Degree == "" && reDegree.MatchString(part):
			e.Degree, e.Field = splitDegree(part)
		case e.Institution == "" && reInstitute.MatchString(part):
			e.Institution = part
		}
	}
}

// splitDegree separates "Bachelor of Engineering in Computer Science" or
// "B.E Computer Science" into degree and field.
func splitDegree(part string) (string, string) {
	part = strings.TrimSpace(reCGPA.ReplaceAllString(reYear.ReplaceAllString(part, ""), ""))
	if i := strings.Index(strings.ToLower(part), " in "); i >= 0 {
		return strings.TrimSpace(part[:i]), strings.Trim(strings.TrimSpace(part[i+4:]), "()-,")
	}
	loc := reDegree.FindStringIndex(part)
	if loc == nil {
		return part, ""
	}
	degree := strings.TrimSpace(part[:loc[1]])
	field := strings.Trim(strings.TrimSpace(part[loc[1]:]), "()-,.: ")
	return degree, field
}

// parseEntries reads experience and project blocks: a plain line opens an
// entry, bullet lines extend its description, and "Tech Stack:" lines set tools.
func parseEntries(lines []string) []HeuristicEntry {
	var out []HeuristicEntry
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		text := stripBullet(line)

		if len(out) > 0 && reToolsLabel.MatchString(text) {
			cur := &out[len(out)-1]
			cur.Tools = append(cur.Tools, splitItems([]string{reToolsLabel.ReplaceAllString(text, "")})...)
			continue
		}
		if len(out) > 0 && (isBullet(line) || looksLikeSentence(text)) {
			cur := &out[len(out)-1]
			if cur.Duration == "" {
				cur.Duration = reDuration.FindString(text)
			}
			cur.Description = strings.TrimSpace(cur.Description + "\n" + text)
			continue
		}
		out = append(out, newEntry(text))
	}
	return out
}

func newEntry(line string) HeuristicEntry {
	e := HeuristicEntry{}
	e.Duration = reDuration.FindString(line)
	head := strings.TrimSpace(strings.Trim(strings.Replace(line, e.Duration, "", 1), " ()|-–,"))

	desc := ""
	if i := strings.Index(head, ":"); i > 0 {
		head, desc = strings.TrimSpace(head[:i]), strings.TrimSpace(head[i+1:])
	}
	parts := reEntryParts.Split(head, 3)
	e.Title = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		e.Subtitle = strings.TrimSpace(parts[1])
	}
	e.Description = desc
	return e
}

// looksLikeSentence treats long lines ending with a full stop as description.
func looksLikeSentence(s string) bool {
	return len(strings.Fields(s)) > 8 || strings.HasSuffix(s, ".")
}
