package parser

import "fmt"

// maxPromptChars bounds the resume text embedded in the prompt.
const maxPromptChars = 20000

const resumeExtractionPrompt = `
You are an expert resume parser for a job portal. Extract structured data from the resume text below.

### RULES:
1. Return ONE valid JSON object only. Do not wrap it in markdown code fences and do not add commentary.
2. Use exactly the keys of the schema. Missing information must be "" for strings and [] for arrays.
3. Do not invent facts that are not in the resume.
4. "softSkills" are interpersonal skills (communication, teamwork). "tools" are software and platforms (Git, Figma, VS Code).
5. "coCurricular" lists extracurricular activities and achievements.

### OUTPUT SCHEMA:
{
  "name": "",
  "contact": {
    "email": "",
    "phone": "",
    "location": "",
    "linkedin": "",
    "github": "",
    "portfolio": ""
  },
  "objective": "",
  "education": [
    {"degree": "", "field": "", "institution": "", "year": "", "cgpa": ""}
  ],
  "technicalSkills": [],
  "tools": [],
  "softSkills": [],
  "experience": [
    {"title": "", "company": "", "duration": "", "type": "job or internship", "responsibilities": []}
  ],
  "totalExperienceYears": 0,
  "projects": [
    {"name": "", "duration": "", "role": "", "technologies": [], "description": ""}
  ],
  "certifications": [
    {"name": "", "issuer": "", "date": ""}
  ],
  "languages": [
    {"name": "", "proficiency": ""}
  ],
  "hobbies": [],
  "coCurricular": [],
  "areasOfInterest": []
}

### RESUME TEXT:
%s
`

// BuildResumePrompt embeds the resume text into the extraction prompt.
func BuildResumePrompt(resumeText string) string {
	runes := []rune(resumeText)
	if len(runes) > maxPromptChars {
		resumeText = string(runes[:maxPromptChars])
	}
	return fmt.Sprintf(resumeExtractionPrompt, resumeText)
}
