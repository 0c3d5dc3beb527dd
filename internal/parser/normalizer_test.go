package parser

import (
	"testing"

	"github.com/fadilmartias/job-portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAI_RenamesFields(t *testing.T) {
	r, err := DecodeAIResume(sampleReply)
	require.NoError(t, err)

	p := NormalizeAI(r, model.EmptyExtractedProfile())

	require.Len(t, p.Education, 1)
	assert.Equal(t, "3.8", p.Education[0].Grade)
	assert.Equal(t, []string{"Communication"}, p.PersonalSkills)
	assert.Equal(t, []string{"Hackathon winner"}, p.Achievements)
	assert.Equal(t, 1, p.Experience.Internships)
	assert.Equal(t, "Built APIs", p.Experience.Positions[0].Description)
	assert.Equal(t, "github.com/alice", p.ContactInfo.GitHub)

	require.Len(t, p.Projects, 1)
	assert.Equal(t, CategoryAIML, p.Projects[0].Category)
	assert.Equal(t, []string{CategoryAIML}, p.ProjectTypes)
	require.Len(t, p.Certifications, 1)
	assert.Equal(t, "AWS", p.Certifications[0].Issuer)
}

func TestNormalize_PreservesSocialLinks(t *testing.T) {
	existing := model.EmptyExtractedProfile()
	existing.ContactInfo = model.ContactInfo{
		LinkedIn:  "linkedin.com/in/alice",
		GitHub:    "github.com/alice",
		Portfolio: "alice.dev",
	}

	t.Run("empty extraction keeps stored links", func(t *testing.T) {
		p := NormalizeAI(&AIResume{}, existing)
		assert.Equal(t, existing.ContactInfo.LinkedIn, p.ContactInfo.LinkedIn)
		assert.Equal(t, existing.ContactInfo.GitHub, p.ContactInfo.GitHub)
		assert.Equal(t, existing.ContactInfo.Portfolio, p.ContactInfo.Portfolio)

		h := NormalizeHeuristic(&HeuristicResume{}, existing)
		assert.Equal(t, existing.ContactInfo.GitHub, h.ContactInfo.GitHub)
	})

	t.Run("non-empty extraction wins", func(t *testing.T) {
		p := NormalizeAI(&AIResume{Contact: AIContact{GitHub: "github.com/alice2"}}, existing)
		assert.Equal(t, "github.com/alice2", p.ContactInfo.GitHub)
		assert.Equal(t, "linkedin.com/in/alice", p.ContactInfo.LinkedIn)
	})
}

func TestDedupeProjects(t *testing.T) {
	in := []model.Project{
		{Name: "Portfolio Site", Description: "first"},
		{Name: "portfolio site ", Description: "second"},
		{Name: "  ", Description: "nameless"},
		{Name: "Quiz App", Description: "third"},
	}
	out := DedupeProjects(in)

	require.Len(t, out, 2)
	assert.Equal(t, "Portfolio Site", out[0].Name)
	assert.Equal(t, "first", out[0].Description)
	assert.Equal(t, "Quiz App", out[1].Name)
}

func TestNormalizeHeuristic_Sample(t *testing.T) {
	h := NewHeuristicParser().Parse(sanjayResume)
	p := NormalizeHeuristic(h, model.EmptyExtractedProfile())

	assert.Subset(t, p.TechnicalSkills, []string{"HTML", "CSS", "JavaScript"})
	assert.Equal(t, []string{"Communication", "Teamwork"}, p.PersonalSkills)
	require.Len(t, p.Education, 1)
	assert.Equal(t, "8.5/10", p.Education[0].Grade)
	assert.Equal(t, "Zoho", p.Experience.Positions[0].Company)

	require.Len(t, p.Projects, 2)
	assert.Equal(t, CategoryWeb, p.Projects[0].Category)
	assert.Equal(t, CategoryAIML, p.Projects[1].Category)
	assert.Equal(t, []string{CategoryWeb, CategoryAIML}, p.ProjectTypes)
	assert.Equal(t, "English", p.Languages[0].Name)
}

func TestNormalize_SkillsDedupedCaseInsensitive(t *testing.T) {
	p := NormalizeAI(&AIResume{TechnicalSkills: FlexStrings{"Go", "go ", "SQL", "GO"}}, model.EmptyExtractedProfile())
	assert.Equal(t, []string{"Go", "SQL"}, p.TechnicalSkills)
}

func TestNormalize_NilInput(t *testing.T) {
	p := NormalizeAI(nil, model.EmptyExtractedProfile())
	assert.NotNil(t, p.TechnicalSkills)
	assert.Empty(t, p.Projects)
	assert.NotNil(t, p.ProjectTypes)
}
