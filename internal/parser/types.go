package parser

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// AIResume is the typed shape of the model reply. Scalar fields tolerate
// strings, numbers and nulls; list fields tolerate nulls and single strings.
type AIResume struct {
	Name                 FlexString        `json:"name"`
	Contact              AIContact         `json:"contact"`
	Objective            FlexString        `json:"objective"`
	Education            []AIEducation     `json:"education"`
	TechnicalSkills      FlexStrings       `json:"technicalSkills"`
	Tools                FlexStrings       `json:"tools"`
	SoftSkills           FlexStrings       `json:"softSkills"`
	Experience           []AIExperience    `json:"experience"`
	TotalExperienceYears FlexFloat         `json:"totalExperienceYears"`
	Projects             []AIProject       `json:"projects"`
	Certifications       []AICertification `json:"certifications"`
	Languages            []AILanguage      `json:"languages"`
	Hobbies              FlexStrings       `json:"hobbies"`
	CoCurricular         FlexStrings       `json:"coCurricular"`
	AreasOfInterest      FlexStrings       `json:"areasOfInterest"`
}

type AIContact struct {
	Email     FlexString `json:"email"`
	Phone     FlexString `json:"phone"`
	Location  FlexString `json:"location"`
	LinkedIn  FlexString `json:"linkedin"`
	GitHub    FlexString `json:"github"`
	Portfolio FlexString `json:"portfolio"`
}

type AIEducation struct {
	Degree      FlexString `json:"degree"`
	Field       FlexString `json:"field"`
	Institution FlexString `json:"institution"`
	Year        FlexString `json:"year"`
	CGPA        FlexString `json:"cgpa"`
}

type AIExperience struct {
	Title            FlexString  `json:"title"`
	Company          FlexString  `json:"company"`
	Duration         FlexString  `json:"duration"`
	Type             FlexString  `json:"type"`
	Responsibilities FlexStrings `json:"responsibilities"`
}

type AIProject struct {
	Name         FlexString  `json:"name"`
	Duration     FlexString  `json:"duration"`
	Role         FlexString  `json:"role"`
	Technologies FlexStrings `json:"technologies"`
	Description  FlexString  `json:"description"`
}

type AICertification struct {
	Name   FlexString `json:"name"`
	Issuer FlexString `json:"issuer"`
	Date   FlexString `json:"date"`
}

func (c *AICertification) UnmarshalJSON(b []byte) error {
	if r := gjson.ParseBytes(b); r.Type == gjson.String {
		c.Name = FlexString(strings.TrimSpace(r.Str))
		return nil
	}
	type alias AICertification
	return json.Unmarshal(b, (*alias)(c))
}

type AILanguage struct {
	Name        FlexString `json:"name"`
	Proficiency FlexString `json:"proficiency"`
}

func (l *AILanguage) UnmarshalJSON(b []byte) error {
	if r := gjson.ParseBytes(b); r.Type == gjson.String {
		l.Name, l.Proficiency = splitLanguage(r.Str)
		return nil
	}
	type alias AILanguage
	return json.Unmarshal(b, (*alias)(l))
}

// FlexString accepts any JSON scalar. Objects and arrays decode to "".
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	r := gjson.ParseBytes(b)
	switch r.Type {
	case gjson.String:
		*s = FlexString(strings.TrimSpace(r.Str))
	case gjson.Number:
		*s = FlexString(r.Raw)
	case gjson.True, gjson.False:
		*s = FlexString(r.Raw)
	default:
		*s = ""
	}
	return nil
}

func (s FlexString) String() string {
	return string(s)
}

// FlexStrings accepts an array of scalars (objects contribute their "name"),
// a single comma separated string, or null.
type FlexStrings []string

func (s *FlexStrings) UnmarshalJSON(b []byte) error {
	r := gjson.ParseBytes(b)
	out := []string{}
	switch {
	case r.IsArray():
		for _, item := range r.Array() {
			var v string
			switch {
			case item.IsObject():
				v = item.Get("name").String()
			case item.Type == gjson.String, item.Type == gjson.Number:
				v = item.String()
			}
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	case r.Type == gjson.String:
		for _, part := range strings.Split(r.Str, ",") {
			if v := strings.TrimSpace(part); v != "" {
				out = append(out, v)
			}
		}
	}
	*s = out
	return nil
}

// FlexFloat accepts numbers and strings that start with a number ("2.5 years").
type FlexFloat float64

var reLeadingNumber = regexp.MustCompile(`\d+(\.\d+)?`)

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	r := gjson.ParseBytes(b)
	switch r.Type {
	case gjson.Number:
		*f = FlexFloat(r.Num)
	case gjson.String:
		if m := reLeadingNumber.FindString(r.Str); m != "" {
			v, _ := strconv.ParseFloat(m, 64)
			*f = FlexFloat(v)
		}
	}
	return nil
}

// HeuristicResume is what the regex/keyword parser can recover from raw text.
type HeuristicResume struct {
	Name            string
	Email           string
	Phone           string
	Location        string
	LinkedIn        string
	GitHub          string
	Portfolio       string
	Objective       string
	Skills          []string
	Tools           []string
	SoftSkills      []string
	Education       []HeuristicEducation
	Experience      []HeuristicEntry
	ExperienceYears float64
	Internships     int
	Projects        []HeuristicEntry
	Certifications  []string
	Languages       []string
	Achievements    []string
	AreasOfInterest []string
	Hobbies         []string
}

type HeuristicEducation struct {
	Degree      string
	Field       string
	Institution string
	Year        string
	Grade       string
}

type HeuristicEntry struct {
	Title       string
	Subtitle    string
	Duration    string
	Tools       []string
	Description string
}

var reLanguageLevel = regexp.MustCompile(`^(.*?)\s*[\(\-–:]\s*([^\)]*)\)?$`)

// splitLanguage turns "English (Fluent)" or "Tamil - Native" into name and level.
func splitLanguage(s string) (FlexString, FlexString) {
	s = strings.TrimSpace(s)
	if m := reLanguageLevel.FindStringSubmatch(s); m != nil && strings.TrimSpace(m[1]) != "" {
		return FlexString(strings.TrimSpace(m[1])), FlexString(strings.TrimSpace(m[2]))
	}
	return FlexString(s), ""
}
