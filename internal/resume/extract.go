package resume

import "strings"

// WorkExperience is a single employment entry in document order. Seq is
// assigned by the extractor and is stable within one candidate.
type WorkExperience struct {
	Seq                      int    `json:"seq"`
	CompanyName              string `json:"company_name"`
	DateStart                string `json:"date_start"`
	DateEnd                  string `json:"date_end"`
	Duration                 string `json:"duration"`
	Industry                 string `json:"industry"`
	CompanySize              string `json:"company_size"`
	JobCategory              string `json:"job_category"`
	ManagementResponsibility string `json:"management_responsibility"`
	JobTitle                 string `json:"job_title"`
	JobDescription           string `json:"job_description"`
	JobSkills                string `json:"job_skills"`
}

// Education is a single schooling entry in document order.
type Education struct {
	Seq         int    `json:"seq"`
	School      string `json:"school"`
	Department  string `json:"department"`
	DegreeLevel string `json:"degree_level"`
	DateStart   string `json:"date_start"`
	DateEnd     string `json:"date_end"`
	Region      string `json:"region"`
	Status      string `json:"status"`
}

// Reference is a contact person listed at the end of a resume.
type Reference struct {
	Name  string `json:"ref_name"`
	Email string `json:"ref_email"`
	Org   string `json:"ref_org"`
	Title string `json:"ref_title"`
}

// Attachment is a portfolio file or link entry.
type Attachment struct {
	Type        string `json:"attachment_type"`
	Seq         int    `json:"seq"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Extract is the fully structured result of parsing one resume markdown
// document. Every field has a safe zero value; the extractor never fails,
// it only leaves fields empty.
type Extract struct {
	Name           string `json:"name"`
	EnglishName    string `json:"english_name"`
	Code104        string `json:"code_104"`
	BirthYear      string `json:"birth_year"`
	Age            string `json:"age"`
	Nationality    string `json:"nationality"`
	CurrentStatus  string `json:"current_status"`
	EarliestStart  string `json:"earliest_start"`
	EducationLevel string `json:"education_level"`
	School         string `json:"school"`
	Major          string `json:"major"`
	MilitaryStatus string `json:"military_status"`

	DesiredSalary        string   `json:"desired_salary"`
	DesiredJobCategories []string `json:"desired_job_categories"`
	DesiredLocations     []string `json:"desired_locations"`
	DesiredIndustry      string   `json:"desired_industry"`
	IdealPositions       []string `json:"ideal_positions"`
	YearsOfExperience    string   `json:"years_of_experience"`

	LinkedinURL string `json:"linkedin_url"`
	PhotoPath   string `json:"photo_path"`

	Email          string `json:"email"`
	Mobile1        string `json:"mobile1"`
	Mobile2        string `json:"mobile2"`
	PhoneHome      string `json:"phone_home"`
	PhoneWork      string `json:"phone_work"`
	District       string `json:"district"`
	MailingAddress string `json:"mailing_address"`

	WorkType             string `json:"work_type"`
	ShiftPreference      string `json:"shift_preference"`
	RemoteWorkPreference string `json:"remote_work_preference"`

	SkillsText       string   `json:"skills_text"`
	SkillTags        []string `json:"skill_tags"`
	SelfIntroduction string   `json:"self_introduction"`

	WorkExperiences []WorkExperience `json:"work_experiences"`
	Education       []Education      `json:"education"`
	References      []Reference      `json:"references"`
	Attachments     []Attachment     `json:"attachments"`

	// RawMarkdown keeps the normalized source text so a candidate can be
	// re-extracted and so scorers can search the full document.
	RawMarkdown string `json:"raw_markdown,omitempty"`
}

// NewExtract returns an Extract with all list fields initialized, so JSON
// output renders [] instead of null for empty collections.
func NewExtract() *Extract {
	return &Extract{
		DesiredJobCategories: []string{},
		DesiredLocations:     []string{},
		IdealPositions:       []string{},
		SkillTags:            []string{},
		WorkExperiences:      []WorkExperience{},
		Education:            []Education{},
		References:           []Reference{},
		Attachments:          []Attachment{},
	}
}

// CombinedWorkText joins the free-text parts of all work experiences. Used by
// scorers as the structured-evidence corpus.
func (e *Extract) CombinedWorkText() string {
	parts := make([]string, 0, len(e.WorkExperiences)*3)
	for _, we := range e.WorkExperiences {
		parts = append(parts, we.JobDescription, we.JobTitle, we.JobSkills)
	}
	return strings.Join(parts, " ")
}

// EmbeddingText builds the text embedded for semantic matching: skill tags,
// work history free text and the self introduction.
func (e *Extract) EmbeddingText() string {
	parts := []string{strings.Join(e.SkillTags, " ")}
	for _, we := range e.WorkExperiences {
		parts = append(parts, we.JobTitle+" "+we.JobDescription+" "+we.JobSkills)
	}
	if e.SelfIntroduction != "" {
		parts = append(parts, e.SelfIntroduction)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
