package store

import "time"

// Candidate is the persisted resume. Searchable scalars are promoted to
// columns; the complete extract travels in Payload so nothing is lost
// between ingest and scoring.
type Candidate struct {
	ID      uint   `gorm:"primaryKey"`
	Code104 string `gorm:"size:32;uniqueIndex;not null"`

	Name              string `gorm:"size:128"`
	EnglishName       string `gorm:"size:128"`
	Email             string `gorm:"size:255"`
	Mobile            string `gorm:"size:64"`
	EducationLevel    string `gorm:"size:64"`
	School            string `gorm:"size:255"`
	Major             string `gorm:"size:255"`
	YearsOfExperience string `gorm:"size:64"`

	SkillsText       string `gorm:"type:text"`
	SkillTags        string `gorm:"type:json"`
	SelfIntroduction string `gorm:"type:text"`
	RawMarkdown      string `gorm:"type:mediumtext"`
	Payload          string `gorm:"type:json"`

	WorkExperiences []CandidateWork       `gorm:"constraint:OnDelete:CASCADE"`
	Education       []CandidateEducation  `gorm:"constraint:OnDelete:CASCADE"`
	References      []CandidateReference  `gorm:"constraint:OnDelete:CASCADE"`
	Attachments     []CandidateAttachment `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CandidateWork struct {
	ID          uint `gorm:"primaryKey"`
	CandidateID uint `gorm:"index;not null"`

	Seq                      int
	CompanyName              string `gorm:"size:255"`
	DateStart                string `gorm:"size:32"`
	DateEnd                  string `gorm:"size:32"`
	Duration                 string `gorm:"size:64"`
	Industry                 string `gorm:"size:255"`
	CompanySize              string `gorm:"size:64"`
	JobCategory              string `gorm:"size:255"`
	ManagementResponsibility string `gorm:"size:64"`
	JobTitle                 string `gorm:"size:255"`
	JobDescription           string `gorm:"type:text"`
	JobSkills                string `gorm:"type:text"`
}

type CandidateEducation struct {
	ID          uint `gorm:"primaryKey"`
	CandidateID uint `gorm:"index;not null"`

	Seq         int
	School      string `gorm:"size:255"`
	Department  string `gorm:"size:255"`
	DegreeLevel string `gorm:"size:64"`
	DateStart   string `gorm:"size:32"`
	DateEnd     string `gorm:"size:32"`
	Region      string `gorm:"size:64"`
	Status      string `gorm:"size:64"`
}

type CandidateReference struct {
	ID          uint `gorm:"primaryKey"`
	CandidateID uint `gorm:"index;not null"`

	Name  string `gorm:"size:128"`
	Email string `gorm:"size:255"`
	Org   string `gorm:"size:255"`
	Title string `gorm:"size:128"`
}

type CandidateAttachment struct {
	ID          uint `gorm:"primaryKey"`
	CandidateID uint `gorm:"index;not null"`

	Type        string `gorm:"size:32"`
	Seq         int
	Name        string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	URL         string `gorm:"size:512"`
}

// Job is a persisted job requirement, identified by its title.
type Job struct {
	ID      uint   `gorm:"primaryKey"`
	Title   string `gorm:"size:255;uniqueIndex;not null"`
	Payload string `gorm:"type:json;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MatchResult is one scoring run for a (candidate, job) pair. The pair is
// unique; re-scoring overwrites the previous run.
type MatchResult struct {
	ID          uint `gorm:"primaryKey"`
	CandidateID uint `gorm:"uniqueIndex:idx_candidate_job;not null"`
	JobID       uint `gorm:"uniqueIndex:idx_candidate_job;not null"`

	OverallScore     float64
	PassedHardFilter bool
	Tier             int
	ConfigVersion    string `gorm:"size:16"`
	Payload          string `gorm:"type:json;not null"`

	ScoredAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
