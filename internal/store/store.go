// Package store persists candidates, job requirements and match results in
// MySQL. Re-ingesting a candidate replaces the stored record wholesale, so
// the database always mirrors the latest resume export.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hsinyuc/talentsift/internal/resume"
	"github.com/hsinyuc/talentsift/internal/scoring"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Open connects to MySQL and migrates the schema.
func Open(dsn string, log *zap.Logger) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("database dsn is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	s := &Store{db: db, logger: log}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an existing gorm connection. Used by tests.
func NewWithDB(db *gorm.DB, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{db: db, logger: log}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	err := s.db.AutoMigrate(
		&Candidate{},
		&CandidateWork{}, &CandidateEducation{},
		&CandidateReference{}, &CandidateAttachment{},
		&Job{}, &MatchResult{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// ReplaceCandidate stores the extract, keyed by the 104 code. An existing
// candidate is updated in place and all child rows are deleted and recreated;
// stale entries from a previous resume version never survive a re-ingest.
func (s *Store) ReplaceCandidate(ctx context.Context, extract *resume.Extract) (*Candidate, error) {
	if extract == nil || extract.Code104 == "" {
		return nil, errors.New("extract with a 104 code is required")
	}

	row, err := candidateRow(extract)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Candidate
		found := tx.Where("code104 = ?", extract.Code104).First(&existing).Error
		switch {
		case found == nil:
			row.ID = existing.ID
			row.CreatedAt = existing.CreatedAt
			for _, child := range []any{
				&CandidateWork{}, &CandidateEducation{},
				&CandidateReference{}, &CandidateAttachment{},
			} {
				if err := tx.Where("candidate_id = ?", existing.ID).Delete(child).Error; err != nil {
					return fmt.Errorf("delete children: %w", err)
				}
			}
			if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(row).Error; err != nil {
				return fmt.Errorf("update candidate: %w", err)
			}
		case errors.Is(found, gorm.ErrRecordNotFound):
			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("create candidate: %w", err)
			}
		default:
			return found
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("candidate stored",
		zap.String("code_104", row.Code104),
		zap.Uint("candidate_id", row.ID),
		zap.Int("work_experiences", len(row.WorkExperiences)),
		zap.Int("education", len(row.Education)),
	)
	return row, nil
}

// GetCandidate loads a candidate with all children by 104 code.
func (s *Store) GetCandidate(ctx context.Context, code104 string) (*Candidate, error) {
	var row Candidate
	err := s.db.WithContext(ctx).
		Preload(clause.Associations).
		Where("code104 = ?", code104).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListCandidates returns all candidates without children, newest first.
func (s *Store) ListCandidates(ctx context.Context) ([]Candidate, error) {
	var rows []Candidate
	err := s.db.WithContext(ctx).Order("updated_at desc").Find(&rows).Error
	return rows, err
}

// EnsureJob finds the job by title, creating it if missing. A non-empty
// payload that differs from the stored one replaces it, so edited requirement
// files take effect on the next run. Without a payload the call is a pure
// lookup and the stored requirement is never touched.
func (s *Store) EnsureJob(ctx context.Context, title string, payload []byte) (*Job, error) {
	if title == "" {
		return nil, errors.New("job title is required")
	}

	var row Job
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("title = ?", title).First(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if len(payload) == 0 {
				payload = []byte("{}")
			}
			row = Job{Title: title, Payload: string(payload)}
			return tx.Create(&row).Error
		case err != nil:
			return err
		}
		next, changed := resolveJobPayload(row.Payload, payload)
		if !changed {
			return nil
		}
		row.Payload = next
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// resolveJobPayload decides what an existing job's payload becomes. An empty
// incoming payload never clobbers the stored requirement.
func resolveJobPayload(stored string, incoming []byte) (payload string, changed bool) {
	if len(incoming) == 0 || stored == string(incoming) {
		return stored, false
	}
	return string(incoming), true
}

// UpsertMatchResult stores one scoring run, overwriting any previous result
// for the same pair in a single transaction.
func (s *Store) UpsertMatchResult(ctx context.Context, candidateID, jobID uint, result *scoring.Result, configVersion string) (*MatchResult, error) {
	if result == nil {
		return nil, errors.New("result is required")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	row := MatchResult{
		CandidateID:      candidateID,
		JobID:            jobID,
		OverallScore:     result.OverallScore,
		PassedHardFilter: result.PassedHardFilter,
		Tier:             result.Experience.Tier,
		ConfigVersion:    configVersion,
		Payload:          string(payload),
		ScoredAt:         time.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing MatchResult
		err := tx.Where("candidate_id = ? AND job_id = ?", candidateID, jobID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&row).Error
		case err != nil:
			return err
		}
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetMatchResult returns the stored run for the pair.
func (s *Store) GetMatchResult(ctx context.Context, candidateID, jobID uint) (*MatchResult, error) {
	var row MatchResult
	err := s.db.WithContext(ctx).
		Where("candidate_id = ? AND job_id = ?", candidateID, jobID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// HasCurrentResult reports whether the pair already has a stored result
// produced with the given scoring configuration version.
func (s *Store) HasCurrentResult(ctx context.Context, candidateID, jobID uint, configVersion string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&MatchResult{}).
		Where("candidate_id = ? AND job_id = ? AND config_version = ?", candidateID, jobID, configVersion).
		Count(&count).Error
	return count > 0, err
}

// TopMatches returns the ranked results for a job, best first.
func (s *Store) TopMatches(ctx context.Context, jobID uint, limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []MatchResult
	err := s.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("overall_score desc").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// candidateRow converts an extract into its persisted form.
func candidateRow(extract *resume.Extract) (*Candidate, error) {
	payload, err := json.Marshal(extract)
	if err != nil {
		return nil, fmt.Errorf("marshal extract: %w", err)
	}
	tags, err := json.Marshal(extract.SkillTags)
	if err != nil {
		return nil, fmt.Errorf("marshal skill tags: %w", err)
	}

	row := &Candidate{
		Code104:           extract.Code104,
		Name:              extract.Name,
		EnglishName:       extract.EnglishName,
		Email:             extract.Email,
		Mobile:            extract.Mobile1,
		EducationLevel:    extract.EducationLevel,
		School:            extract.School,
		Major:             extract.Major,
		YearsOfExperience: extract.YearsOfExperience,
		SkillsText:        extract.SkillsText,
		SkillTags:         string(tags),
		SelfIntroduction:  extract.SelfIntroduction,
		RawMarkdown:       extract.RawMarkdown,
		Payload:           string(payload),
	}

	for _, we := range extract.WorkExperiences {
		row.WorkExperiences = append(row.WorkExperiences, CandidateWork{
			Seq:                      we.Seq,
			CompanyName:              we.CompanyName,
			DateStart:                we.DateStart,
			DateEnd:                  we.DateEnd,
			Duration:                 we.Duration,
			Industry:                 we.Industry,
			CompanySize:              we.CompanySize,
			JobCategory:              we.JobCategory,
			ManagementResponsibility: we.ManagementResponsibility,
			JobTitle:                 we.JobTitle,
			JobDescription:           we.JobDescription,
			JobSkills:                we.JobSkills,
		})
	}
	for _, ed := range extract.Education {
		row.Education = append(row.Education, CandidateEducation{
			Seq:         ed.Seq,
			School:      ed.School,
			Department:  ed.Department,
			DegreeLevel: ed.DegreeLevel,
			DateStart:   ed.DateStart,
			DateEnd:     ed.DateEnd,
			Region:      ed.Region,
			Status:      ed.Status,
		})
	}
	for _, ref := range extract.References {
		row.References = append(row.References, CandidateReference{
			Name:  ref.Name,
			Email: ref.Email,
			Org:   ref.Org,
			Title: ref.Title,
		})
	}
	for _, att := range extract.Attachments {
		row.Attachments = append(row.Attachments, CandidateAttachment{
			Type:        att.Type,
			Seq:         att.Seq,
			Name:        att.Name,
			Description: att.Description,
			URL:         att.URL,
		})
	}

	return row, nil
}

// Extract rebuilds the resume extract from the stored payload.
func (c *Candidate) Extract() (*resume.Extract, error) {
	out := resume.NewExtract()
	if err := json.Unmarshal([]byte(c.Payload), out); err != nil {
		return nil, fmt.Errorf("unmarshal candidate payload: %w", err)
	}
	return out, nil
}
