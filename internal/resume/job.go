package resume

import "encoding/json"

// HardFilters is the boolean gate section of a job requirement payload.
// RequiredSkills must ALL appear in the candidate text; RequiredFrameworks
// and RequiredKeywords each require at least one hit when non-empty.
type HardFilters struct {
	RequiredSkills     []string `json:"required_skills"`
	RequiredFrameworks []string `json:"required_frameworks"`
	RequiredKeywords   []string `json:"required_keywords"`
}

// Empty reports whether no filter lists are configured.
func (h HardFilters) Empty() bool {
	return len(h.RequiredSkills) == 0 && len(h.RequiredFrameworks) == 0 && len(h.RequiredKeywords) == 0
}

// JobRequirement is a job description payload looked up by title. The payload
// beyond HardFilters is free-form and is carried verbatim into the semantic
// matching text.
type JobRequirement struct {
	Title       string         `json:"title"`
	HardFilters HardFilters    `json:"hard_filters"`
	Fields      map[string]any `json:"-"`
}

// ParseJobRequirement decodes a raw job requirement JSON payload. The
// hard_filters object is extracted into its typed form; everything else is
// kept in Fields for the semantic dimension.
func ParseJobRequirement(title string, payload []byte) (*JobRequirement, error) {
	job := &JobRequirement{Title: title, Fields: map[string]any{}}
	if len(payload) == 0 {
		return job, nil
	}

	if err := json.Unmarshal(payload, &job.Fields); err != nil {
		return nil, err
	}

	var wrapper struct {
		HardFilters HardFilters `json:"hard_filters"`
	}
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil, err
	}
	job.HardFilters = wrapper.HardFilters

	return job, nil
}

// Text renders the full payload as a JSON string for embedding.
func (j *JobRequirement) Text() string {
	if len(j.Fields) == 0 {
		return j.Title
	}
	data, err := json.Marshal(j.Fields)
	if err != nil {
		return j.Title
	}
	return string(data)
}
