// Package httpapi exposes ingest, browsing and scoring over HTTP for the
// recruiting dashboard.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hsinyuc/talentsift/internal/extract"
	"github.com/hsinyuc/talentsift/internal/match"
	"github.com/hsinyuc/talentsift/internal/store"
)

type Server struct {
	store  *store.Store
	runner *match.Runner
	logger *zap.Logger
}

// New registers all routes on the router.
func New(router *gin.Engine, st *store.Store, runner *match.Runner, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{store: st, runner: runner, logger: log}

	router.POST("/candidates", s.ingestCandidate)
	router.GET("/candidates", s.listCandidates)
	router.GET("/candidates/:code", s.getCandidate)
	router.PUT("/jobs", s.ensureJob)
	router.POST("/match", s.runMatch)
	router.GET("/jobs/:id/matches", s.listMatches)

	return s
}

type ingestRequest struct {
	Markdown string `json:"markdown"`
}

// ingestCandidate accepts resume markdown, either raw (text/markdown) or
// wrapped in JSON, parses it and replaces any stored candidate with the same
// 104 code.
func (s *Server) ingestCandidate(c *gin.Context) {
	var markdown string
	if c.ContentType() == "application/json" {
		var req ingestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body: " + err.Error()})
			return
		}
		markdown = req.Markdown
	} else {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reading body: " + err.Error()})
			return
		}
		markdown = string(body)
	}

	if markdown == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "markdown is required"})
		return
	}

	parsed := extract.Parse(markdown)
	if parsed.Code104 == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no 104 code found in resume"})
		return
	}

	row, err := s.store.ReplaceCandidate(c.Request.Context(), parsed)
	if err != nil {
		s.logger.Error("ingest failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storing candidate: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code_104":         row.Code104,
		"candidate_id":     row.ID,
		"name":             row.Name,
		"work_experiences": len(parsed.WorkExperiences),
		"education":        len(parsed.Education),
		"skill_tags":       len(parsed.SkillTags),
	})
}

func (s *Server) listCandidates(c *gin.Context) {
	rows, err := s.store.ListCandidates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type item struct {
		Code104 string `json:"code_104"`
		Name    string `json:"name"`
		School  string `json:"school"`
		Major   string `json:"major"`
	}
	out := make([]item, 0, len(rows))
	for _, r := range rows {
		out = append(out, item{Code104: r.Code104, Name: r.Name, School: r.School, Major: r.Major})
	}
	c.JSON(http.StatusOK, gin.H{"candidates": out})
}

func (s *Server) getCandidate(c *gin.Context) {
	row, err := s.store.GetCandidate(c.Request.Context(), c.Param("code"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	parsed, err := row.Extract()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, parsed)
}

type ensureJobRequest struct {
	Title   string          `json:"title" binding:"required"`
	Payload json.RawMessage `json:"payload"`
}

func (s *Server) ensureJob(c *gin.Context) {
	var req ensureJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := s.store.EnsureJob(c.Request.Context(), req.Title, req.Payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job_id": job.ID, "title": job.Title})
}

type matchRequest struct {
	Code104  string `json:"code_104" binding:"required"`
	JobTitle string `json:"job_title" binding:"required"`
}

func (s *Server) runMatch(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := s.store.EnsureJob(c.Request.Context(), req.JobTitle, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	outcome, err := s.runner.ScoreCandidate(c.Request.Context(), req.Code104, job)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
		return
	}
	if err != nil {
		s.logger.Error("match failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, outcome.Result)
}

func (s *Server) listMatches(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	rows, err := s.store.TopMatches(c.Request.Context(), uint(jobID), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type item struct {
		CandidateID      uint    `json:"candidate_id"`
		OverallScore     float64 `json:"overall_score"`
		PassedHardFilter bool    `json:"passed_hard_filter"`
		Tier             int     `json:"tier"`
	}
	out := make([]item, 0, len(rows))
	for _, r := range rows {
		out = append(out, item{
			CandidateID:      r.CandidateID,
			OverallScore:     r.OverallScore,
			PassedHardFilter: r.PassedHardFilter,
			Tier:             r.Tier,
		})
	}
	c.JSON(http.StatusOK, gin.H{"matches": out})
}
