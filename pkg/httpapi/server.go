// Package httpapi is the REST command surface (SPEC_FULL.md §6 "external
// interfaces"): a thin gin wrapper around pkg/pipeline.Run, grounded on the
// teacher's pkg/server.Server (gin.Default(), a struct-held router,
// setupRoutes registering named handler methods, Run(addr) delegating to
// router.Run). Where the teacher's server fronts a persistent graph store
// queried synchronously per request, this one fronts a pipeline whose single
// run can take long enough that a caller may want to poll for it, so
// analyses are tracked by run ID in an in-memory job table.
package httpapi

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/themaverik/codebase-workflow-analyzer/internal/config"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/pipeline"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// jobStatus is the lifecycle of a submitted analysis.
type jobStatus string

const (
	jobRunning jobStatus = "running"
	jobDone    jobStatus = "done"
	jobFailed  jobStatus = "failed"
)

type job struct {
	Status jobStatus          `json:"status"`
	Result *types.FusedResult `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// Server holds the router and the pipeline dependencies every analyze
// request is run against, mirroring the teacher's Server{manager,
// sourceDir, router} shape.
type Server struct {
	cfg    config.Config
	deps   pipeline.Deps
	router *gin.Engine

	mu   sync.RWMutex
	jobs map[string]*job
}

// NewServer constructs a Server with routes registered, following the
// teacher's NewServer(mgr, sourceDir) *Server pattern.
func NewServer(cfg config.Config, deps pipeline.Deps) *Server {
	s := &Server{
		cfg:    cfg,
		deps:   deps,
		router: gin.Default(),
		jobs:   make(map[string]*job),
	}
	s.setupRoutes()
	return s
}

// Run starts the HTTP listener, delegating to the underlying router exactly
// as the teacher's Server.Run does.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the underlying engine for tests (httptest.NewServer or
// direct ServeHTTP) without starting a real listener.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.POST("/v1/analyze", s.handleAnalyze)
	s.router.GET("/v1/analyze/:id", s.handleAnalyzeStatus)
}

func (s *Server) healthCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

type analyzeRequest struct {
	ProjectPath        string `json:"project_path" binding:"required"`
	EnableLLMGrounding *bool  `json:"enable_llm_grounding"`
	EnableCache        *bool  `json:"enable_cache"`
}

// handleAnalyze runs the pipeline synchronously and records the outcome
// under a fresh run ID before responding, so a slow analysis still shows up
// for later polling via handleAnalyzeStatus even though this handler blocks
// until it completes.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	cfg := s.cfg
	if req.EnableLLMGrounding != nil {
		cfg.EnableLLMGrounding = *req.EnableLLMGrounding
	}
	if req.EnableCache != nil {
		cfg.EnableCache = *req.EnableCache
	}

	id := uuid.NewString()
	s.putJob(id, &job{Status: jobRunning})

	result, err := pipeline.Run(c.Request.Context(), cfg, req.ProjectPath, s.deps)
	if err != nil {
		s.putJob(id, &job{Status: jobFailed, Error: err.Error()})
		handleError(c, http.StatusUnprocessableEntity, "analysis failed", err)
		return
	}

	s.putJob(id, &job{Status: jobDone, Result: result})
	c.JSON(http.StatusOK, gin.H{"id": id, "result": result})
}

func (s *Server) handleAnalyzeStatus(c *gin.Context) {
	id := c.Param("id")
	s.mu.RLock()
	j, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		handleError(c, http.StatusNotFound, "unknown analysis id", nil)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (s *Server) putJob(id string, j *job) {
	s.mu.Lock()
	s.jobs[id] = j
	s.mu.Unlock()
}

func handleError(c *gin.Context, status int, message string, err error) {
	body := gin.H{"error": message}
	if err != nil {
		body["detail"] = err.Error()
	}
	c.JSON(status, body)
}
