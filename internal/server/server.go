// Package server exposes the download orchestrator over a local HTTP API.
// One download job runs at a time; clients poll its state.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maneth909/tubedl/internal/download"
	"github.com/maneth909/tubedl/internal/history"
	"github.com/maneth909/tubedl/internal/model"
)

// DefaultResolution is used for video requests that do not name one.
const DefaultResolution = "720p"

// Orchestrator is the download service surface the server depends on.
type Orchestrator interface {
	DownloadVideo(ctx context.Context, req model.DownloadRequest, progress model.ProgressFunc) (string, error)
	DownloadAudio(ctx context.Context, req model.DownloadRequest, progress model.ProgressFunc) (string, error)
	DownloadPlaylist(ctx context.Context, req model.DownloadRequest, progress model.ProgressFunc) ([]model.ItemResult, error)
	VideoPreview(ctx context.Context, url string) (*model.VideoInfo, error)
	PlaylistPreview(ctx context.Context, url string) ([]model.VideoInfo, error)
}

// Server holds the handlers and the single-job state.
type Server struct {
	orchestrator Orchestrator
	history      *history.Store
	downloadDir  string
	log          zerolog.Logger

	mu      sync.Mutex
	current *model.Job
}

// New creates a server around the given orchestrator and history store.
// downloadDir is the destination for requests that do not name one.
func New(orchestrator Orchestrator, store *history.Store, downloadDir string, log zerolog.Logger) *Server {
	return &Server{
		orchestrator: orchestrator,
		history:      store,
		downloadDir:  downloadDir,
		log:          log,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", s.handleHealth)
	router.GET("/", s.handleIndex)
	router.GET("/history", s.handleHistoryPage)

	api := router.Group("/api")
	api.POST("/downloads", s.handleStartDownload)
	api.GET("/downloads/current", s.handleCurrentDownload)
	api.GET("/preview", s.handlePreview)
	api.GET("/history", s.handleHistory)

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleStartDownload accepts a download request and runs it in the
// background. A second request while a job is active is rejected.
func (s *Server) handleStartDownload(c *gin.Context) {
	var req model.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}
	if req.Kind == "" {
		req.Kind = model.KindVideo
	}
	if !req.Kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown kind %q", req.Kind)})
		return
	}
	if req.Kind == model.KindVideo && req.Resolution == "" {
		req.Resolution = DefaultResolution
	}
	if req.DownloadPath == "" {
		req.DownloadPath = s.downloadDir
	}

	job, ok := s.startJob(req)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "a download is already in progress"})
		return
	}

	go s.runJob(req)

	c.JSON(http.StatusAccepted, job)
}

// handleCurrentDownload returns a snapshot of the running or most recently
// finished job.
func (s *Server) handleCurrentDownload(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no download has been started"})
		return
	}
	c.JSON(http.StatusOK, snapshot(s.current))
}

// handlePreview returns display metadata without downloading anything.
// Playlist URLs yield one entry per item; any unfetchable item fails the
// whole preview.
func (s *Server) handlePreview(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	ctx := c.Request.Context()
	if model.IsPlaylistURL(url) {
		items, err := s.orchestrator.PlaylistPreview(ctx, url)
		if err != nil {
			c.JSON(previewStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"playlist": true, "items": items})
		return
	}

	info, err := s.orchestrator.VideoPreview(ctx, url)
	if err != nil {
		c.JSON(previewStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"playlist": false, "video": info})
}

func (s *Server) handleHistory(c *gin.Context) {
	records, err := s.history.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloads": records})
}

// startJob installs a fresh pending job unless one is still active.
func (s *Server) startJob(req model.DownloadRequest) (*model.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.Status.IsActive() {
		return nil, false
	}

	s.current = &model.Job{
		ID:        newJobID(),
		Request:   req,
		Status:    model.JobStatusPending,
		StartedAt: time.Now(),
	}
	return snapshot(s.current), true
}

// runJob executes the request to completion, mirroring progress and the
// outcome into the current job under the lock.
func (s *Server) runJob(req model.DownloadRequest) {
	ctx := context.Background()
	s.update(func(job *model.Job) { job.Status = model.JobStatusRunning })

	progress := func(percent float64) {
		s.update(func(job *model.Job) {
			if percent > job.Progress {
				job.Progress = percent
			}
		})
	}

	var (
		outputPath string
		items      []model.ItemResult
		err        error
	)
	switch {
	case req.IsPlaylist():
		items, err = s.orchestrator.DownloadPlaylist(ctx, req, progress)
	case req.Kind == model.KindAudio:
		outputPath, err = s.orchestrator.DownloadAudio(ctx, req, progress)
	default:
		outputPath, err = s.orchestrator.DownloadVideo(ctx, req, progress)
	}

	s.update(func(job *model.Job) {
		job.OutputPath = outputPath
		job.Items = items
		job.FinishedAt = time.Now()
		if err != nil {
			job.Status = model.JobStatusError
			job.Message = err.Error()
			return
		}
		job.Status = model.JobStatusCompleted
		job.Progress = 100
	})

	if err != nil {
		s.log.Error().Str("url", req.URL).Err(err).Msg("download job failed")
		return
	}
	s.log.Info().Str("url", req.URL).Msg("download job completed")
}

func (s *Server) update(fn func(job *model.Job)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		fn(s.current)
	}
}

// snapshot copies the job so handlers can marshal it outside the lock.
func snapshot(job *model.Job) *model.Job {
	copied := *job
	if job.Items != nil {
		copied.Items = append([]model.ItemResult(nil), job.Items...)
	}
	return &copied
}

// previewStatus maps preview failures onto HTTP statuses. A failed metadata
// fetch is an upstream problem, not a client one.
func previewStatus(err error) int {
	var dlErr *download.Error
	if errors.As(err, &dlErr) && dlErr.Kind == download.KindResolve {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func newJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("job-%d", time.Now().UnixNano())
	}
	return id.String()
}
