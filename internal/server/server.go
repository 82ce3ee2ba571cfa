// Package server exposes the engine over HTTP: health probes, metrics
// and a read-through task API that proxies the external store while
// re-applying the filter/sort/search pipeline locally.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sandeepkv93/remindd/internal/metrics"
	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/pipeline"
	"github.com/sandeepkv93/remindd/internal/taskstore"
)

type Scheduler interface {
	Armed() bool
}

type Server struct {
	client    *taskstore.Client
	ownerID   string
	scheduler Scheduler
	now       func() time.Time
	startTime time.Time
	log       *slog.Logger
}

func New(client *taskstore.Client, ownerID string, scheduler Scheduler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		client:    client,
		ownerID:   ownerID,
		scheduler: scheduler,
		now:       time.Now,
		startTime: time.Now(),
		log:       logger.With("component", "server"),
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.countRequests)

	r.GET("/healthz", s.healthz)
	r.GET("/readyz", s.readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/tasks", s.listTasks)
	api.GET("/tasks/stats", s.stats)
	api.POST("/tasks", s.createTask)
	api.PUT("/tasks/:id", s.updateTask)
	api.DELETE("/tasks/:id", s.deleteTask)
	api.PATCH("/tasks/:id/complete", s.toggleTask)

	return r
}

func (s *Server) countRequests(c *gin.Context) {
	c.Next()
	metrics.HTTPRequests.WithLabelValues(c.FullPath(), strconv.Itoa(c.Writer.Status())).Inc()
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) readyz(c *gin.Context) {
	checks := gin.H{}
	status := http.StatusOK

	if _, err := s.client.LoadTasks(c.Request.Context(), s.ownerID, taskstore.ListOptions{}); err != nil {
		checks["task_store"] = "unhealthy: " + err.Error()
		status = http.StatusServiceUnavailable
	} else {
		checks["task_store"] = "healthy"
	}
	if s.scheduler != nil {
		checks["scheduler_armed"] = strconv.FormatBool(s.scheduler.Armed())
	}

	c.JSON(status, gin.H{
		"status":    http.StatusText(status),
		"uptime":    time.Since(s.startTime).Round(time.Second).String(),
		"timestamp": s.now().UTC().Format(time.RFC3339),
		"checks":    checks,
	})
}

func (s *Server) listTasks(c *gin.Context) {
	filter, err := model.ParseFilter(c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	sortBy, err := model.ParseSort(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	search := c.Query("search")

	resp, err := s.client.LoadTasks(c.Request.Context(), s.ownerID, taskstore.ListOptions{
		Filter: filter,
		Sort:   sortBy,
		Search: search,
	})
	if err != nil {
		s.storeError(c, err)
		return
	}

	// Applying the pipeline over an already-filtered set is idempotent,
	// and guarantees the documented ordering even when the store sorts
	// differently.
	tasks := pipeline.Apply(resp.Tasks, filter, sortBy, search, s.now())
	c.JSON(http.StatusOK, model.TasksResponse{Tasks: tasks, Total: len(tasks)})
}

func (s *Server) createTask(c *gin.Context) {
	var in model.TaskCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid task payload"})
		return
	}
	if err := in.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	task, err := s.client.CreateTask(c.Request.Context(), s.ownerID, in)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) updateTask(c *gin.Context) {
	var in model.TaskUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid task payload"})
		return
	}
	if err := in.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	task, err := s.client.UpdateTask(c.Request.Context(), s.ownerID, c.Param("id"), in)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) deleteTask(c *gin.Context) {
	if err := s.client.DeleteTask(c.Request.Context(), s.ownerID, c.Param("id")); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) toggleTask(c *gin.Context) {
	task, err := s.client.ToggleCompletion(c.Request.Context(), s.ownerID, c.Param("id"))
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) stats(c *gin.Context) {
	resp, err := s.client.LoadTasks(c.Request.Context(), s.ownerID, taskstore.ListOptions{})
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pipeline.Stats(resp.Tasks, s.now()))
}

// storeError maps a task store failure onto the response: upstream
// statuses pass through, transport failures become 502.
func (s *Server) storeError(c *gin.Context, err error) {
	var reqErr *taskstore.RequestError
	if errors.As(err, &reqErr) {
		status := reqErr.StatusCode
		if status == 0 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"detail": reqErr.Detail})
		return
	}
	s.log.Error("task store call failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
}
