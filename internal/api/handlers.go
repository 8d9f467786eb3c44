// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// TranscodeManager - FFmpeg 转码任务管理工具

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ZSC714725/transcodeformats/internal/ffmpeg"
	"github.com/ZSC714725/transcodeformats/internal/ffmpeg/format"
	"github.com/ZSC714725/transcodeformats/internal/task"
)

// Handler holds dependencies
type Handler struct {
	store  task.Store
	ffmpeg ffmpeg.FFmpeg
}

// NewHandler creates API handler
func NewHandler(store task.Store, ff ffmpeg.FFmpeg) *Handler {
	return &Handler{store: store, ffmpeg: ff}
}

// Register mounts all routes on r
func (h *Handler) Register(r gin.IRouter) {
	v3 := r.Group("/api/v3")
	{
		v3.GET("/formats", h.Formats)
		v3.POST("/formats/resolve", h.ResolveFormat)

		v3.GET("/process", h.ListProcesses)
		v3.POST("/process", h.AddProcess)
		v3.GET("/process/:id", h.GetProcess)
		v3.PUT("/process/:id", h.UpdateProcess)
		v3.DELETE("/process/:id", h.DeleteProcess)
		v3.GET("/process/:id/config", h.GetConfig)
		v3.GET("/process/:id/command", h.GetCommand)
	}
}

func errResp(c *gin.Context, code int, msg, detail string) {
	c.JSON(code, ErrorResponse{Code: code, Message: msg, Detail: detail})
}

// storeErrResp maps store errors to responses
func storeErrResp(c *gin.Context, err error) {
	switch {
	case errors.Is(err, task.ErrNotFound):
		errResp(c, http.StatusNotFound, "Unknown process ID", err.Error())
	case errors.Is(err, task.ErrTaskExists):
		errResp(c, http.StatusBadRequest, "Task exists", err.Error())
	case errors.Is(err, task.ErrInvalidInputAddress), errors.Is(err, task.ErrInvalidOutputAddress):
		errResp(c, http.StatusBadRequest, "Invalid address", err.Error())
	case errors.Is(err, task.ErrInvalidOutputFormat):
		errResp(c, http.StatusBadRequest, "Invalid format", err.Error())
	default:
		errResp(c, http.StatusBadRequest, "Invalid config", err.Error())
	}
}

// AddProcess POST /api/v3/process
func (h *Handler) AddProcess(c *gin.Context) {
	var req ProcessConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	if len(req.Input) == 0 || len(req.Output) == 0 {
		errResp(c, http.StatusBadRequest, "At least one input and one output required", "")
		return
	}

	t, err := h.store.Add(requestToConfig(&req))
	if err != nil {
		storeErrResp(c, err)
		return
	}

	c.JSON(http.StatusOK, taskToProcessConfig(t))
}

// ListProcesses GET /api/v3/process
func (h *Handler) ListProcesses(c *gin.Context) {
	filter := c.DefaultQuery("filter", "")
	reference := c.DefaultQuery("reference", "")
	idStr := c.DefaultQuery("id", "")

	var ids []string
	for _, s := range strings.Split(idStr, ",") {
		if id := strings.TrimSpace(s); id != "" {
			ids = append(ids, id)
		}
	}

	// an id filter of only blanks matches nothing
	if idStr != "" && len(ids) == 0 {
		c.JSON(http.StatusOK, []Process{})
		return
	}

	tasks := h.store.List(ids, reference)
	procs := make([]Process, 0, len(tasks))

	for _, t := range tasks {
		procs = append(procs, h.taskToProcess(t, filter))
	}

	c.JSON(http.StatusOK, procs)
}

// GetProcess GET /api/v3/process/:id
func (h *Handler) GetProcess(c *gin.Context) {
	id := c.Param("id")
	filter := c.DefaultQuery("filter", "")

	t, err := h.store.Get(id)
	if err != nil {
		storeErrResp(c, err)
		return
	}

	c.JSON(http.StatusOK, h.taskToProcess(t, filter))
}

// DeleteProcess DELETE /api/v3/process/:id
func (h *Handler) DeleteProcess(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Delete(id); err != nil {
		storeErrResp(c, err)
		return
	}

	c.JSON(http.StatusOK, "OK")
}

// UpdateProcess PUT /api/v3/process/:id
func (h *Handler) UpdateProcess(c *gin.Context) {
	id := c.Param("id")

	var req ProcessConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	if len(req.Input) == 0 || len(req.Output) == 0 {
		errResp(c, http.StatusBadRequest, "At least one input and one output required", "")
		return
	}

	cfg := requestToConfig(&req)
	cfg.ID = id

	t, err := h.store.Update(id, cfg)
	if err != nil {
		storeErrResp(c, err)
		return
	}

	c.JSON(http.StatusOK, taskToProcessConfig(t))
}

// GetConfig GET /api/v3/process/:id/config
func (h *Handler) GetConfig(c *gin.Context) {
	t, err := h.store.Get(c.Param("id"))
	if err != nil {
		storeErrResp(c, err)
		return
	}

	c.JSON(http.StatusOK, taskToProcessConfig(t))
}

// GetCommand GET /api/v3/process/:id/command
func (h *Handler) GetCommand(c *gin.Context) {
	t, err := h.store.Get(c.Param("id"))
	if err != nil {
		storeErrResp(c, err)
		return
	}

	c.JSON(http.StatusOK, h.taskToCommand(t))
}

func requestToConfig(req *ProcessConfigRequest) *task.Config {
	cfg := &task.Config{
		ID:        req.ID,
		Reference: req.Reference,
		Options:   req.Options,
	}

	for _, io := range req.Input {
		cfg.Input = append(cfg.Input, task.ConfigIO{ID: io.ID, Address: io.Address, Options: io.Options})
	}
	for _, io := range req.Output {
		cfg.Output = append(cfg.Output, task.ConfigIO{
			ID:      io.ID,
			Address: io.Address,
			Format:  format.Options(io.Format),
			Options: io.Options,
		})
	}

	return cfg
}

func taskToProcessConfig(t *task.Task) *ProcessConfig {
	cfg := &ProcessConfig{
		ID:        t.ID,
		Type:      "ffmpeg",
		Reference: t.Reference,
		Options:   t.Config.Options,
	}
	for _, io := range t.Config.Input {
		cfg.Input = append(cfg.Input, ProcessConfigIO{ID: io.ID, Address: io.Address, Options: io.Options})
	}
	for _, io := range t.Config.Output {
		cfg.Output = append(cfg.Output, ProcessConfigIO{
			ID:      io.ID,
			Address: io.Address,
			Format:  io.Format,
			Options: io.Options,
		})
	}
	return cfg
}

func (h *Handler) taskToCommand(t *task.Task) *ProcessCommand {
	return &ProcessCommand{Binary: h.ffmpeg.Binary(), Args: t.Command}
}

func (h *Handler) taskToProcess(t *task.Task, filter string) Process {
	p := Process{
		ID:        t.ID,
		Type:      "ffmpeg",
		Reference: t.Reference,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}

	includeAll := filter == ""
	if includeAll || strings.Contains(filter, "config") {
		p.Config = taskToProcessConfig(t)
	}
	if includeAll || strings.Contains(filter, "command") {
		p.Command = h.taskToCommand(t)
	}

	return p
}
