// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// TranscodeManager - FFmpeg 转码任务管理工具

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ZSC714725/transcodeformats/internal/ffmpeg/format"
)

// Formats GET /api/v3/formats
func (h *Handler) Formats(c *gin.Context) {
	formats := h.ffmpeg.Formats()
	out := make([]Format, len(formats))
	for i, f := range formats {
		keys := f.Keys()
		if keys == nil {
			keys = []string{}
		}
		out[i] = Format{ID: f.Name, Engine: f.EngineName, Options: keys}
	}
	c.JSON(http.StatusOK, out)
}

// ResolveFormat POST /api/v3/formats/resolve
func (h *Handler) ResolveFormat(c *gin.Context) {
	var opts format.Options
	if err := c.ShouldBindJSON(&opts); err != nil {
		errResp(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	args, err := h.ffmpeg.ResolveFormat(opts)
	if err != nil {
		errResp(c, http.StatusBadRequest, "Invalid format", err.Error())
		return
	}

	c.JSON(http.StatusOK, ResolveResponse{Args: args})
}
