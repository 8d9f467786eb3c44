// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// TranscodeManager - FFmpeg 转码任务管理工具

package api

// ProcessConfigIO is API input/output
type ProcessConfigIO struct {
	ID      string         `json:"id"`
	Address string         `json:"address"`
	Format  map[string]any `json:"format,omitempty"`
	Options []string       `json:"options"`
}

// ProcessConfigRequest for Add/Update
type ProcessConfigRequest struct {
	ID        string            `json:"id"`
	Reference string            `json:"reference"`
	Input     []ProcessConfigIO `json:"input" binding:"required"`
	Output    []ProcessConfigIO `json:"output" binding:"required"`
	Options   []string          `json:"options"`
}

// Process represents a task in API response
type Process struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Reference string          `json:"reference"`
	CreatedAt int64           `json:"created_at"`
	UpdatedAt int64           `json:"updated_at"`
	Config    *ProcessConfig  `json:"config,omitempty"`
	Command   *ProcessCommand `json:"command,omitempty"`
}

// ProcessConfig in API format
type ProcessConfig struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Reference string            `json:"reference"`
	Input     []ProcessConfigIO `json:"input"`
	Output    []ProcessConfigIO `json:"output"`
	Options   []string          `json:"options"`
}

// ProcessCommand is the full FFmpeg invocation of a task
type ProcessCommand struct {
	Binary string   `json:"binary"`
	Args   []string `json:"args"`
}

// Format is a supported output container
type Format struct {
	ID      string   `json:"id"`
	Engine  string   `json:"engine"`
	Options []string `json:"options"`
}

// ResolveResponse holds the muxer args for a format selection
type ResolveResponse struct {
	Args []string `json:"args"`
}

// ErrorResponse for API errors
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
