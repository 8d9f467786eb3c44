// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// TranscodeManager - FFmpeg 转码任务管理工具

package task

import (
	"fmt"

	"github.com/ZSC714725/transcodeformats/internal/ffmpeg/format"
)

// ConfigIO is input/output config. Format is only used on outputs.
type ConfigIO struct {
	ID      string         `json:"id"`
	Address string         `json:"address"`
	Format  format.Options `json:"format,omitempty"`
	Options []string       `json:"options"`
}

// Config for a transcoding task
type Config struct {
	ID        string     `json:"id"`
	Reference string     `json:"reference"`
	Input     []ConfigIO `json:"input"`
	Output    []ConfigIO `json:"output"`
	Options   []string   `json:"options"`
}

// Resolver turns output format options into muxer args
type Resolver func(opts format.Options) ([]string, error)

// CreateCommand builds FFmpeg args from config. The muxer args of an
// output go right before its address.
func (c *Config) CreateCommand(resolve Resolver) ([]string, error) {
	if resolve == nil {
		resolve = format.Resolve
	}

	var cmd []string
	cmd = append(cmd, c.Options...)
	for _, in := range c.Input {
		cmd = append(cmd, in.Options...)
		cmd = append(cmd, "-i", in.Address)
	}
	for i, out := range c.Output {
		cmd = append(cmd, out.Options...)
		if len(out.Format) != 0 {
			args, err := resolve(out.Format)
			if err != nil {
				return nil, fmt.Errorf("output %s: %w", outputName(out, i), err)
			}
			cmd = append(cmd, args...)
		}
		cmd = append(cmd, out.Address)
	}
	return cmd, nil
}

func outputName(out ConfigIO, i int) string {
	if len(out.ID) != 0 {
		return out.ID
	}
	return fmt.Sprintf("#%d", i)
}
