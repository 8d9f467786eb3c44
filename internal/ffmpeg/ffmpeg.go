// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// TranscodeManager - FFmpeg 转码任务管理工具

package ffmpeg

import (
	"fmt"
	"strings"

	"github.com/ZSC714725/transcodeformats/internal/ffmpeg/format"
)

// FFmpeg knows how to address the FFmpeg binary and what it may be given
type FFmpeg interface {
	Binary() string
	ValidateInput(address string) bool
	ValidateOutput(address string) bool
	Formats() []format.Format
	ResolveFormat(opts format.Options) ([]string, error)
}

// Config for FFmpeg
type Config struct {
	Binary          string
	ValidatorInput  Validator
	ValidatorOutput Validator
}

type ffmpeg struct {
	binary       string
	validatorIn  Validator
	validatorOut Validator
}

// New creates FFmpeg. The binary is not looked up locally, since commands
// may be handed to a runner on another host.
func New(config Config) (FFmpeg, error) {
	binary := strings.TrimSpace(config.Binary)
	if len(binary) == 0 {
		return nil, fmt.Errorf("no valid binary given")
	}

	f := &ffmpeg{
		binary: binary,
	}

	if config.ValidatorInput != nil {
		f.validatorIn = config.ValidatorInput
	} else {
		f.validatorIn, _ = NewValidator(nil, nil)
	}
	if config.ValidatorOutput != nil {
		f.validatorOut = config.ValidatorOutput
	} else {
		f.validatorOut, _ = NewValidator(nil, nil)
	}

	return f, nil
}

func (f *ffmpeg) Binary() string {
	return f.binary
}

func (f *ffmpeg) ValidateInput(address string) bool {
	return f.validatorIn.IsValid(address)
}

func (f *ffmpeg) ValidateOutput(address string) bool {
	return f.validatorOut.IsValid(address)
}

func (f *ffmpeg) Formats() []format.Format {
	return format.Formats()
}

func (f *ffmpeg) ResolveFormat(opts format.Options) ([]string, error) {
	return format.Resolve(opts)
}
