// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// TranscodeManager - FFmpeg 转码任务管理工具

package main

import (
	"flag"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ZSC714725/transcodeformats/internal/api"
	"github.com/ZSC714725/transcodeformats/internal/config"
	"github.com/ZSC714725/transcodeformats/internal/ffmpeg"
	"github.com/ZSC714725/transcodeformats/internal/logger"
	"github.com/ZSC714725/transcodeformats/internal/task"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	bind := flag.String("bind", "", "Bind address (overrides config)")
	ffmpegBin := flag.String("ffmpeg", "", "FFmpeg binary path (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Load config: %v", err)
		}
	}

	bindAddr := cfg.Server.Bind
	if *bind != "" {
		bindAddr = *bind
	}
	ffmpegPath := cfg.FFmpeg.Path
	if *ffmpegBin != "" {
		ffmpegPath = *ffmpegBin
	}

	logger := logger.NewWithOptions("transcodemanager", logger.Options{Level: cfg.Log.Level})

	in, err := ffmpeg.NewValidator(cfg.FFmpeg.Access.Input.Allow, cfg.FFmpeg.Access.Input.Block)
	if err != nil {
		log.Fatalf("Input access rules: %v", err)
	}
	out, err := ffmpeg.NewValidator(cfg.FFmpeg.Access.Output.Allow, cfg.FFmpeg.Access.Output.Block)
	if err != nil {
		log.Fatalf("Output access rules: %v", err)
	}

	ff, err := ffmpeg.New(ffmpeg.Config{
		Binary:          ffmpegPath,
		ValidatorInput:  in,
		ValidatorOutput: out,
	})
	if err != nil {
		log.Fatalf("FFmpeg init: %v", err)
	}

	store := task.NewStore(ff, logger)
	handler := api.NewHandler(store, ff)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), cors.Default())
	handler.Register(r)

	logger.Info("listening on %s (%d output formats)", bindAddr, len(ff.Formats()))
	if err := r.Run(bindAddr); err != nil {
		log.Fatalf("Server: %v", err)
	}
}
