// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// TranscodeManager - FFmpeg 转码任务管理工具

package task

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ZSC714725/transcodeformats/internal/ffmpeg"
	"github.com/ZSC714725/transcodeformats/internal/logger"

	"github.com/lithammer/shortuuid/v4"
)

// Task is a transcoding task with its resolved FFmpeg command
type Task struct {
	ID        string
	Reference string
	Config    *Config
	Command   []string
	CreatedAt int64
	UpdatedAt int64
}

// Store manages tasks in memory
type Store interface {
	Add(config *Config) (*Task, error)
	Get(id string) (*Task, error)
	List(ids []string, reference string) []*Task
	Update(id string, config *Config) (*Task, error)
	Delete(id string) error
}

type store struct {
	ffmpeg ffmpeg.FFmpeg
	logger logger.Logger
	tasks  map[string]*Task
	mu     sync.RWMutex
}

// NewStore creates a task store
func NewStore(ff ffmpeg.FFmpeg, log logger.Logger) Store {
	if log == nil {
		log = logger.Nop()
	}
	return &store{
		ffmpeg: ff,
		logger: log,
		tasks:  make(map[string]*Task),
	}
}

// prepare validates config and builds its command
func (s *store) prepare(config *Config) ([]string, error) {
	if len(config.Input) == 0 || len(config.Output) == 0 {
		return nil, ErrInvalidConfig
	}

	for _, in := range config.Input {
		if !s.ffmpeg.ValidateInput(in.Address) {
			return nil, ErrInvalidInputAddress
		}
	}
	for _, out := range config.Output {
		if !s.ffmpeg.ValidateOutput(out.Address) {
			return nil, ErrInvalidOutputAddress
		}
	}

	cmd, err := config.CreateCommand(s.ffmpeg.ResolveFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOutputFormat, err)
	}
	return cmd, nil
}

func (s *store) Add(config *Config) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// the caller's config is left untouched
	c := *config
	if len(c.ID) == 0 {
		c.ID = shortuuid.New()
	}

	cmd, err := s.prepare(&c)
	if err != nil {
		s.logger.Debug("task %s rejected: %v", c.ID, err)
		return nil, err
	}

	if _, exists := s.tasks[c.ID]; exists {
		return nil, ErrTaskExists
	}

	now := time.Now().Unix()
	task := &Task{
		ID:        c.ID,
		Reference: c.Reference,
		Config:    &c,
		Command:   cmd,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tasks[c.ID] = task

	s.logger.Info("task %s added (%d args)", task.ID, len(cmd))
	return task, nil
}

func (s *store) Get(id string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *store) List(ids []string, reference string) []*Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Task
	for _, t := range s.tasks {
		if len(reference) > 0 && t.Reference != reference {
			continue
		}
		if len(ids) > 0 {
			found := false
			for _, id := range ids {
				if t.ID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *store) Update(id string, config *Config) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}

	c := *config
	c.ID = id
	c.Reference = t.Reference

	cmd, err := s.prepare(&c)
	if err != nil {
		s.logger.Debug("task %s update rejected: %v", id, err)
		return nil, err
	}

	// replace rather than mutate, readers may hold the old *Task
	updated := &Task{
		ID:        id,
		Reference: t.Reference,
		Config:    &c,
		Command:   cmd,
		CreatedAt: t.CreatedAt,
		UpdatedAt: time.Now().Unix(),
	}
	s.tasks[id] = updated

	s.logger.Info("task %s updated (%d args)", id, len(cmd))
	return updated, nil
}

func (s *store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)

	s.logger.Info("task %s deleted", id)
	return nil
}
