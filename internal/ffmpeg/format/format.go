// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// TranscodeManager - FFmpeg 转码任务管理工具
//
// Package format maps an output format selection to FFmpeg muxer arguments.

package format

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat is returned when the options do not select the format being resolved.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrFormatNotSpecified is returned when the options carry no "format" key.
	ErrFormatNotSpecified = fmt.Errorf("%w: format not specified", ErrInvalidFormat)
	// ErrUnknownFormat is returned when the requested format is not registered.
	ErrUnknownFormat = fmt.Errorf("%w: unknown format", ErrInvalidFormat)
)

// Option keys understood by the resolver
const (
	KeyFormat          = "format"
	KeyFaststart       = "faststart"
	KeyFlags           = "flags"
	KeySegmentList     = "segment_list"
	KeySegmentTime     = "segment_time"
	KeySegmentFormat   = "segment_format"
	KeySegmentListType = "segment_list_type"
)

type kind int

const (
	kindDefault kind = iota
	kindFaststart
	kindSegment
)

// segmentKeys are appended in this order regardless of input order.
var segmentKeys = []string{
	KeyFlags,
	KeySegmentList,
	KeySegmentTime,
	KeySegmentFormat,
	KeySegmentListType,
}

// Format is a supported output container
type Format struct {
	Name       string
	EngineName string
	kind       kind
}

var registry = []Format{
	{Name: "rawvideo", EngineName: "rawvideo"},
	{Name: "ogg", EngineName: "ogg"},
	{Name: "avi", EngineName: "avi"},
	{Name: "mkv", EngineName: "matroska"},
	{Name: "webm", EngineName: "webm"},
	{Name: "flv", EngineName: "flv"},
	{Name: "mov", EngineName: "mov", kind: kindFaststart},
	{Name: "mp4", EngineName: "mp4", kind: kindFaststart},
	{Name: "mpg", EngineName: "mpegts"},
	{Name: "mp3", EngineName: "mp3"},
	{Name: "wav", EngineName: "wav"},
	{Name: "hls", EngineName: "segment", kind: kindSegment},
}

var byName = func() map[string]Format {
	m := make(map[string]Format, len(registry))
	for _, f := range registry {
		m[f.Name] = f
	}
	return m
}()

// Formats returns all supported formats in registration order.
func Formats() []Format {
	out := make([]Format, len(registry))
	copy(out, registry)
	return out
}

// Names returns the public names of all supported formats.
func Names() []string {
	names := make([]string, len(registry))
	for i, f := range registry {
		names[i] = f.Name
	}
	return names
}

// Lookup finds a format by its public name.
func Lookup(name string) (Format, bool) {
	f, ok := byName[name]
	return f, ok
}

// Resolve picks the format named by opts["format"] and resolves it.
func Resolve(opts Options) ([]string, error) {
	v, ok := opts[KeyFormat]
	if !ok {
		return nil, ErrFormatNotSpecified
	}
	name, _ := v.(string)
	f, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, v)
	}
	return f.Resolve(opts)
}

// Keys returns the option keys the format reads besides "format".
func (f Format) Keys() []string {
	switch f.kind {
	case kindFaststart:
		return []string{KeyFaststart}
	case kindSegment:
		keys := make([]string, len(segmentKeys))
		copy(keys, segmentKeys)
		return keys
	}
	return nil
}

// Resolve returns the muxer arguments for opts. opts["format"] must name f.
//
// Segment keys present with a nil value are skipped. Values are rendered
// with Go formatting, so a bool becomes "true" or "false" and a float
// like 10.0 becomes "10".
func (f Format) Resolve(opts Options) ([]string, error) {
	if err := f.validate(opts); err != nil {
		return nil, err
	}

	switch f.kind {
	case kindFaststart:
		args := f.muxer()
		if truthy(opts[KeyFaststart]) {
			args = append([]string{"-movflags", "faststart"}, args...)
		}
		return args, nil
	case kindSegment:
		args := append([]string{"-dn"}, f.muxer()...)
		for _, key := range segmentKeys {
			if v, ok := opts[key]; ok && v != nil {
				args = append(args, "-"+key, stringify(v))
			}
		}
		return args, nil
	}

	return f.muxer(), nil
}

func (f Format) validate(opts Options) error {
	v, ok := opts[KeyFormat]
	if !ok {
		return fmt.Errorf("%w: expected %q, format not specified", ErrInvalidFormat, f.Name)
	}
	if name, isString := v.(string); !isString || name != f.Name {
		return fmt.Errorf("%w: expected %q, got %v", ErrInvalidFormat, f.Name, v)
	}
	return nil
}

func (f Format) muxer() []string {
	return []string{"-f", f.EngineName}
}
