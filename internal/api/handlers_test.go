package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ZSC714725/transcodeformats/internal/ffmpeg"
	"github.com/ZSC714725/transcodeformats/internal/logger"
	"github.com/ZSC714725/transcodeformats/internal/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ff, err := ffmpeg.New(ffmpeg.Config{Binary: "/usr/bin/ffmpeg"})
	require.NoError(t, err)

	r := gin.New()
	NewHandler(task.NewStore(ff, logger.Nop()), ff).Register(r)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFormats(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/v3/formats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var formats []Format
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &formats))
	require.Len(t, formats, 12)
	assert.Equal(t, Format{ID: "rawvideo", Engine: "rawvideo", Options: []string{}}, formats[0])
	assert.Equal(t, Format{ID: "mp4", Engine: "mp4", Options: []string{"faststart"}}, formats[7])
	assert.Equal(t, "hls", formats[11].ID)
	assert.Equal(t, "segment", formats[11].Engine)
	assert.Len(t, formats[11].Options, 5)
}

func TestResolveFormat(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name string
		body string
		code int
		args []string
	}{
		{"default", `{"format":"mkv"}`, http.StatusOK, []string{"-f", "matroska"}},
		{"faststart", `{"format":"mov","faststart":true}`, http.StatusOK, []string{"-movflags", "faststart", "-f", "mov"}},
		{"segment", `{"segment_list":"out.m3u8","format":"hls","segment_time":10}`, http.StatusOK,
			[]string{"-dn", "-f", "segment", "-segment_list", "out.m3u8", "-segment_time", "10"}},
		{"empty object faststart", `{"format":"mp4","faststart":{}}`, http.StatusOK, []string{"-f", "mp4"}},
		{"empty list faststart", `{"format":"mp4","faststart":[]}`, http.StatusOK, []string{"-f", "mp4"}},
		{"missing format", `{"faststart":true}`, http.StatusBadRequest, nil},
		{"unknown format", `{"format":"gif"}`, http.StatusBadRequest, nil},
		{"not an object", `["mp4"]`, http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/v3/formats/resolve", tt.body)
			require.Equal(t, tt.code, w.Code, w.Body.String())
			if tt.code != http.StatusOK {
				var e ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
				assert.Equal(t, tt.code, e.Code)
				return
			}
			var resp ResolveResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.args, resp.Args)
		})
	}
}

const hlsJob = `{
	"id": "job1",
	"reference": "live",
	"input": [{"id": "in", "address": "rtmp://localhost/live/cam"}],
	"output": [{
		"id": "out",
		"address": "/data/seg%03d.ts",
		"options": ["-c", "copy"],
		"format": {"format": "hls", "segment_time": 6, "segment_list": "/data/index.m3u8"}
	}]
}`

func TestProcessLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v3/process", hlsJob)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cfg ProcessConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, "job1", cfg.ID)
	assert.Equal(t, "hls", cfg.Output[0].Format["format"])

	w = do(r, http.MethodPost, "/api/v3/process", hlsJob)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/v3/process/job1/command", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cmd ProcessCommand
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cmd))
	assert.Equal(t, "/usr/bin/ffmpeg", cmd.Binary)
	assert.Equal(t, []string{
		"-i", "rtmp://localhost/live/cam",
		"-c", "copy",
		"-dn", "-f", "segment", "-segment_list", "/data/index.m3u8", "-segment_time", "6",
		"/data/seg%03d.ts",
	}, cmd.Args)

	w = do(r, http.MethodGet, "/api/v3/process?reference=live", "")
	require.Equal(t, http.StatusOK, w.Code)
	var procs []Process
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &procs))
	require.Len(t, procs, 1)
	assert.NotNil(t, procs[0].Config)
	assert.NotNil(t, procs[0].Command)

	w = do(r, http.MethodGet, "/api/v3/process/job1?filter=command", "")
	require.Equal(t, http.StatusOK, w.Code)
	var proc Process
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &proc))
	assert.Nil(t, proc.Config)
	assert.NotNil(t, proc.Command)

	update := `{"input":[{"address":"in.mkv"}],"output":[{"address":"out.mp4","format":{"format":"mp4","faststart":true}}]}`
	w = do(r, http.MethodPut, "/api/v3/process/job1", update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/api/v3/process/job1/command", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cmd))
	assert.Equal(t, []string{"-i", "in.mkv", "-movflags", "faststart", "-f", "mp4", "out.mp4"}, cmd.Args)

	w = do(r, http.MethodGet, "/api/v3/process/job1/config", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/api/v3/process/job1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/v3/process/job1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(r, http.MethodDelete, "/api/v3/process/job1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddProcessInvalid(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"bad json", `{`, "Invalid JSON"},
		{"no outputs", `{"input":[{"address":"in.mkv"}],"output":[]}`, "At least one input and one output required"},
		{"bad format", `{"input":[{"address":"in.mkv"}],"output":[{"address":"o","format":{"format":"gif"}}]}`, "Invalid format"},
		{"format key missing", `{"input":[{"address":"in.mkv"}],"output":[{"address":"o","format":{"faststart":true}}]}`, "Invalid format"},
		{"bad address", `{"input":[{"address":""}],"output":[{"address":"o"}]}`, "Invalid address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/v3/process", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			var e ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
			assert.Equal(t, tt.message, e.Message)
		})
	}
}

func TestListProcessesIDFilter(t *testing.T) {
	r := newTestRouter(t)

	for _, id := range []string{"job1", "job2"} {
		body := `{"id":"` + id + `","input":[{"address":"in.mkv"}],"output":[{"address":"out.mkv"}]}`
		w := do(r, http.MethodPost, "/api/v3/process", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"no filter", "", []string{"job1", "job2"}},
		{"blank entries dropped", "?id=job1,%20,", []string{"job1"}},
		{"spaces trimmed", "?id=%20job2%20,job1", []string{"job1", "job2"}},
		{"only blanks", "?id=%20,,", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodGet, "/api/v3/process"+tt.query, "")
			require.Equal(t, http.StatusOK, w.Code)
			var procs []Process
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &procs))
			got := []string{}
			for _, p := range procs {
				got = append(got, p.ID)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestUpdateUnknownProcess(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPut, "/api/v3/process/nope", `{"input":[{"address":"a"}],"output":[{"address":"b"}]}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
