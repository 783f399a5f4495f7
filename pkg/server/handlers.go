package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse is the JSON body of /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	UptimeS int64  `json:"uptime_s"`
	Jobs    int    `json:"jobs"`
}

// WriteJSON writes data as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes an ErrorResponse with the given status.
func WriteError(w http.ResponseWriter, status int, message, code string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Code: code})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: s.cfg.Version,
		UptimeS: int64(time.Since(s.started).Seconds()),
		Jobs:    s.jobs.Len(),
	})
}

// handleSubmit stores the uploaded "file" field and starts a job for it.
func (s *Server) handleSubmit(kind JobKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.MaxUploadBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				WriteError(w, http.StatusRequestEntityTooLarge, "upload too large", "TOO_LARGE")
				return
			}
			WriteError(w, http.StatusBadRequest, "missing file field", "BAD_REQUEST")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "read upload failed", "BAD_REQUEST")
			return
		}
		if len(data) == 0 {
			WriteError(w, http.StatusBadRequest, "empty file", "BAD_REQUEST")
			return
		}

		name := uploadName(header.Filename)
		dir, err := s.deps.FileSystem.TempDir("framegrid_" + string(kind) + "_")
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "store upload failed", "INTERNAL_ERROR")
			return
		}
		path := filepath.Join(dir, name)
		if err := s.deps.FileSystem.WriteFile(path, data); err != nil {
			s.deps.FileSystem.RemoveAll(dir)
			WriteError(w, http.StatusInternalServerError, "store upload failed", "INTERNAL_ERROR")
			return
		}

		job := newJob(kind, name)
		s.jobs.Add(job)
		s.start(job, dir, path)

		WriteJSON(w, http.StatusAccepted, job.Status())
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobs.Get(chi.URLParam(r, "id"))
	if !ok {
		WriteError(w, http.StatusNotFound, "job not found", "NOT_FOUND")
		return
	}
	WriteJSON(w, http.StatusOK, job.Status())
}

// handleEvents streams progress snapshots as server-sent events and ends
// with a "status" event once the job has finished.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobs.Get(chi.URLParam(r, "id"))
	if !ok {
		WriteError(w, http.StatusNotFound, "job not found", "NOT_FOUND")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, http.StatusInternalServerError, "streaming unsupported", "INTERNAL_ERROR")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	subID := uuid.NewString()
	ch := job.Events.Subscribe(subID)
	defer func() { job.Events.Unsubscribe(subID) }()

	writeSnapshot(w, job)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, open := <-ch:
			if open {
				writeEvent(w, "progress", msg)
				flusher.Flush()
				continue
			}

			select {
			case <-job.Done():
				status, _ := json.Marshal(job.Status())
				writeEvent(w, "status", string(status))
				flusher.Flush()
				return
			default:
			}

			// Dropped for falling behind while the job still runs: catch up
			// from the current snapshot on a fresh subscription.
			subID = uuid.NewString()
			ch = job.Events.Subscribe(subID)
			writeSnapshot(w, job)
			flusher.Flush()
		}
	}
}

func writeSnapshot(w io.Writer, job *Job) {
	snap, _ := json.Marshal(job.Progress.Snapshot())
	writeEvent(w, "progress", string(snap))
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobs.Get(chi.URLParam(r, "id"))
	if !ok {
		WriteError(w, http.StatusNotFound, "job not found", "NOT_FOUND")
		return
	}
	data, contentType, filename, ok := job.Result()
	if !ok {
		WriteError(w, http.StatusConflict, fmt.Sprintf("job is %s", job.Status().State), "NOT_READY")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.Write(data)
}

func writeEvent(w io.Writer, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}

// uploadName keeps only the base name of a client-supplied file name.
func uploadName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	return name
}

// resultName swaps the upload's extension for ext.
func resultName(input, ext string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}
