package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rclark/bookstruct/internal/linestream"
	"github.com/rclark/bookstruct/internal/pipeline"
)

// handleUpload accepts one or more documents under the multipart field
// "files", runs the full extraction pipeline for each, and responds
// with the structured results in upload order once every file is done.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		jsonError(w, "'files' field is missing", http.StatusBadRequest)
		return
	}

	type entry struct {
		result map[string]any // set immediately for rejected files
		job    *pipeline.Job  // set for submitted files
	}
	var entries []entry

	for _, fh := range headers {
		filename := sanitizeFilename(fh.Filename)
		if filename == "" {
			continue
		}
		if !linestream.IsSupportedExtension(filename) {
			entries = append(entries, entry{result: map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			}})
			continue
		}

		f, err := fh.Open()
		if err != nil {
			entries = append(entries, entry{result: map[string]any{
				"filename": filename,
				"error":    "failed to open file",
			}})
			continue
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil || int64(len(data)) > s.cfg.MaxUploadBytes {
			entries = append(entries, entry{result: map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("file too large or read error (limit %d bytes)", s.cfg.MaxUploadBytes),
			}})
			continue
		}

		job := pipeline.NewJob(filename, data)
		if err := s.orchestrator.Submit(job); err != nil {
			entries = append(entries, entry{result: map[string]any{
				"filename": filename,
				"error":    err.Error(),
			}})
			continue
		}
		entries = append(entries, entry{job: job})
	}

	if len(entries) == 0 {
		jsonError(w, "no usable files in request", http.StatusBadRequest)
		return
	}

	// Wait for every submitted job, then assemble entries in upload
	// order so the caller can correlate results with inputs.
	results := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		if e.job == nil {
			results = append(results, e.result)
			continue
		}
		if err := e.job.Wait(r.Context()); err != nil {
			results = append(results, map[string]any{
				"filename": e.job.Filename,
				"error":    "request cancelled: " + err.Error(),
			})
			continue
		}
		snap := e.job.Snapshot()
		doc := e.job.Result()
		if snap.Status != pipeline.StatusCompleted || doc == nil {
			msg := "extraction failed"
			if len(snap.Errors) > 0 {
				msg = strings.Join(snap.Errors, "; ")
			}
			results = append(results, map[string]any{
				"filename": e.job.Filename,
				"error":    msg,
			})
			continue
		}
		results = append(results, map[string]any{
			"response":       doc.Response,
			"uploaded_files": doc,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "." {
		name = ""
	}
	return name
}
