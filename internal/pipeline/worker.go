package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rclark/bookstruct/internal/booktree"
	"github.com/rclark/bookstruct/internal/config"
	"github.com/rclark/bookstruct/internal/diagram"
	"github.com/rclark/bookstruct/internal/linestream"
	"github.com/rclark/bookstruct/internal/pdfdoc"
	"github.com/rclark/bookstruct/internal/store"
	"github.com/rclark/bookstruct/internal/structure"
)

// Worker runs the extraction pipeline for a single document: stage the
// upload, detect diagrams, read the line stream, structure, persist.
type Worker struct {
	cfg config.Config
	db  *store.Store
	log *slog.Logger
}

func NewWorker(cfg config.Config, db *store.Store, log *slog.Logger) *Worker {
	return &Worker{cfg: cfg, db: db, log: log}
}

// Process runs the full pipeline for a job. It always releases the
// job's waiters, via Complete or Fail.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Stage the upload so the PDF engines can work from disk and the
	// original stays inspectable afterwards.
	stagedPath := filepath.Join(w.cfg.UploadDir, job.Filename)
	if err := os.WriteFile(stagedPath, job.FileData(), 0o644); err != nil {
		log.Error("staging upload failed", "error", err)
		job.Fail("staging", fmt.Errorf("stage upload: %w", err))
		return
	}

	book := structure.BookName(job.Filename)
	opts := structure.Options{Book: book, Subject: w.cfg.DefaultSubject}

	var (
		pages    []linestream.Page
		diagrams []booktree.Diagram
		err      error
	)

	if strings.EqualFold(filepath.Ext(job.Filename), ".pdf") {
		pages, diagrams, err = w.processPDF(ctx, job, stagedPath, book)
	} else {
		job.SetStatus(StatusExtracting, "parsing")
		var p linestream.Parser
		p, err = linestream.ForFile(job.Filename)
		if err == nil {
			pages, err = p.Parse(bytes.NewReader(job.FileData()), job.Filename)
		}
	}
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.Fail("extracting", err)
		return
	}

	job.SetStatus(StatusStructuring, "structuring")
	chapter := structure.New(opts).Structure(pages, diagrams)
	doc := structure.Assemble(chapter, opts)
	log.Info("document structured",
		"pages", len(pages),
		"diagrams", len(diagrams),
		"topics", len(chapter.Topics),
		"chapter_exercises", len(chapter.Exercises))

	// Persistence is best-effort: a failed insert never fails the job.
	job.SetStatus(StatusPersisting, "persisting")
	if err := w.db.SaveExtraction(ctx, book+".pdf", doc); err != nil {
		log.Warn("persist failed", "error", err)
		job.AddError(fmt.Sprintf("persist: %s", err))
	}

	job.Complete(doc)
}

// processPDF runs the diagram engine and the text line stream off one
// open PDF session.
func (w *Worker) processPDF(ctx context.Context, job *Job, path, book string) ([]linestream.Page, []booktree.Diagram, error) {
	doc, err := pdfdoc.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer doc.Close()

	job.SetStatus(StatusExtracting, "detecting diagrams")
	ex := &diagram.Extractor{
		ImageDir: w.cfg.ImageDir,
		Book:     book,
		Zoom:     w.cfg.Zoom,
		MinArea:  w.cfg.MinDiagramArea,
		Quality:  w.cfg.JPEGQuality,
		Workers:  w.cfg.PageWorkers,
		Log:      w.log.With("job_id", job.ID),
	}
	diagrams, err := ex.Extract(ctx, doc)
	if err != nil {
		return nil, nil, fmt.Errorf("diagram extraction: %w", err)
	}

	job.SetStatus(StatusExtracting, "reading text")
	pages, err := linestream.PDFPages(doc, w.cfg.PDFFallbackLedongthuc)
	if err != nil {
		return nil, nil, fmt.Errorf("line stream: %w", err)
	}
	return pages, diagrams, nil
}
