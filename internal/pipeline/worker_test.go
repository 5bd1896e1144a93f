package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/rclark/bookstruct/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWorkerProcessText(t *testing.T) {
	cfg := config.Config{
		UploadDir:      t.TempDir(),
		ImageDir:       t.TempDir(),
		DefaultSubject: "Mathematics",
	}
	w := NewWorker(cfg, nil, testLogger())

	input := "1.1 Sets\n" +
		"A set is a collection of objects.\n" +
		"EXERCISE 1.1\n" +
		"1. List the members of the set.\n"
	job := NewJob("algebra.txt", []byte(input))

	w.Process(context.Background(), job)

	if got := job.Snapshot().Status; got != StatusCompleted {
		t.Fatalf("status = %q, want %q (errors: %v)", got, StatusCompleted, job.Snapshot().Errors)
	}
	doc := job.Result()
	if doc == nil {
		t.Fatal("completed job has nil result")
	}
	if doc.Response.Book != "algebra" {
		t.Errorf("book = %q, want algebra", doc.Response.Book)
	}
	if doc.Response.Subject != "Mathematics" {
		t.Errorf("subject = %q, want Mathematics", doc.Response.Subject)
	}
	if len(doc.Response.Chapters) != 1 {
		t.Fatalf("chapters = %d, want 1", len(doc.Response.Chapters))
	}
	ch := doc.Response.Chapters[0]
	if ch.ChapterName != "algebra" {
		t.Errorf("chapter name = %q, want algebra", ch.ChapterName)
	}
	if len(ch.Topics) != 1 || ch.Topics[0].TopicName != "Sets" {
		t.Fatalf("topics = %+v, want single topic Sets", ch.Topics)
	}
	topic := ch.Topics[0]
	if len(topic.Sections) != 1 || topic.Sections[0].Content != "A set is a collection of objects." {
		t.Errorf("sections = %+v", topic.Sections)
	}
	if len(topic.Exercises) != 1 || topic.Exercises[0].Exercise != "EXERCISE 1.1" {
		t.Errorf("exercises = %+v", topic.Exercises)
	}

	// The upload is staged to disk.
	if _, err := os.Stat(filepath.Join(cfg.UploadDir, "algebra.txt")); err != nil {
		t.Errorf("staged upload missing: %v", err)
	}
}

func TestWorkerProcessUnsupported(t *testing.T) {
	cfg := config.Config{UploadDir: t.TempDir(), DefaultSubject: "Mathematics"}
	w := NewWorker(cfg, nil, testLogger())

	job := NewJob("notes.xyz", []byte("content"))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("status = %q, want %q", snap.Status, StatusFailed)
	}
	if job.Result() != nil {
		t.Error("failed job should have nil result")
	}
}

func TestWorkerProcessEmptyText(t *testing.T) {
	cfg := config.Config{UploadDir: t.TempDir(), DefaultSubject: "Mathematics"}
	w := NewWorker(cfg, nil, testLogger())

	job := NewJob("blank.txt", nil)
	w.Process(context.Background(), job)

	if got := job.Snapshot().Status; got != StatusCompleted {
		t.Fatalf("status = %q, want %q", got, StatusCompleted)
	}
	doc := job.Result()
	if len(doc.Response.Chapters) != 1 {
		t.Fatalf("chapters = %d, want 1", len(doc.Response.Chapters))
	}
	ch := doc.Response.Chapters[0]
	if len(ch.Topics) != 0 || len(ch.Exercises) != 0 {
		t.Errorf("empty input produced content: %+v", ch)
	}
}
