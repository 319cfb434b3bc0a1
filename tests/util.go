package testutil

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
	"github.com/JithuMorrison/OneStop-Web-sub001/core/announcement"
	"github.com/JithuMorrison/OneStop-Web-sub001/core/hashtag"
	logsvc "github.com/JithuMorrison/OneStop-Web-sub001/services/logger"
)

// NewLogger returns a silent logger that never reports.
func NewLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)
	return logger
}

// CreateAnnouncement stores an announcement for the event `tag` straight through `repo`.
func CreateAnnouncement(
	t *testing.T,
	repo announcement.Repository,
	title string,
	tag hashtag.Tag,
	createdAt ...time.Time,
) announcement.Announcement {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	tagStr, err := hashtag.Encode(tag)
	if err != nil {
		t.Fatalf("CreateAnnouncement() failed: %v", err)
	}
	a := announcement.Announcement{
		ID:        uuid.New().String(),
		Title:     title,
		Category:  tag.Category,
		Hashtag:   tagStr,
		CreatedBy: "tester",
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	a, err = repo.CreateAnnouncement(context.Background(), a)
	if err != nil {
		t.Fatalf("CreateAnnouncement() failed: %v", err)
	}
	return a
}

// Tag builds an event tag from DD-MM-YYYY dates.
func Tag(t *testing.T, category, name, start, end string) hashtag.Tag {
	t.Helper()

	s, err := hashtag.ParseDate(start)
	if err != nil {
		t.Fatalf("Tag() failed: %v", err)
	}
	e, err := hashtag.ParseDate(end)
	if err != nil {
		t.Fatalf("Tag() failed: %v", err)
	}
	return hashtag.Tag{Category: category, Name: name, Start: s, End: e}
}
