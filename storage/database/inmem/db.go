package inmemdb

import (
	"sync"

	"github.com/JithuMorrison/OneStop-Web-sub001/core/announcement"
)

type (
	DB struct {
		announcement *announcementTable
	}

	announcementTable struct {
		sync.RWMutex
		table map[string]*announcement.Announcement
	}
)

func Open() *DB {
	return &DB{
		announcement: &announcementTable{table: make(map[string]*announcement.Announcement)},
	}
}

// Reset drops every row.
func (db *DB) Reset() {
	db.announcement.Lock()
	db.announcement.table = make(map[string]*announcement.Announcement)
	db.announcement.Unlock()
}
