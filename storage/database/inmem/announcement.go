package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
	"github.com/JithuMorrison/OneStop-Web-sub001/core/announcement"
)

type announcementRepository struct {
	db *announcementTable
}

var _ announcement.Repository = (*announcementRepository)(nil) // interface compliance check

func NewAnnouncementRepository(db *DB) announcement.Repository {
	return &announcementRepository{db: db.announcement}
}

// query must be called with the lock held.
func (repo *announcementRepository) query() []announcement.Announcement {
	anns := make([]announcement.Announcement, 0, len(repo.db.table))
	for _, a := range repo.db.table {
		anns = append(anns, *a)
	}
	return anns
}

func (repo *announcementRepository) CreateAnnouncement(_ context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[a.ID] = &a
	return a, nil
}

func (repo *announcementRepository) GetAnnouncementByID(_ context.Context, id string) (announcement.Announcement, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if a, ok := repo.db.table[id]; ok {
		return *a, nil
	}
	return announcement.Announcement{}, announcement.ErrNotFound
}

func (repo *announcementRepository) QueryAllAnnouncements(_ context.Context) ([]announcement.Announcement, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	anns := repo.query()
	sortAnnouncements(anns, core.DBOrdering{Field: "created_at"})
	return anns, nil
}

func (repo *announcementRepository) FilterAnnouncements(_ context.Context, filter announcement.QueryFilter) ([]announcement.Announcement, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	search := strings.ToLower(filter.Search)
	anns := make([]announcement.Announcement, 0)
	for _, a := range repo.query() {
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Title), search) &&
			!strings.Contains(strings.ToLower(a.Description), search) {
			continue
		}
		anns = append(anns, a)
	}
	sortAnnouncements(anns, filter.Ordering)
	return anns, nil
}

func (repo *announcementRepository) DeleteAnnouncementsByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

// sortAnnouncements sorts by `ord` (created_at when unset), ID breaking ties.
func sortAnnouncements(anns []announcement.Announcement, ord core.DBOrdering) {
	less := func(a, b announcement.Announcement) int {
		switch ord.Field {
		case "title":
			return strings.Compare(a.Title, b.Title)
		case "category":
			return strings.Compare(a.Category, b.Category)
		default:
			switch {
			case a.CreatedAt.Before(b.CreatedAt):
				return -1
			case a.CreatedAt.After(b.CreatedAt):
				return 1
			}
			return 0
		}
	}
	sort.Slice(anns, func(i, j int) bool {
		c := less(anns[i], anns[j])
		if c == 0 {
			return anns[i].ID < anns[j].ID
		}
		if ord.Ascending {
			return c < 0
		}
		return c > 0
	})
}
