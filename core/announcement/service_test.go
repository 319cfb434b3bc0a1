package announcement

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
	"github.com/JithuMorrison/OneStop-Web-sub001/core/hashtag"
)

type memRepo struct {
	anns []Announcement
}

func (r *memRepo) CreateAnnouncement(_ context.Context, a Announcement) (Announcement, error) {
	r.anns = append(r.anns, a)
	return a, nil
}

func (r *memRepo) GetAnnouncementByID(_ context.Context, id string) (Announcement, error) {
	for _, a := range r.anns {
		if a.ID == id {
			return a, nil
		}
	}
	return Announcement{}, ErrNotFound
}

func (r *memRepo) QueryAllAnnouncements(context.Context) ([]Announcement, error) {
	return append([]Announcement(nil), r.anns...), nil
}

func (r *memRepo) FilterAnnouncements(_ context.Context, f QueryFilter) ([]Announcement, error) {
	var res []Announcement
	for _, a := range r.anns {
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(f.Search)) {
			continue
		}
		res = append(res, a)
	}
	return res, nil
}

func (r *memRepo) DeleteAnnouncementsByID(_ context.Context, ids ...string) error {
	kept := r.anns[:0]
	for _, a := range r.anns {
		var del bool
		for _, id := range ids {
			del = del || a.ID == id
		}
		if !del {
			kept = append(kept, a)
		}
	}
	r.anns = kept
	return nil
}

type logEntry struct {
	level, msg string
}

type recLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recLogger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level, msg})
}

func (l *recLogger) Debug(msg string, _ ...interface{}) { l.log("debug", msg) }
func (l *recLogger) Info(msg string, _ ...interface{})  { l.log("info", msg) }
func (l *recLogger) Warn(msg string, _ ...interface{})  { l.log("warn", msg) }
func (l *recLogger) Error(msg string, _ ...interface{}) { l.log("error", msg) }
func (l *recLogger) Fatal(msg string, _ ...interface{}) { l.log("fatal", msg) }

type recMailer struct {
	sent []*core.EmailMessage
}

func (m *recMailer) SendMessages(messages ...*core.EmailMessage) {
	m.sent = append(m.sent, messages...)
}

func setup(t *testing.T) (*Service, *memRepo, *recLogger, *recMailer) {
	t.Helper()
	repo := new(memRepo)
	logger := new(recLogger)
	mailer := new(recMailer)
	conf := core.NewTestConfig()
	conf.Announcement.NotifyEmail = "Campus <campus@test.local>"
	return NewService(repo, mailer, logger, conf), repo, logger, mailer
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_Create(t *testing.T) {
	svc, repo, _, mailer := setup(t)

	nowFunc = func() time.Time { return time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	na := NewAnnouncement{
		Title:           "AI Innovate Hackathon 2025",
		Description:     "48h of hacking",
		Category:        "Hackathons",
		StartDate:       "15-03-2025",
		EndDate:         "17-03-2025",
		RegistrationURL: "https://forms.test/ai",
	}
	a, err := svc.Create(context.Background(), na, "admin-1")
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "#Hackathons_AIInnovateHackathon2_15-03-2025_17-03-2025", a.Hashtag)
	assert.Equal(t, "Hackathons", a.Category)
	assert.Equal(t, "admin-1", a.CreatedBy)
	assert.Equal(t, nowFunc().UTC(), a.CreatedAt)
	assert.Len(t, repo.anns, 1)

	tag, err := a.Event()
	require.NoError(t, err)
	assert.Equal(t, hashtag.Tag{Category: "Hackathons", Name: "AIInnovateHackathon2", Start: day(2025, 3, 15), End: day(2025, 3, 17)}, tag)

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "campus@test.local", msg.To[0].Address)
	assert.Equal(t, "New announcement: AI Innovate Hackathon 2025", msg.Subject)
	assert.Equal(t, "announcement_created", msg.TemplateName)
}

func TestService_Create_invalidDates(t *testing.T) {
	svc, repo, _, mailer := setup(t)

	_, err := svc.Create(context.Background(), NewAnnouncement{Title: "T", Category: "C", StartDate: "30-02-2025", EndDate: "01-03-2025"}, "")
	assert.True(t, hashtag.IsFormatError(err))

	_, err = svc.Create(context.Background(), NewAnnouncement{Title: "T", Category: "C", StartDate: "02-03-2025", EndDate: "01-03-2025"}, "")
	assert.True(t, core.IsValidationError(err))

	_, err = svc.Create(context.Background(), NewAnnouncement{Title: " ", Category: "C", StartDate: "01-03-2025", EndDate: "01-03-2025"}, "")
	assert.True(t, core.IsValidationError(err))

	assert.Empty(t, repo.anns)
	assert.Empty(t, mailer.sent)
}

func TestService_Create_noNotifyEmail(t *testing.T) {
	svc, _, _, mailer := setup(t)
	svc.conf.Announcement.NotifyEmail = ""

	_, err := svc.Create(context.Background(), NewAnnouncement{Title: "T", Category: "C", StartDate: "01-03-2025", EndDate: "01-03-2025"}, "")
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func seed(repo *memRepo) {
	repo.anns = []Announcement{
		{ID: "1", Title: "Hackathon", Category: "Hackathons", Hashtag: "#Hackathons_AIInnovate_15-03-2025_17-03-2025"},
		{ID: "2", Title: "Chess club", Category: "Clubs", Hashtag: "#Clubs_Chess_01-03-2025_01-03-2025"},
		{ID: "3", Title: "Broken", Category: "Clubs", Hashtag: "not a hashtag"},
		{ID: "4", Title: "Exams", Category: "Exams", Hashtag: "Exams_Midterms_10-04-2025_20-04-2025"},
		{ID: "5", Title: "Art club", Category: "Clubs", Hashtag: "#Clubs_Art_01-03-2025_02-03-2025"},
	}
}

func TestService_Calendar(t *testing.T) {
	svc, repo, logger, _ := setup(t)
	seed(repo)

	ids := func(events []CalendarEvent) []string {
		res := make([]string, 0, len(events))
		for _, e := range events {
			res = append(res, e.AnnouncementID)
		}
		return res
	}

	tests := []struct {
		name     string
		from, to time.Time
		want     []string
	}{
		{name: "all", want: []string{"5", "2", "1", "4"}},
		{name: "march", from: day(2025, 3, 1), to: day(2025, 3, 31), want: []string{"5", "2", "1"}},
		{name: "single day", from: day(2025, 3, 2), to: day(2025, 3, 2), want: []string{"5"}},
		{name: "from only", from: day(2025, 3, 16), want: []string{"1", "4"}},
		{name: "nothing", from: day(2026, 1, 1), want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := svc.Calendar(context.Background(), tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(events))
		})
	}

	events, err := svc.Calendar(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, CalendarEvent{
		AnnouncementID: "4", Title: "Exams", Category: "Exams", Name: "Midterms",
		Start: day(2025, 4, 10), End: day(2025, 4, 20),
	}, events[3])

	var warns int
	for _, e := range logger.entries {
		if e.level == "warn" && strings.Contains(e.msg, "announcement 3") {
			warns++
		}
	}
	assert.Equal(t, len(tests)+1, warns)
}

func TestService_Filter(t *testing.T) {
	svc, repo, _, _ := setup(t)
	seed(repo)

	tests := []struct {
		name   string
		filter QueryFilter
		want   int
	}{
		{name: "all", want: 5},
		{name: "category", filter: QueryFilter{Category: " Clubs "}, want: 3},
		{name: "search", filter: QueryFilter{Search: "CLUB"}, want: 2},
		{name: "date range drops undecodable", filter: QueryFilter{Category: "Clubs", From: day(2025, 3, 2)}, want: 1},
		{name: "date range", filter: QueryFilter{To: day(2025, 3, 15)}, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anns, err := svc.Filter(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Len(t, anns, tt.want)
		})
	}
}

func TestService_GetDelete(t *testing.T) {
	svc, repo, _, _ := setup(t)
	seed(repo)
	ctx := context.Background()

	a, err := svc.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Chess club", a.Title)

	require.NoError(t, svc.Delete(ctx, "2", "3"))
	_, err = svc.GetByID(ctx, "2")
	assert.Equal(t, ErrNotFound, err)

	all, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestWriteICS(t *testing.T) {
	events := []CalendarEvent{
		{AnnouncementID: "1", Title: "Hackathon", Category: "Hackathons", Name: "AIInnovate",
			Start: day(2025, 3, 15), End: day(2025, 3, 17), RegistrationURL: "https://forms.test/ai"},
		{AnnouncementID: "2", Title: "Chess club", Category: "Clubs", Name: "Chess",
			Start: day(2025, 3, 1), End: day(2025, 3, 1)},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, events, "-//OneStop//Calendar//EN", day(2025, 2, 1)))

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "SUMMARY:Hackathon")
	assert.Contains(t, out, "20250315")
	assert.Contains(t, out, "20250318") // exclusive end
	assert.Contains(t, out, "20250302")
	assert.Contains(t, out, "https://forms.test/ai")

	// UIDs are stable
	var again bytes.Buffer
	require.NoError(t, WriteICS(&again, events, "-//OneStop//Calendar//EN", day(2025, 2, 1)))
	assert.Equal(t, out, again.String())
}

func TestNewAnnouncement_Validate(t *testing.T) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)

	valid := func() NewAnnouncement {
		return NewAnnouncement{Title: " Robotics Expo ", Category: "Clubs", StartDate: "01-03-2025", EndDate: "02-03-2025"}
	}

	tests := []struct {
		name       string
		mutate     func(na *NewAnnouncement)
		wantFields map[string]string
	}{
		{name: "valid", mutate: func(*NewAnnouncement) {}},
		{
			name:       "missing title",
			mutate:     func(na *NewAnnouncement) { na.Title = "   " },
			wantFields: map[string]string{"title": "this field is required"},
		},
		{
			name:       "bad start date",
			mutate:     func(na *NewAnnouncement) { na.StartDate = "31-04-2025" },
			wantFields: map[string]string{"start_date": "must be a valid date (DD-MM-YYYY)"},
		},
		{
			name:       "end before start",
			mutate:     func(na *NewAnnouncement) { na.EndDate = "28-02-2025" },
			wantFields: map[string]string{"end_date": "end date cannot be before start date"},
		},
		{
			name:       "bad url",
			mutate:     func(na *NewAnnouncement) { na.RegistrationURL = "not a url" },
			wantFields: map[string]string{"registration_url": "registration_url must be a valid URL"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			na := valid()
			tt.mutate(&na)
			err := na.Validate(validate)
			if tt.wantFields == nil {
				require.NoError(t, err)
				assert.Equal(t, "Robotics Expo", na.Title)
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, fmt.Sprintf("%T", err))
			assert.Equal(t, tt.wantFields, core.TranslateErrors(vErrs, translator))
		})
	}
}
