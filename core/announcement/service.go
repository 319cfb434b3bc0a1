package announcement

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
	"github.com/JithuMorrison/OneStop-Web-sub001/core/hashtag"
)

// ErrNotFound is returned by repositories when no announcement matches.
var ErrNotFound = errors.New("announcement not found")

var nowFunc = time.Now // mockable

type (
	Repository interface {
		CreateAnnouncement(ctx context.Context, a Announcement) (Announcement, error)
		GetAnnouncementByID(ctx context.Context, id string) (Announcement, error)
		QueryAllAnnouncements(ctx context.Context) ([]Announcement, error)
		// FilterAnnouncements applies QueryFilter.Search, Category & Ordering; date ranges are applied by the Service.
		FilterAnnouncements(ctx context.Context, filter QueryFilter) ([]Announcement, error)
		DeleteAnnouncementsByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		logger  core.Logger
		conf    *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, logger core.Logger, conf *core.Config) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, logger: logger, conf: conf}
}

// Create stores a new announcement whose hashtag encodes the event described by `na`.
// `na` must have been validated.
func (svc *Service) Create(ctx context.Context, na NewAnnouncement, createdBy string) (Announcement, error) {
	tag, err := na.Tag(svc.conf.Announcement.NameMaxLen)
	if err != nil {
		return Announcement{}, err
	}
	tagStr, err := hashtag.Encode(tag)
	if err != nil {
		return Announcement{}, err
	}

	now := nowFunc().UTC()
	a := Announcement{
		ID:              uuid.New().String(),
		Title:           na.Title,
		Description:     na.Description,
		Category:        tag.Category,
		Hashtag:         tagStr,
		RegistrationURL: na.RegistrationURL,
		CreatedBy:       createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	a, err = svc.repo.CreateAnnouncement(ctx, a)
	if err != nil {
		return Announcement{}, errors.Wrap(err, "creating announcement")
	}

	svc.notify(a, tag)
	return a, nil
}

func (svc *Service) notify(a Announcement, tag hashtag.Tag) {
	to := svc.conf.Announcement.NotifyEmail
	if to == "" || svc.mailSvc == nil {
		return
	}
	addr, err := mail.ParseAddress(to)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("invalid announcement notification address %q", to), err)
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{*addr},
		Subject:      "New announcement: " + a.Title,
		TemplateName: "announcement_created",
		TemplateData: map[string]interface{}{
			"Announcement": a,
			"Start":        hashtag.FormatDate(tag.Start),
			"End":          hashtag.FormatDate(tag.End),
		},
	})
}

func (svc *Service) GetByID(ctx context.Context, id string) (Announcement, error) {
	return svc.repo.GetAnnouncementByID(ctx, id)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Announcement, error) {
	return svc.repo.QueryAllAnnouncements(ctx)
}

// Filter returns the announcements matching `filter`. With a date range,
// announcements whose hashtag cannot be decoded are left out.
func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Announcement, error) {
	filter.Clean()
	anns, err := svc.repo.FilterAnnouncements(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "filtering announcements")
	}
	if !filter.HasDateRange() {
		return anns, nil
	}

	res := make([]Announcement, 0, len(anns))
	for _, a := range anns {
		tag, err := a.Event()
		if err != nil {
			svc.warnUndecodable(a, err)
			continue
		}
		if tag.Overlaps(filter.From, filter.To) {
			res = append(res, a)
		}
	}
	return res, nil
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteAnnouncementsByID(ctx, ids...)
}

// Calendar places every announcement overlapping [from, to] (zero bounds are open) on the calendar,
// ordered by start date then title. Undecodable hashtags are logged & skipped.
func (svc *Service) Calendar(ctx context.Context, from, to time.Time) ([]CalendarEvent, error) {
	anns, err := svc.repo.QueryAllAnnouncements(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying announcements")
	}

	events := make([]CalendarEvent, 0, len(anns))
	for _, a := range anns {
		tag, err := a.Event()
		if err != nil {
			svc.warnUndecodable(a, err)
			continue
		}
		if tag.Overlaps(from, to) {
			events = append(events, newCalendarEvent(a, tag))
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		return events[i].Title < events[j].Title
	})
	return events, nil
}

func (svc *Service) warnUndecodable(a Announcement, err error) {
	svc.logger.Warn(
		fmt.Sprintf("announcement %s: skipping undecodable hashtag", a.ID),
		err,
		map[string]interface{}{"announcement_id": a.ID, "hashtag": a.Hashtag},
	)
}
