package announcement

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
	"github.com/JithuMorrison/OneStop-Web-sub001/core/hashtag"
)

type Announcement struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Hashtag         string    `json:"hashtag"` // event tag; the only place event dates are stored
	RegistrationURL string    `json:"registration_url,omitempty"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"` // UTC
	UpdatedAt       time.Time `json:"updated_at"` // UTC
}

// Event decodes the announcement's hashtag.
func (a Announcement) Event() (hashtag.Tag, error) {
	return hashtag.Decode(a.Hashtag)
}

// NewAnnouncement contains information needed to create a new Announcement.
type NewAnnouncement struct {
	Title           string `json:"title" validate:"required,notblank,max=200"`
	Description     string `json:"description" validate:"max=5000"`
	Category        string `json:"category" validate:"required,notblank,max=50"`
	StartDate       string `json:"start_date" validate:"required,eventdate"` // DD-MM-YYYY
	EndDate         string `json:"end_date" validate:"required,eventdate"`   // DD-MM-YYYY
	RegistrationURL string `json:"registration_url" validate:"omitempty,url"`
}

func (na *NewAnnouncement) Clean() {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.Category = core.CleanString(na.Category)
	na.StartDate = core.CleanString(na.StartDate)
	na.EndDate = core.CleanString(na.EndDate)
	na.RegistrationURL = core.CleanString(na.RegistrationURL)
}

func (na *NewAnnouncement) Validate(validate *validator.Validate) error {
	na.Clean()
	return validate.Struct(na)
}

// Tag builds the event tag of the announcement: category & title are normalized into tokens.
func (na NewAnnouncement) Tag(nameMaxLen int) (hashtag.Tag, error) {
	return hashtag.New(na.Category, na.Title, na.StartDate, na.EndDate, nameMaxLen)
}

// QueryFilter applies AND operation on its set fields.
// Search does a case-insensitive match on one of Title or Description; Category is matched exactly.
// From & To select announcements whose event overlaps [From, To].
type QueryFilter struct {
	Search   string
	Category string
	From     time.Time
	To       time.Time
	Ordering core.DBOrdering
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Category = core.CleanString(qf.Category)
	if qf.Ordering.Field == "" {
		qf.Ordering = core.DBOrdering{Field: "created_at", Ascending: false}
	}
}

func (qf *QueryFilter) HasDateRange() bool {
	return !qf.From.IsZero() || !qf.To.IsZero()
}

// OrderingFields are the fields announcements can be ordered by.
var OrderingFields = []string{"created_at", "title", "category"}

// CalendarEvent is an announcement placed on the calendar through its decoded hashtag.
type CalendarEvent struct {
	AnnouncementID  string    `json:"announcement_id"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	Name            string    `json:"name"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	RegistrationURL string    `json:"registration_url,omitempty"`
}

func newCalendarEvent(a Announcement, tag hashtag.Tag) CalendarEvent {
	return CalendarEvent{
		AnnouncementID:  a.ID,
		Title:           a.Title,
		Category:        tag.Category,
		Name:            tag.Name,
		Start:           tag.Start,
		End:             tag.End,
		RegistrationURL: a.RegistrationURL,
	}
}
