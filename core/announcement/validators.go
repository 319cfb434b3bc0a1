package announcement

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
	"github.com/JithuMorrison/OneStop-Web-sub001/core/hashtag"
)

var (
	eventDateTag  = "eventdate"
	eventDateText = "must be a valid date (DD-MM-YYYY)"

	dateOrderTag  = "dateorder"
	dateOrderText = "end date cannot be before start date"
)

// InitValidators registers the announcement validators on `validate`.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(eventDateTag, eventDateValidation)
	core.RegisterCustomTranslation(validate, translator, eventDateTag, eventDateText)

	validate.RegisterStructValidation(newAnnouncementStructValidation, NewAnnouncement{})
	core.RegisterCustomTranslation(validate, translator, dateOrderTag, dateOrderText)
}

// Custom Validators

func eventDateValidation(fl validator.FieldLevel) bool {
	_, err := hashtag.ParseDate(fl.Field().String())
	return err == nil
}

// newAnnouncementStructValidation checks that the event does not end before it starts.
func newAnnouncementStructValidation(sl validator.StructLevel) {
	na, ok := sl.Current().Interface().(NewAnnouncement)
	if !ok {
		return
	}
	start, err := hashtag.ParseDate(na.StartDate)
	if err != nil {
		return // reported by eventdate
	}
	end, err := hashtag.ParseDate(na.EndDate)
	if err != nil {
		return
	}
	if end.Before(start) {
		sl.ReportError(na.EndDate, "end_date", "EndDate", dateOrderTag, "")
	}
}
