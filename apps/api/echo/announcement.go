package echoapi

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
	"github.com/JithuMorrison/OneStop-Web-sub001/core/announcement"
)

const mimeTextCalendar = "text/calendar; charset=utf-8"

type announcementApi struct {
	svc      *announcement.Service
	validate *validator.Validate
	prodID   string
}

func registerAnnouncementAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *announcement.Service,
	validate *validator.Validate,
	conf *core.Config,
) {
	api := announcementApi{
		svc:      svc,
		validate: validate,
		prodID:   "-//" + conf.AppName + "//Announcements//EN",
	}

	ag := g.Group("/announcements", jwt)
	ag.GET("", api.query)
	ag.POST("", api.create, adminMiddleware())
	ag.GET("/calendar", api.calendar)

	// detail endpoints
	ag.GET("/:id", api.retrieve)
	ag.DELETE("/:id", api.destroy, adminMiddleware())
}

// Handlers

func (api *announcementApi) create(ctx echo.Context) error {
	var data announcement.NewAnnouncement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAnnouncement")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	createdBy := claims.Username
	if createdBy == "" {
		createdBy = claims.Subject
	}

	ann, err := api.svc.Create(ctx.Request().Context(), data, createdBy)
	if err != nil {
		return errors.Wrap(err, "creating announcement")
	}
	return ctx.JSON(http.StatusCreated, ann)
}

func (api *announcementApi) query(ctx echo.Context) error {
	b := newQueryBinder(ctx)
	filter := announcement.QueryFilter{
		Search:   b.String("search"),
		Category: b.String("category"),
		From:     b.Date("from"),
		To:       b.Date("to"),
		Ordering: b.Ordering(announcement.OrderingFields...),
	}
	if err := b.Err(); err != nil {
		return err
	}

	anns, err := api.svc.Filter(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "filtering announcements")
	}
	if anns == nil {
		anns = []announcement.Announcement{}
	}
	return ctx.JSON(http.StatusOK, anns)
}

func (api *announcementApi) calendar(ctx echo.Context) error {
	b := newQueryBinder(ctx)
	from, to := b.Date("from"), b.Date("to")
	if err := b.Err(); err != nil {
		return err
	}

	events, err := api.svc.Calendar(ctx.Request().Context(), from, to)
	if err != nil {
		return errors.Wrap(err, "building calendar")
	}

	if ctx.QueryParam("format") == "ics" {
		var buf bytes.Buffer
		if err = announcement.WriteICS(&buf, events, api.prodID, time.Now()); err != nil {
			return errors.Wrap(err, "writing ics")
		}
		return ctx.Blob(http.StatusOK, mimeTextCalendar, buf.Bytes())
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *announcementApi) retrieve(ctx echo.Context) error {
	ann, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting announcement")
	}
	return ctx.JSON(http.StatusOK, ann)
}

func (api *announcementApi) destroy(ctx echo.Context) error {
	ann, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting announcement")
	}
	if err = api.svc.Delete(ctx.Request().Context(), ann.ID); err != nil {
		return errors.Wrap(err, "deleting announcement")
	}
	return ctx.NoContent(http.StatusNoContent)
}
