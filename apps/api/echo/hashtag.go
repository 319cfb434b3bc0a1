package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
	"github.com/JithuMorrison/OneStop-Web-sub001/core/hashtag"
)

type (
	// EncodeRequest describes an event tag. When Name is empty it is derived from Title.
	EncodeRequest struct {
		Category  string `json:"category"`
		Name      string `json:"name"`
		Title     string `json:"title"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}

	HashtagPayload struct {
		Hashtag string `json:"hashtag"`
	}
)

type hashtagApi struct {
	nameMaxLen int
}

func registerHashtagAPI(g *echo.Group, conf *core.Config) {
	api := hashtagApi{nameMaxLen: conf.Announcement.NameMaxLen}

	hg := g.Group("/hashtags")
	hg.POST("/encode", api.encode)
	hg.POST("/decode", api.decode)
}

func (api *hashtagApi) tag(req EncodeRequest) (hashtag.Tag, error) {
	tag := hashtag.Tag{Category: req.Category, Name: req.Name}
	if tag.Name == "" && req.Title != "" {
		tag.Category = hashtag.CleanToken(req.Category)
		tag.Name = hashtag.NameFromTitle(req.Title, api.nameMaxLen)
	}

	var flds []core.FieldError
	if req.StartDate != "" {
		start, err := hashtag.ParseDate(req.StartDate)
		if err != nil {
			flds = append(flds, core.FieldError{Field: "start_date", Error: dateFormatMsg})
		}
		tag.Start = start
	}
	if req.EndDate != "" {
		end, err := hashtag.ParseDate(req.EndDate)
		if err != nil {
			flds = append(flds, core.FieldError{Field: "end_date", Error: dateFormatMsg})
		}
		tag.End = end
	}
	if len(flds) > 0 {
		return hashtag.Tag{}, core.NewValidationError(nil, flds...)
	}
	return tag, nil
}

func (api *hashtagApi) encode(ctx echo.Context) error {
	var data EncodeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EncodeRequest")
	}
	tag, err := api.tag(data)
	if err != nil {
		return err
	}
	tagStr, err := hashtag.Encode(tag)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, HashtagPayload{Hashtag: tagStr})
}

func (api *hashtagApi) decode(ctx echo.Context) error {
	var data HashtagPayload
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to HashtagPayload")
	}
	tag, err := hashtag.Decode(data.Hashtag)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tag)
}
