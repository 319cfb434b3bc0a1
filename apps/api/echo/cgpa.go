package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/JithuMorrison/OneStop-Web-sub001/core/grade"
)

type (
	CGPARequest struct {
		Courses []grade.Course `json:"courses"`
	}

	ScaleResponse struct {
		Scale []grade.Entry `json:"scale"`
	}
)

type cgpaApi struct {
	scale grade.Scale
}

func registerCGPAAPI(g *echo.Group, scale grade.Scale) {
	api := cgpaApi{scale: scale}

	cg := g.Group("/cgpa")
	cg.POST("", api.compute)
	cg.GET("/scale", api.getScale)
}

// compute rejects unknown grades unless `lenient` is set, in which case they count as ungraded.
func (api *cgpaApi) compute(ctx echo.Context) error {
	var data CGPARequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CGPARequest")
	}
	if data.Courses == nil {
		data.Courses = []grade.Course{}
	}

	lenient, _ := strconv.ParseBool(ctx.QueryParam("lenient"))
	if !lenient {
		if err := api.scale.CheckGrades(data.Courses); err != nil {
			return err
		}
	}
	return ctx.JSON(http.StatusOK, api.scale.Summarize(data.Courses))
}

func (api *cgpaApi) getScale(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, ScaleResponse{Scale: api.scale.Entries()})
}
