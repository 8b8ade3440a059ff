package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/cuisineai/pkg/ctx"
	"github.com/shashiranjanraj/cuisineai/pkg/middleware"
)

// statuses picks between standard status codes and the legacy behaviour of
// answering 200 for every domain and store failure.
type statuses struct {
	strict bool
}

func (s statuses) pick(strict int) int {
	if s.strict {
		return strict
	}
	return http.StatusOK
}

// fault logs err and answers with the redacted internal error body.
func (s statuses) fault(c *ctx.Context, msg string, err error) {
	c.Logger().Error(msg, "error", err)
	c.JSON(s.pick(http.StatusInternalServerError), middleware.MsgInternal)
}
