package http

import (
	"errors"
	"net/http"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/OlivierMantz/CommentAPI/internal/domain"
	"github.com/OlivierMantz/CommentAPI/internal/dto"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *ginext.Context, op string, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	if status == http.StatusInternalServerError {
		zlog.Logger.Error().Err(err).Str("op", op).Msg("request failed")
		c.JSON(status, dto.ErrorResponse{Error: "internal server error"})
		return
	}

	msg := err.Error()
	switch status {
	case http.StatusNotFound:
		msg = "comment not found"
	case http.StatusForbidden:
		msg = "forbidden"
	}
	c.JSON(status, dto.ErrorResponse{Error: msg})
}
