package net

import (
	"net/http"

	perr "civlink/internal/platform/errors"
)

// HTTPStatus maps a project error to an http status, nil is 200
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return perr.HTTPStatus(err)
}
