package utils

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"
)

const (
	NotFoundMessage = "not found"
)

// EchoHandleSQLError return http response by error return from sql
func EchoHandleSQLError(echoCtx *echo.Context, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return echoCtx.JSON(http.StatusNotFound, map[string]string{"status": NotFoundMessage})
	}
	logger.WithError(err).Error("Unknown SQL error")
	return echoCtx.JSON(http.StatusInternalServerError, map[string]string{"status": err.Error()})
}

func EchoHandleGenericError(echoCtx *echo.Context, err error, status int) error {
	entry := logger.WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error("Error handling request")
	} else {
		entry.Warn("Rejected request")
	}
	return echoCtx.JSON(status, map[string]string{"status": err.Error()})
}

func EchoHandleInternalError(echoCtx *echo.Context, err error) error {
	return EchoHandleGenericError(echoCtx, err, http.StatusInternalServerError)
}

// EchoHandleMessage responds with a fixed user-facing message while logging
// the underlying error.
func EchoHandleMessage(echoCtx *echo.Context, err error, status int, message string) error {
	logger.WithError(err).WithField("status", status).Warn(message)
	return echoCtx.JSON(status, map[string]string{"status": message})
}

func EchoJsonResponse(echoCtx *echo.Context, data any, status int) error {
	jsonString, err := json.Marshal(data)
	if err != nil {
		return EchoHandleInternalError(echoCtx, err)
	}
	return echoCtx.JSONBlob(status, jsonString)
}
