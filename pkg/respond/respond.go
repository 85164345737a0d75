// Package respond writes the API's JSON envelope. Every response carries a
// success flag; list responses add a total and a server timestamp so clients
// can detect stale worklists.
package respond

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

// Timestamp layout used across the API, local clinic time.
const timeLayout = "2006-01-02 15:04:05"

// List writes a successful list envelope with a total and timestamp.
func List(c echo.Context, data interface{}, total int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"data":      data,
		"total":     total,
		"timestamp": time.Now().Format(timeLayout),
	})
}

// OK writes a successful single-object envelope.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// Created writes a 201 envelope with the given fields merged in.
func Created(c echo.Context, fields map[string]interface{}) error {
	body := map[string]interface{}{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(http.StatusCreated, body)
}

// Message writes a success envelope carrying a human-readable message plus
// any extra fields.
func Message(c echo.Context, msg string, fields map[string]interface{}) error {
	body := map[string]interface{}{"success": true, "message": msg}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(http.StatusOK, body)
}

// Error writes an error envelope, mapping the error's classification to an
// HTTP status code.
func Error(c echo.Context, err error) error {
	return c.JSON(apperr.HTTPStatus(err), map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

// ErrorStatus writes an error envelope with an explicit status code.
func ErrorStatus(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}
