package handlers

import (
	"github.com/labstack/echo/v4"
)

// envelope is the response shape shared by every endpoint
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, &envelope{Success: true, Data: data})
}

func respondMessage(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, &envelope{Success: true, Data: data, Message: message})
}
