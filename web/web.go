// Package web serves the embedded chat page.
package web

import (
	"embed"

	"github.com/labstack/echo/v4"
)

//go:embed static/*
var staticFiles embed.FS

// RegisterRoutes mounts the chat page under /ui.
func RegisterRoutes(e *echo.Echo) {
	e.StaticFS("/ui", echo.MustSubFS(staticFiles, "static"))
}
