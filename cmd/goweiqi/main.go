// Command goweiqi runs the multi-room Go (Weiqi/Baduk) session server: an
// HTTP front door over the rules engine and room registry in
// internal/rules and internal/session.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/fcarvajalbrown/goweiqi/internal/assets"
	"github.com/fcarvajalbrown/goweiqi/internal/session"
	"github.com/fcarvajalbrown/goweiqi/internal/transport"
)

func main() {
	// An optional .env file is consulted on startup; its absence is not
	// fatal, it's simply nothing to load.
	_ = godotenv.Load()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.POST, echo.GET},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	registry := session.NewRegistry()
	handlers := transport.NewHandlers(registry)
	handlers.Register(e)

	assets.Register(e)

	e.Logger.Fatal(e.Start(bindAddr()))
}

func bindAddr() string {
	if addr := os.Getenv("BIND_ADDR"); addr != "" {
		return addr
	}
	return "0.0.0.0:8000"
}
