package app

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"hireflow/internal/config"
	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/delivery/http/routes"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	errMw := middleware.NewErrorMiddleware(c.Logger)
	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())

	routes.NewRegistry(c.Health, c.Handlers).Register(f)
	f.Get("/ws/events", c.WS.HandleEvents)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	go c.Hub.Run()

	app := New(c)
	return app, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
