// Package api implements the REST surface of the evalexpr tokenizer.
package api

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lemonberrylabs/evalexpr/pkg/config"
	"github.com/lemonberrylabs/evalexpr/pkg/expr"
	"github.com/lemonberrylabs/evalexpr/pkg/wire"
)

const (
	mimeJSON    = "application/json"
	mimeMsgpack = "application/msgpack"

	headerRequestID = "X-Request-Id"
)

// Server is the HTTP API server.
type Server struct {
	app      *fiber.App
	maxInput int
}

// New creates a new API server.
func New(cfg config.Config) *Server {
	srv := &Server{maxInput: cfg.MaxInputBytes}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	app.Use(srv.requestID)
	app.Get("/healthz", srv.health)
	app.Post("/v1/tokenize", srv.tokenize)

	srv.app = app
	return srv
}

// Listen starts the HTTP server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

type tokenizeRequest struct {
	Expression *string `json:"expression"`
}

func (s *Server) requestID(c *fiber.Ctx) error {
	id := c.Get(headerRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals(headerRequestID, id)
	c.Set(headerRequestID, id)
	return c.Next()
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) tokenize(c *fiber.Ctx) error {
	var req tokenizeRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, "INVALID_ARGUMENT", fmt.Sprintf("invalid request body: %v", err))
	}
	if req.Expression == nil {
		return s.fail(c, fiber.StatusBadRequest, "INVALID_ARGUMENT", "expression is required")
	}
	if len(*req.Expression) > s.maxInput {
		return s.fail(c, fiber.StatusRequestEntityTooLarge, "RESOURCE_EXHAUSTED",
			fmt.Sprintf("expression is %d bytes, limit is %d", len(*req.Expression), s.maxInput))
	}

	res := wire.NewResult(expr.Tokenize(*req.Expression))
	status := fiber.StatusOK
	if !res.OK {
		status = fiber.StatusUnprocessableEntity
	}
	return s.respond(c, status, res)
}

// respond writes res as msgpack when the client prefers it, JSON otherwise.
func (s *Server) respond(c *fiber.Ctx, status int, res wire.Result) error {
	if c.Accepts(mimeJSON, mimeMsgpack) != mimeMsgpack {
		return c.Status(status).JSON(res)
	}
	var buf bytes.Buffer
	if err := wire.EncodeMsgpack(&buf, res); err != nil {
		return s.fail(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
	}
	c.Set(fiber.HeaderContentType, mimeMsgpack)
	return c.Status(status).Send(buf.Bytes())
}

func (s *Server) fail(c *fiber.Ctx, code int, status, msg string) error {
	log.Printf("request %v: %s", c.Locals(headerRequestID), msg)
	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": msg,
			"status":  status,
		},
	})
}
