package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/cristianortiz/iplAuctioneer/internal/auction/application"
	"github.com/cristianortiz/iplAuctioneer/internal/auction/domain"
	"github.com/cristianortiz/iplAuctioneer/internal/auction/infra/intake"
	auctionws "github.com/cristianortiz/iplAuctioneer/internal/auction/infra/websocket"
	"github.com/cristianortiz/iplAuctioneer/internal/shared/logger"
	sharedws "github.com/cristianortiz/iplAuctioneer/internal/shared/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Server struct {
	app *fiber.App
}

var log = logger.GetLogger()

// NewServer builds the fiber app with the dashboard API: CSV upload to start
// a session, read-only snapshot, and the websocket upgrade into the hub
func NewServer(auctionService application.AuctionService, hub *sharedws.Hub, sessionCfg domain.SessionConfig) *Server {
	app := fiber.New()

	// logging middleware
	app.Use(func(c *fiber.Ctx) error {
		log.Info("HTTP request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("remote_addr", c.IP()),
		)
		return c.Next()
	})

	// health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	// uploads the player CSV and starts a fresh session, a failed upload
	// leaves any running session untouched
	app.Post("/api/session", func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("players")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "multipart file 'players' is required")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "failed to open uploaded file")
		}
		defer file.Close()

		players, err := intake.ParsePlayers(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snap, err := auctionService.StartSession(c.Context(), players, sessionCfg)
		if err != nil {
			return fiber.NewError(statusForError(err), err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(snap)
	})

	// read-only snapshot of the live session
	app.Get("/api/session/snapshot", func(c *fiber.Ctx) error {
		snap, err := auctionService.Snapshot(c.Context())
		if err != nil {
			return fiber.NewError(statusForError(err), err.Error())
		}
		return c.JSON(snap)
	})

	// websocket upgrade for the auctioneer dashboard
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/auction", websocket.New(func(conn *websocket.Conn) {
		serveAuctionClient(conn, auctionService, hub)
	}))

	return &Server{app: app}
}

// serveAuctionClient registers the connection in the live session's group,
// sends the initial snapshot and runs the pumps until disconnect
func serveAuctionClient(conn *websocket.Conn, auctionService application.AuctionService, hub *sharedws.Hub) {
	ctx := context.Background()

	snap, err := auctionService.Snapshot(ctx)
	if err != nil {
		log.Warn("WS client rejected: no active session", zap.Error(err))
		errMsg := auctionws.ServerErrorMessage{
			BaseMessage: auctionws.BaseMessage{Type: auctionws.MessageTypeServerError},
		}
		errMsg.Payload.Error = err.Error()
		_ = conn.WriteJSON(errMsg)
		_ = conn.Close()
		return
	}

	client := &sharedws.Client{
		Hub:       hub,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		SessionID: snap.SessionID.String(),
		ID:        uuid.New().String(),
	}
	hub.RegisterClient(client)

	// initial state straight to this client before any broadcast arrives
	initial := auctionws.ServerSnapshotMessage{
		BaseMessage: auctionws.BaseMessage{Type: auctionws.MessageTypeServerSnapshot},
	}
	initial.Payload.Snapshot = snap
	if data, err := json.Marshal(initial); err == nil {
		client.Send <- data
	}

	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// statusForError maps the engine's error taxonomy to HTTP statuses
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ValidationError{}):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.StateError{}):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrNoActiveSession):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrEmptyQueue):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (s *Server) Start(addr string) error {
	// clean shutdown on interrupt
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt)
		<-quit

		logger.GetLogger().Info("Shutting down HTTP server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.app.ShutdownWithContext(ctx)
	}()

	logger.GetLogger().Info("HTTP server started", zap.String("addr", addr))
	return s.app.Listen(addr)
}
