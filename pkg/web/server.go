// Package web serves the emotion display dashboard.
//
// The speech pipeline mirrors every spoken sentence and its emotion tag
// here; the dashboard shows them live so an operator can watch what the
// robot is saying and feeling without standing next to it.
package web

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// maxPosts bounds the in-memory history.
const maxPosts = 500

// Post is one received sentence with its emotion tag.
type Post struct {
	Sentence string `json:"sentence"`
	Emotion  string `json:"emotion"`
	Time     string `json:"time"`
}

// Server receives emotion posts and renders them.
type Server struct {
	app    *fiber.App
	port   string
	logger *slog.Logger

	mu    sync.RWMutex
	posts []Post
}

// NewServer creates the dashboard server listening on port.
func NewServer(port string, logger *slog.Logger) *Server {
	s := &Server{
		port:   port,
		logger: logger.With("component", "web"),
		posts:  make([]Post, 0, maxPosts),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Pepper Emotion Dashboard",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	app.Post("/emotion", s.handlePostEmotion)
	app.Get("/", s.handleIndex)
	app.Get("/api/posts", s.handleListPosts)

	s.app = app
	return s
}

// Start blocks serving HTTP.
func (s *Server) Start() error {
	s.logger.Info("emotion dashboard listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// add appends a post, discarding the oldest past the history bound.
func (s *Server) add(p Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(s.posts, p)
	if len(s.posts) > maxPosts {
		s.posts = s.posts[1:]
	}
}

// snapshot returns a copy of the history, newest last.
func (s *Server) snapshot() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Post(nil), s.posts...)
}

func now() string {
	return time.Now().Format("15:04:05")
}
