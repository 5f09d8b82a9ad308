package web

import (
	"html"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// handlePostEmotion accepts {"sentence": ..., "emotion": ...} from the
// telemetry sink.
func (s *Server) handlePostEmotion(c *fiber.Ctx) error {
	var body struct {
		Sentence string `json:"sentence"`
		Emotion  string `json:"emotion"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	s.add(Post{Sentence: body.Sentence, Emotion: body.Emotion, Time: now()})
	s.logger.Debug("emotion post received", "emotion", body.Emotion, "chars", len(body.Sentence))
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleListPosts returns the history as JSON.
func (s *Server) handleListPosts(c *fiber.Ctx) error {
	return c.JSON(s.snapshot())
}

// handleIndex renders the self-refreshing dashboard page.
func (s *Server) handleIndex(c *fiber.Ctx) error {
	var b strings.Builder
	b.WriteString(pageHeader)

	posts := s.snapshot()
	if len(posts) == 0 {
		b.WriteString("<p>No emotion posts received yet.</p>\n")
	}
	// Newest first.
	for i := len(posts) - 1; i >= 0; i-- {
		p := posts[i]
		b.WriteString(`<div class="emotion"><strong>Sentence:</strong> `)
		b.WriteString(html.EscapeString(p.Sentence))
		b.WriteString("<br><strong>Emotion:</strong> ")
		b.WriteString(html.EscapeString(p.Emotion))
		b.WriteString(" <em>(" + p.Time + ")</em></div>\n")
	}
	b.WriteString(pageFooter)

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(b.String())
}

const pageHeader = `<!DOCTYPE html>
<html>
<head>
    <title>Emotion Posts</title>
    <meta http-equiv="refresh" content="2">
    <style>
        body { font-family: Arial, sans-serif; margin: 2em; }
        h1 { color: #333; }
        .emotion { margin-bottom: 1em; padding: 1em; border: 1px solid #ccc; border-radius: 5px; }
    </style>
</head>
<body>
    <h1>Received Emotion Posts</h1>
`

const pageFooter = `</body>
</html>
`
