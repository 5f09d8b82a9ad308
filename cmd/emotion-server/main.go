// Emotion dashboard: receives {sentence, emotion} posts from the voice
// agent and shows them on a self-refreshing page.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ucroboticslab/go-pepper/internal/log"
	"github.com/ucroboticslab/go-pepper/pkg/web"
)

func main() {
	port := flag.String("port", "5000", "Port to listen on")
	level := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*level)

	srv := web.NewServer(*port, log.L())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			log.Warn("shutdown error", "error", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
