// Pepper voice agent: push-to-talk conversation loop for the UC
// Collaborative Robotics Lab's Pepper robot.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ucroboticslab/go-pepper/internal/config"
	"github.com/ucroboticslab/go-pepper/internal/log"
	"github.com/ucroboticslab/go-pepper/pkg/choreo"
	"github.com/ucroboticslab/go-pepper/pkg/emotion"
	"github.com/ucroboticslab/go-pepper/pkg/inference"
	"github.com/ucroboticslab/go-pepper/pkg/motion"
	"github.com/ucroboticslab/go-pepper/pkg/orchestrator"
	"github.com/ucroboticslab/go-pepper/pkg/responder"
	"github.com/ucroboticslab/go-pepper/pkg/search"
	"github.com/ucroboticslab/go-pepper/pkg/speech"
	"github.com/ucroboticslab/go-pepper/pkg/stt"
)

func main() {
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	pepperIP := flag.String("pepper-ip", "", "Robot IP address (overrides PEPPER_IP env var)")
	localTTS := flag.Bool("local-tts", false, "Speak through ElevenLabs locally instead of the robot")
	audioFile := flag.String("audio", "", "Recognize one utterance from a raw PCM16 16kHz capture and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	if *pepperIP != "" {
		cfg.PepperIP = *pepperIP
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	log.Init(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	orch, cleanup, err := build(cfg, *localTTS)
	if err != nil {
		log.Error("initialization failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if *audioFile != "" {
		runOnce(ctx, orch, cfg, *audioFile)
		return
	}
	run(ctx, orch)
}

// runOnce transcribes one captured utterance through the Vosk server and
// handles it as a single cycle.
func runOnce(ctx context.Context, orch *orchestrator.Orchestrator, cfg *config.Config, path string) {
	audio, err := os.ReadFile(path)
	if err != nil {
		log.Error("read capture failed", "path", path, "error", err)
		os.Exit(1)
	}

	recognizer := stt.NewVosk(cfg.VoskURL)
	defer recognizer.Close()

	result, err := recognizer.Recognize(ctx, audio)
	if err != nil {
		log.Error("recognition failed", "error", err)
		os.Exit(1)
	}
	log.Info("recognized utterance", "chars", len(result.Text), "stt_ms", result.LatencyMs)
	fmt.Printf("You said: %s\n", result.Text)

	response := orch.HandleUtterance(ctx, result.Text)
	fmt.Printf("Pepper: %s\n", response)
}

// build wires every capability into an orchestrator.
func build(cfg *config.Config, localTTS bool) (*orchestrator.Orchestrator, func(), error) {
	llm, err := inference.NewClient(
		inference.WithAPIKey(cfg.OpenAIAPIKey),
		inference.WithBaseURL(cfg.OpenAIBaseURL),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("completion client: %w", err)
	}

	searcher := search.NewSearx(cfg.SearchURL)

	var speaker speech.Speaker
	if localTTS {
		speaker, err = speech.NewElevenLabs(cfg.ElevenLabsAPIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("elevenlabs speaker: %w", err)
		}
	} else {
		speaker = speech.NewPepper(cfg.PepperBaseURL())
	}

	robot := motion.NewConn(cfg.PepperBaseURL())
	dispatcher := choreo.NewDispatcher(robot)
	telemetry := emotion.NewTelemetry(cfg.EmotionEndpoint, cfg.UseEmotionServer)

	orch := orchestrator.New(
		responder.NewPersonality(llm),
		responder.NewAdvancedSearch(searcher, llm),
		responder.NewSimpleSearch(searcher, llm),
		responder.NewSummary(llm),
		emotion.NewClassifier(llm),
		speaker,
		orchestrator.WithEmotionSpeech(cfg.EmotionSpeech),
		orchestrator.WithUnitLocalization(cfg.LocalizeUnits),
		orchestrator.WithTelemetry(telemetry),
		orchestrator.WithDispatcher(dispatcher),
	)

	cleanup := func() {
		speaker.Close()
		searcher.Close()
		llm.Close()
	}
	return orch, cleanup, nil
}

// run drives the conversation loop from stdin until EOF, "quit", or a
// signal. Each line is treated as one utterance.
func run(ctx context.Context, orch *orchestrator.Orchestrator) {
	fmt.Println("Pepper voice agent ready. Type an utterance and press Enter; 'quit' to exit.")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			utterance := strings.TrimSpace(line)
			if utterance == "" {
				continue
			}
			if strings.EqualFold(utterance, "quit") {
				return
			}

			response := orch.HandleUtterance(ctx, utterance)
			fmt.Printf("Pepper: %s\n", response)
		}
	}
}
