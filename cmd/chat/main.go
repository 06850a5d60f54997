// Command chat runs one recommendation session on the terminal. It is the
// same dialog the WebSocket endpoint serves, wired to stdin/stdout, which
// makes it handy for demos and manual testing without a frontend.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"travelbot/internal/config"
	"travelbot/internal/repository"
	"travelbot/internal/service"
	"travelbot/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Dialog output goes to the terminal; keep structured logs quiet unless
	// something goes wrong.
	logg, err := logger.New(logger.Config{Level: "warn", Format: "console"})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	flights, err := repository.LoadFlights(cfg.Data.FlightsCSV)
	if err != nil {
		logg.Fatal("failed to load flight table", logger.Error(err))
	}
	hotels, err := repository.LoadHotels(cfg.Data.HotelsCSV)
	if err != nil {
		logg.Fatal("failed to load hotel table", logger.Error(err))
	}

	var openaiClient *service.OpenAIClient
	if cfg.OpenAI.Enabled {
		openaiClient = service.NewOpenAIClient(&cfg.OpenAI, logg)
	} else {
		fmt.Println("Note: OPENAI_API_KEY is not set; your request will be collected field by field.")
	}

	dialog := service.NewDialogController(
		service.NewCriteriaExtractor(openaiClient, logg),
		service.NewFlightFilterEngine(flights),
		service.NewBookingLinkBuilder(),
		service.NewRecommendationComposer(hotels, nil),
		logg,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conv := &terminalConversation{reader: bufio.NewReader(os.Stdin)}
	if _, err := dialog.Run(ctx, conv); err != nil {
		fmt.Println("\nSession ended.")
		os.Exit(1)
	}
	fmt.Println("Goodbye!")
}

// terminalConversation runs the dialog over stdin/stdout
type terminalConversation struct {
	reader *bufio.Reader
}

func (t *terminalConversation) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Println(prompt)
	fmt.Print("> ")
	line, err := t.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (t *terminalConversation) Say(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
