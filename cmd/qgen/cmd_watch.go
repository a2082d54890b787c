package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"question-bank-be/internal/config"
	"question-bank-be/pkg/events"
	pktNats "question-bank-be/pkg/nats"
)

var (
	watchDurable string
	watchType    string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print question generation events from NATS",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			return err
		}
		defer sub.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		err = sub.Subscribe(ctx, watchType, watchDurable, func(ctx context.Context, event events.Event) error {
			printEvent(out, event)
			return nil
		})
		if err != nil {
			return err
		}

		<-ctx.Done()
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchDurable, "durable", "qgen-watch", "Durable consumer name")
	watchCmd.Flags().StringVar(&watchType, "type", "", "Only this event type (default all)")
}

func printEvent(w io.Writer, event events.Event) {
	c := color.New(color.FgGreen)
	if event.EventType() == events.TypeQuestionGenerationFailed {
		c = color.New(color.FgRed)
	}
	payload, _ := json.Marshal(event.Payload())
	c.Fprintf(w, "%s %s ", event.Timestamp().Format("15:04:05"), event.EventType())
	fmt.Fprintln(w, string(payload))
}
