package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"

	"chatbot-backend/internal/client"
	"chatbot-backend/internal/logging"
)

func main() {
	baseURL := flag.String("url", "http://localhost:3000", "chat backend base URL")
	debug := flag.Bool("debug", false, "log request errors")
	flag.Parse()

	level := logrus.WarnLevel
	if *debug {
		level = logrus.DebugLevel
	}
	log := logging.Init(level)
	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := client.New(*baseURL)

	if greeting, err := c.Hello(ctx); err != nil {
		log.WithError(err).Debug("hello request failed")
	} else {
		fmt.Println(greeting)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}

		prompt := strings.TrimRight(scanner.Text(), "\r")
		if prompt == "" {
			continue
		}

		reply, err := c.Submit(ctx, prompt)
		if err != nil {
			reportFailure(log, os.Stdout, err)
			continue
		}
		fmt.Println(reply)

		if ctx.Err() != nil {
			return
		}
	}
}

// reportFailure shows the generic retry message; the cause is only logged
// with -debug.
func reportFailure(log logrus.FieldLogger, out io.Writer, err error) {
	log.WithError(err).Debug("chat request failed")
	fmt.Fprintln(out, client.RetryMessage)
}
