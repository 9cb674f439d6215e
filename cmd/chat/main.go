package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akolanti/SupportBot/internal/chatbot"
	"github.com/akolanti/SupportBot/internal/chatbot/llm/selector"
	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/data/store"
	"github.com/akolanti/SupportBot/internal/faq/corpus"
	"github.com/akolanti/SupportBot/pkg/logger_i"
	flag "github.com/spf13/pflag"
)

func main() {
	var faqPath, envFile, session string
	flag.StringVar(&envFile, "env-file", ".env", "dotenv file to load")
	flag.StringVar(&faqPath, "faq", "", "FAQ data file, json or yaml (FAQ_DATA_PATH)")
	flag.StringVar(&session, "session", "cli", "session token used for the conversation")
	flag.Parse()

	config.LoadEnvironment(envFile)
	if faqPath == "" {
		faqPath = config.FaqDataPath
	}
	// logs stay on stderr unless a log file is configured
	if config.LogFilePath != "" {
		logger_i.Init()
	}

	faq, err := corpus.LoadFile(faqPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load %s: %v\n", faqPath, err)
		os.Exit(1)
	}

	ctx := context.Background()
	provider, err := selector.FromConfig(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	bot := chatbot.NewService(faq.Entries(), provider,
		store.InitInMemorySessionStore(config.SessionTTL, config.SessionCleanupInterval),
		store.InitInMemoryTicketStore(), chatbot.DefaultOptions())

	run(ctx, bot, session, os.Stdin, os.Stdout)
}

// run reads questions line by line until EOF or exit/quit.
func run(ctx context.Context, bot chatbot.Service, session string, in io.Reader, out io.Writer) {
	fmt.Fprintf(out, "%s support. Type 'exit' or 'quit' to leave, '%s' to open a ticket.\n", config.PlatformName, "generate ticket")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(out, "Bot: Goodbye!")
			return
		}
		fmt.Fprintf(out, "Bot: %s\n", bot.Respond(ctx, line, session))
	}
}
