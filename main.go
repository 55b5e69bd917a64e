package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pacha/config"
	"go-pacha/services"
	"go-pacha/storage"
)

const usage = `usage: go-pacha <command> [flags]

commands:
  serve                         run the development backend
  login -email -password        start a session
  register -nombre -email -password
  logout                        clear the session
  whoami                        show the session user
  places [-category] [-q]       list the catalog
  favorites                     list your favorites
  fav-add -place                save a place as favorite
  fav-remove -id                remove a favorite by favorite id
  reviews [-user]               list your (or another user's) reviews
  review -place -rating -text   write a review
  users                         list users
  stats                         catalog counters
  rdf [-format] [-out]          export the catalog as RDF
  friend-request -to            send a friend request
  friend-accept -from           accept a friend request
  friend-reject -from           decline a friend request
  friend-remove -user           decline, cancel or unfriend
  friends [-q]                  list friends and suggestions
  profile [-nombre -bio -ubicacion]
  feed                          show the feed
  like -post                    toggle a like
  comment -post -text           comment on a post
  note-add -place [-url] [-note]
  notes -place
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, args := os.Args[1], os.Args[2:]
	if cmd == "serve" {
		if err := serve(ctx, cfg); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open device store: %v", err)
	}
	defer closeStore()

	// Request logging is for debugging; keep the terminal for command output.
	logger := log.New(os.Stderr, "pacha: ", log.LstdFlags)
	if os.Getenv("PACHA_DEBUG") == "" {
		logger.SetOutput(io.Discard)
	}

	app := &cli{
		client:   services.NewAPIClientFromConfig(cfg, store, services.WithLogger(logger)),
		social:   services.NewSocialService(store),
		profiles: services.NewProfileService(store),
		feed:     services.NewFeedService(store),
		notes:    services.NewNotesService(store),
		out:      os.Stdout,
	}
	if err := app.run(ctx, cmd, args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		closeStore()
		os.Exit(1)
	}
}
