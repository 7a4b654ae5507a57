package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"sonervous/app/config"
	"sonervous/app/controllers"
	"sonervous/app/repositories"
	"sonervous/app/routes"
	"sonervous/app/services"
)

const cliVersion = "1.0.0"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = strings.ToLower(os.Args[1])
	}

	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("sonervous version %s\n", cliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: sonervous [command]
Commands:
  help       Display this help message.
  version    Show version information.
  serve      Run the blog API server (default).
`
	fmt.Println(helpText)
}

// serve wires the store, services and router together and runs the HTTP
// server until interrupted.
func serve() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if strings.TrimSpace(cfg.Auth.Secret) == "" {
		logger.Fatalf("auth secret is required")
	}

	db, err := badger.Open(badger.DefaultOptions(cfg.Database.Path).WithLogger(nil))
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := repositories.NewBadgerUserRepository(db)
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)

	authService := services.NewAuthService(userRepo, cfg.Auth.Secret)
	postService := services.NewPostService(postRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, userRepo)
	mailer := services.NewMailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}

	router := routes.Setup(routes.Deps{
		Log:         logger,
		AuthService: authService,
		PostRepo:    postRepo,
		Auth:        controllers.NewAuthController(authService, mailer, oauthCfg, cfg.Frontend.URL),
		Posts:       controllers.NewPostController(postService),
		Comments:    controllers.NewCommentController(commentService),
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("server listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
	logger.Info("server stopped")
}
