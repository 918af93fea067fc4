package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/longport-trade/src/longportmock"
	"github.com/jiaming2012/longport-trade/src/utils"
)

func getenvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/mock_server/main.go --addr :8080",
	Short: "Run a local sandbox of the trade endpoints",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		envDir, err := cmd.Flags().GetString("env-dir")
		if err != nil {
			log.Fatalf("error getting env-dir: %v", err)
		}

		addr, err := cmd.Flags().GetString("addr")
		if err != nil {
			log.Fatalf("error getting addr: %v", err)
		}

		if err := utils.InitEnvironmentVariables(envDir, goEnv); err != nil {
			log.Fatalf("error loading environment variables: %v", err)
		}

		mock := longportmock.NewServer(
			getenvOr("LONGPORT_APP_KEY", "app-key"),
			getenvOr("LONGPORT_APP_SECRET", "app-secret"),
			getenvOr("LONGPORT_ACCESS_TOKEN", "access-token"),
		)

		srv := &http.Server{
			Handler: mock,
			Addr:    addr,
		}

		go func() {
			log.Infof("listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("http: failed to listen and serve: %v", err)
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		<-stop
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("error shutting down server: %v", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	},
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	runCmd.PersistentFlags().String("env-dir", ".", "Directory containing the .env files.")
	runCmd.PersistentFlags().String("addr", ":8080", "Address to listen on.")

	if err := runCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
