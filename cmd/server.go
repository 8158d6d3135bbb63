package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/tsingjyujing/vireview/controller"
	"github.com/tsingjyujing/vireview/utils"
)

func NewServerCommand() *cobra.Command {
	var configFile string

	serverCommand := &cobra.Command{
		Use:   "server",
		Short: "Starting server",
		Run: func(cmd *cobra.Command, args []string) {
			envelope := readConfig(configFile)
			c := newController(cmd.Context(), envelope)

			echoServer := echo.New()
			echoServer.Use(echoprometheus.NewMiddleware("vireview"))
			// Set routes
			echoServer.GET("/metrics", echoprometheus.NewHandler())
			echoServer.GET("/health", controller.Health)
			echoServer.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: []string{"*"}}))

			// RESTful API routes
			apiGroup := echoServer.Group("/api/v1")
			apiGroup.Use(middleware.RequestLogger())

			// Apply Bearer Token authentication if tokens are configured
			if tokens := envelope.Server.Tokens; len(tokens) > 0 {
				logger.Infof("Bearer token authentication enabled with %d token(s)", len(tokens))
				apiGroup.Use(utils.CreateBearerTokenMiddleware(tokens))
			} else {
				logger.Warn("Bearer token authentication disabled - no tokens configured")
			}
			c.RegisterRoutes(apiGroup)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			httpServer := &http.Server{
				Addr:              envelope.Server.Address,
				Handler:           echoServer,
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				logger.Infof("Starting server on %s", httpServer.Addr)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.WithError(err).Error("Server start error")
					stop()
				}
			}()

			// Wait for interrupt signal to gracefully shutdown the server with a timeout
			<-ctx.Done()
			stop()
			logger.Info("Shutting down server gracefully, press Ctrl+C again to force")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Server forced to shutdown")
			}
			if err := c.Close(); err != nil {
				logger.WithError(err).Error("Failed to close controller")
			}
			logger.Info("Server stopped gracefully")
		},
	}
	serverCommand.Flags().StringVar(&configFile, "config", "", "Path to config file")
	return serverCommand
}
