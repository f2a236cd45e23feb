// Package server exposes the webhook entry point. One update per POST;
// every delivery is acknowledged with 200 regardless of handler outcome, so
// the platform never retries and never storms us with redelivery.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"inspector-chingum/internal/bot"
	"inspector-chingum/internal/logger"
)

const livenessText = "Inspector Chingum Active!"

type Server struct {
	engine     *gin.Engine
	dispatcher *bot.Dispatcher
	addr       string
}

func New(dispatcher *bot.Dispatcher, port int, webhookPath string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:     engine,
		dispatcher: dispatcher,
		addr:       fmt.Sprintf(":%d", port),
	}

	engine.POST(webhookPath, s.handleWebhook)
	// Anything that is not a webhook POST answers liveness.
	engine.NoRoute(s.handleLiveness)

	return s
}

func (s *Server) handleWebhook(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		logger.Warn().Err(err).Msg("undecodable update")
		c.String(http.StatusOK, "OK")
		return
	}

	s.dispatcher.HandleUpdate(c.Request.Context(), update)
	c.String(http.StatusOK, "OK")
}

func (s *Server) handleLiveness(c *gin.Context) {
	c.String(http.StatusOK, livenessText)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info().Str("addr", s.addr).Msg("webhook server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
