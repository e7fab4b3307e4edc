package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"orderflow/internal/entities"
	"orderflow/internal/pkg/identity"
	"orderflow/pkg/logger"
	"orderflow/pkg/logger/zap_adapter"
)

// loadgen - инструмент для локальной нагрузки: выпускает токены и держит пачку
// websocket подписчиков. HTTP нагрузка на REST делается через hey с выпущенным токеном.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		stdlog.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "loadgen",
		Short:         "Local load tooling for orderflow",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("secret", os.Getenv("JWT_SECRET"), "HMAC secret used to sign tokens")

	root.AddCommand(newTokenCmd(), newSubscribersCmd())
	return root
}

func newTokenCmd() *cobra.Command {
	var (
		userID string
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the given user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			verifier, err := newVerifier(cmd)
			if err != nil {
				return err
			}

			token, err := verifier.Issue(entities.Actor{ID: userID, Role: entities.Role(role)}, ttl)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id (required)")
	cmd.Flags().StringVar(&role, "role", string(entities.RoleCustomer), "customer, restaurant, driver or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newSubscribersCmd() *cobra.Command {
	var (
		addr  string
		count int
		role  string
	)

	cmd := &cobra.Command{
		Use:   "subscribers",
		Short: "Hold N websocket subscribers open and count received notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			verifier, err := newVerifier(cmd)
			if err != nil {
				return err
			}

			zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
			if err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			defer func() { _ = zapLogger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return runSubscribers(ctx, zapLogger, verifier, addr, entities.Role(role), count)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "ws://localhost:8080/ws", "websocket endpoint")
	cmd.Flags().IntVar(&count, "count", 100, "number of subscribers")
	cmd.Flags().StringVar(&role, "role", string(entities.RoleDriver), "role of every subscriber")

	return cmd
}

func newVerifier(cmd *cobra.Command) (*identity.Verifier, error) {
	secret, err := cmd.Flags().GetString("secret")
	if err != nil {
		return nil, err
	}
	return identity.New(secret)
}

func runSubscribers(
	ctx context.Context,
	log logger.Logger,
	verifier *identity.Verifier,
	addr string,
	role entities.Role,
	count int,
) error {
	endpoint, err := url.Parse(addr)
	if err != nil {
		return fmt.Errorf("parse addr: %w", err)
	}

	var (
		received  atomic.Int64
		connected atomic.Int64
		wg        sync.WaitGroup
	)

	for i := 0; i < count; i++ {
		token, err := verifier.Issue(entities.Actor{ID: fmt.Sprintf("loadgen-%s-%d", role, i), Role: role}, 24*time.Hour)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}

		header := http.Header{}
		header.Set("Authorization", "Bearer "+token)

		conn, resp, err := websocket.DefaultDialer.DialContext(ctx, endpoint.String(), header)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if err != nil {
			log.Error("dial failed", logger.NewField("subscriber", i), logger.NewField("error", err))
			continue
		}
		connected.Add(1)

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer connected.Add(-1)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
				received.Add(1)
			}
		}()

		go func() {
			<-ctx.Done()
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			_ = conn.Close()
		}()
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			log.Info("subscribers stopped", logger.NewField("received", received.Load()))
			return nil
		case <-ticker.C:
			log.Info("subscribers",
				logger.NewField("connected", connected.Load()),
				logger.NewField("received", received.Load()),
			)
		}
	}
}
