package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	ethinkrpc "github.com/ethink/ethink/rpc"
	"github.com/ethink/ethink/server/config"

	"cosmossdk.io/log"
)

const shutdownTimeout = 5 * time.Second

// NewJSONRPCHandler registers apis on a new JSON-RPC server and routes HTTP
// requests on "/" and WebSocket upgrades on "/ws" to it.
func NewJSONRPCHandler(cfg config.JSONRPCConfig, apis []rpc.API) (http.Handler, *rpc.Server, error) {
	rpcServer := rpc.NewServer()
	if err := ethinkrpc.RegisterAPIs(rpcServer, apis); err != nil {
		return nil, nil, err
	}

	r := mux.NewRouter()
	r.HandleFunc("/", rpcServer.ServeHTTP).Methods("POST")
	r.Handle("/ws", rpcServer.WebsocketHandler([]string{"*"}))

	handlerWithCors := cors.Default()
	if cfg.EnableUnsafeCORS {
		handlerWithCors = cors.AllowAll()
	}

	return handlerWithCors.Handler(r), rpcServer, nil
}

// StartJSONRPC starts the JSON-RPC server in g. The server is shut down
// gracefully once ctx is done.
func StartJSONRPC(
	ctx context.Context,
	g *errgroup.Group,
	cfg config.JSONRPCConfig,
	apis []rpc.API,
	logger log.Logger,
) (*http.Server, error) {
	logger = logger.With("module", "geth")

	handler, rpcServer, err := NewJSONRPCHandler(cfg, apis)
	if err != nil {
		logger.Error("failed to register JSON-RPC services", "error", err.Error())
		return nil, err
	}

	httpSrv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTPTimeout,
		ReadTimeout:       cfg.HTTPTimeout,
		WriteTimeout:      cfg.HTTPTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}

	ln, err := Listen(httpSrv.Addr, cfg.MaxOpenConnections)
	if err != nil {
		return nil, err
	}

	g.Go(func() error {
		logger.Info("Starting JSON-RPC server", "address", cfg.Address)
		errCh := make(chan error, 1)
		go func() {
			errCh <- httpSrv.Serve(ln)
		}()

		// Start a blocking select to wait for an indication to stop the server or that
		// the server failed to start properly.
		select {
		case <-ctx.Done():
			// The calling process canceled or closed the provided context, so we must
			// gracefully stop the JSON-RPC server.
			logger.Info("stopping JSON-RPC server...", "address", cfg.Address)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				logger.Error("failed to shutdown JSON-RPC server", "error", err.Error())
			}
			rpcServer.Stop()
			return nil

		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			logger.Error("failed to start JSON-RPC server", "error", err.Error())
			return err
		}
	})

	return httpSrv, nil
}

// Listen starts a net.Listener on the tcp network on the given address.
// If there is a specified MaxOpenConnections in the config, it will also set the limitListener.
func Listen(addr string, maxOpenConnections int) (net.Listener, error) {
	if addr == "" {
		addr = ":http"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	if maxOpenConnections > 0 {
		ln = netutil.LimitListener(ln, maxOpenConnections)
	}
	return ln, err
}
