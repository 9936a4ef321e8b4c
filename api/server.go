// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json"
	"github.com/luxfi/log"
	"github.com/rs/cors"

	"github.com/luxfi/chainvault/vault"
)

const (
	// Endpoint is the path the vault RPC service is mounted on.
	Endpoint = "/ext/vault"

	readHeaderTimeout = 30 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Server wraps the JSON-RPC service in an HTTP server.
type Server struct {
	log  log.Logger
	http *http.Server
}

func NewServer(v *vault.Vault, listenAddr string, logger log.Logger) (*Server, error) {
	rpcServer := rpc.NewServer()
	rpcServer.RegisterCodec(json.NewCodec(), "application/json")
	rpcServer.RegisterCodec(json.NewCodec(), "application/json;charset=UTF-8")
	if err := RegisterService(rpcServer, v); err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Handle(Endpoint, rpcServer)

	return &Server{
		log: logger,
		http: &http.Server{
			Addr:              listenAddr,
			Handler:           cors.Default().Handler(router),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}, nil
}

// Serve blocks until the server stops. A clean shutdown reports nil.
func (s *Server) Serve() error {
	s.log.Info("serving vault API",
		log.String("addr", s.http.Addr),
		log.String("endpoint", Endpoint),
	)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
