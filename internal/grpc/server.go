package grpcserver

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"workoutLists/internal/auth"
	"workoutLists/internal/config"
	"workoutLists/repository"
)

// NewServer builds a gRPC server with the auth interceptor and both services registered.
// Messages are JSON encoded regardless of the content-subtype the client sends.
func NewServer(cfg *config.Config, users repository.UserRepositoryI, lists repository.ListScope) *grpc.Server {
	if cfg == nil {
		panic("config is required")
	}
	srv := grpc.NewServer(
		grpc.ForceServerCodec(jsonCodec{}),
		grpc.UnaryInterceptor(auth.NewUnaryAuthInterceptor(cfg.Auth.JWTSecret, SignInMethod)),
	)
	RegisterAuthServiceServer(srv, &AuthServer{Users: users, Secret: cfg.Auth.JWTSecret, SessionTTL: cfg.Auth.SessionTTL})
	RegisterListServiceServer(srv, &ListServer{Lists: lists})
	return srv
}

// StartGRPC starts the gRPC server on the configured address and returns a shutdown function.
// Plaintext only; terminate TLS in front of it.
func StartGRPC(cfg *config.Config, users repository.UserRepositoryI, lists repository.ListScope) (func(context.Context) error, error) {
	srv := NewServer(cfg, users, lists)

	addr := cfg.GRPC.Address
	if addr == "" {
		addr = ":50051"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	go func() { _ = srv.Serve(lis) }()

	return func(ctx context.Context) error {
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
