package grpcserver

import (
	"context"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"workoutLists/internal/auth"
	"workoutLists/repository"
)

// AuthServer implements AuthServiceServer.
type AuthServer struct {
	Users      repository.UserRepositoryI
	Secret     string
	SessionTTL time.Duration
}

// SignIn checks the credentials and returns a session token. Unknown users and
// wrong passwords get the same error.
func (s *AuthServer) SignIn(ctx context.Context, req *SignInRequest) (*SignInResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "username and password are required")
	}
	ok, err := s.Users.Authenticate(ctx, username, req.Password)
	if err != nil {
		return nil, internalError("authenticate", err)
	}
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}
	tok, err := auth.IssueToken(s.Secret, username, s.SessionTTL)
	if err != nil {
		return nil, internalError("issue token", err)
	}
	return &SignInResponse{Username: username, Token: tok}, nil
}
