package auth

import (
	"context"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"workoutLists/internal/testutil"
)

func TestRequirePrincipal(t *testing.T) {
	if _, err := RequirePrincipal(context.Background()); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
	ctx := WithPrincipal(context.Background(), &Principal{Name: "dana"})
	p, err := RequirePrincipal(ctx)
	if err != nil || p.Name != "dana" {
		t.Fatalf("RequirePrincipal: %+v %v", p, err)
	}
	if _, err := RequirePrincipal(WithPrincipal(context.Background(), &Principal{})); err == nil {
		t.Fatalf("expected rejection for empty principal name")
	}
}

func TestUnaryAuthInterceptor(t *testing.T) {
	secret := "s3cr3t"
	interceptor := NewUnaryAuthInterceptor(secret, "/svc/SignIn")

	// 1) Allowlisted path: no header -> handler executes, no principal
	hCalled := false
	_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/svc/SignIn"}, func(ctx context.Context, req any) (any, error) {
		hCalled = true
		if p, ok := FromContext(ctx); ok && p != nil {
			t.Fatalf("expected no principal on allowlisted path")
		}
		return 123, nil
	})
	if err != nil || !hCalled {
		t.Fatalf("allowlisted handler err=%v called=%v", err, hCalled)
	}

	// 2) Authenticated path: with token -> principal injected
	tok := testutil.GenerateJWTHS256(t, secret, "bob")
	ctx := testutil.CtxWithBearer(context.Background(), tok)
	_, err = interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Op"}, func(ctx context.Context, req any) (any, error) {
		p, ok := FromContext(ctx)
		if !ok || p.Name != "bob" {
			t.Fatalf("principal not injected: %+v ok=%v", p, ok)
		}
		return nil, nil
	})
	if err != nil {
		t.Fatalf("interceptor auth path: %v", err)
	}

	// 3) Missing token on a protected path
	_, err = interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Op"}, func(ctx context.Context, req any) (any, error) {
		t.Fatalf("handler must not run without a token")
		return nil, nil
	})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}
