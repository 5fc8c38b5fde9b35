package redis

import (
	"context"
	"testing"
	"time"
)

func TestConnect_Unreachable(t *testing.T) {
	if _, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 300 * time.Millisecond}); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}

func TestSessionKey(t *testing.T) {
	if got := sessionKey("abc"); got != "session:abc" {
		t.Errorf("expected session:abc, got %q", got)
	}
}
