package mongo

import (
	"context"
	"testing"
	"time"
)

func TestConnect_Unreachable(t *testing.T) {
	start := time.Now()
	_, _, err := Connect(context.Background(), Config{
		URI:      "mongodb://127.0.0.1:1/?connect=direct",
		Database: "bullyguard_test",
		Timeout:  300 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Connect should honour the timeout, took %v", elapsed)
	}
}
