package runner

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestTCPRunner_OpenPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	result, err := NewTCPRunner().Execute(context.Background(), ln.Addr().String(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["port_open"] != true {
		t.Errorf("expected port_open, got %v", result["port_open"])
	}
	if result["address"] != ln.Addr().String() {
		t.Errorf("unexpected address %v", result["address"])
	}
}

func TestTCPRunner_PortOption(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	_, port, _ := net.SplitHostPort(ln.Addr().String())
	result, err := NewTCPRunner().Execute(context.Background(), "127.0.0.1", map[string]interface{}{
		"port":    port,
		"timeout": time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["address"] != ln.Addr().String() {
		t.Errorf("expected the port option to be used, got %v", result["address"])
	}
}

func TestTCPRunner_ClosedPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	_, err = NewTCPRunner().Execute(context.Background(), addr, map[string]interface{}{"timeout": time.Second})
	if err == nil {
		t.Fatal("expected an error for a closed port")
	}
}

func TestGetTCPPort(t *testing.T) {
	if got := getTCPPort(map[string]interface{}{"port": 8443}, "example.com"); got != 8443 {
		t.Errorf("expected option port, got %d", got)
	}
	if got := getTCPPort(nil, "example.com:8080"); got != 8080 {
		t.Errorf("expected port from target, got %d", got)
	}
	if got := getTCPPort(nil, "example.com"); got != 0 {
		t.Errorf("expected 0 without a port, got %d", got)
	}
}
