package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener the HTTP server accepts connections on,
// plain TCP or TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// ListenerFunc adapts a function to SecurityLayer.
type ListenerFunc func(protocol, addr string) (net.Listener, error)

// Listen calls f.
func (f ListenerFunc) Listen(protocol, addr string) (net.Listener, error) {
	return f(protocol, addr)
}

// Server is the HTTP API process: it serves until Stop drains in-flight
// requests or the context passed to Stop expires.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
