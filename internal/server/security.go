package server

import (
	"crypto/tls"
	"fmt"
	"net"

	"github.com/dtroode/blackjack-server/internal/config"
	"github.com/dtroode/blackjack-server/internal/model"
)

// NewSecurityLayer picks the listener the HTTP server is served on.
// HTTPS requires both a certificate and a private key file.
func NewSecurityLayer(cfg config.HTTP) (model.SecurityLayer, error) {
	if !cfg.EnableHTTPS {
		return NewPlainListener(), nil
	}
	if cfg.CertFileName == "" || cfg.PrivateKeyFileName == "" {
		return nil, fmt.Errorf("https enabled without certificate or private key")
	}
	return NewTLSListener(cfg.CertFileName, cfg.PrivateKeyFileName), nil
}

// TLSListener opens TLS listeners from a certificate and key on disk.
// The pair is loaded on every Listen so a restart picks up renewed files.
type TLSListener struct {
	certFileName       string
	privateKeyFileName string
}

// NewTLSListener creates a TLSListener for the given certificate and key files.
func NewTLSListener(certFileName, privateKeyFileName string) *TLSListener {
	return &TLSListener{
		certFileName:       certFileName,
		privateKeyFileName: privateKeyFileName,
	}
}

// Listen loads the key pair and listens on addr with TLS 1.2 or newer.
func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(l.certFileName, l.privateKeyFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		NextProtos:   []string{"h2", "http/1.1"},
	}
	ln, err := tls.Listen(protocol, addr, tlsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}

// PlainListener opens unencrypted listeners, for local development or
// deployments that terminate TLS at a proxy.
type PlainListener struct{}

// NewPlainListener creates a PlainListener.
func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

// Listen listens on addr without TLS.
func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	ln, err := net.Listen(protocol, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}
