// Package probe reports connectivity by dialing the catalog service.
package probe

import (
	"context"
	"net"
	"net/url"
	"time"

	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/zerr"
)

// RTT thresholds used to classify the link, loosely following the
// Network Information API effective types.
const (
	fastRTT = 100 * time.Millisecond
	slowRTT = 400 * time.Millisecond
)

// Effective connection classes.
const (
	Effective4G = "4g"
	Effective3G = "3g"
	Effective2G = "2g"
)

// ConnectionTCP is the only connection type a dial probe can observe.
const ConnectionTCP = "tcp"

// TCPProbe checks reachability with a TCP handshake.
type TCPProbe struct {
	address string
	timeout time.Duration
	dialer  net.Dialer
}

// New creates a probe for cfg.ProbeAddress, falling back to the host of
// remoteURL when no explicit address is configured.
func New(cfg domain.NetworkConfig, remoteURL string) (*TCPProbe, error) {
	address := cfg.ProbeAddress
	if address == "" {
		var err error
		address, err = addressFromURL(remoteURL)
		if err != nil {
			return nil, err
		}
	}
	timeout := cfg.ProbeTimeout
	if timeout <= 0 {
		timeout = domain.DefaultProbeTimeout
	}
	return &TCPProbe{address: address, timeout: timeout}, nil
}

// Address returns the dialed host:port.
func (p *TCPProbe) Address() string {
	return p.address
}

// Check dials the address and classifies the round trip.
func (p *TCPProbe) Check(ctx context.Context) (domain.ConnectionInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return domain.ConnectionInfo{}, zerr.With(zerr.Wrap(err, domain.ErrOffline.Error()), "address", p.address)
	}
	rtt := time.Since(start)
	_ = conn.Close()

	return domain.ConnectionInfo{
		ConnectionType: ConnectionTCP,
		EffectiveType:  classify(rtt),
	}, nil
}

func classify(rtt time.Duration) string {
	switch {
	case rtt < fastRTT:
		return Effective4G
	case rtt < slowRTT:
		return Effective3G
	default:
		return Effective2G
	}
}

func addressFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		if err == nil {
			err = zerr.New("missing host")
		}
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "remote.base_url", raw)
	}
	if u.Port() != "" {
		return u.Host, nil
	}
	port := "80"
	if u.Scheme == "https" {
		port = "443"
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}
