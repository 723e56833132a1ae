package probe

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cellar/internal/core/domain"
)

func TestNew_Address(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     domain.NetworkConfig
		remote  string
		want    string
		wantErr bool
	}{
		{name: "explicit", cfg: domain.NetworkConfig{ProbeAddress: "10.0.0.1:9"}, remote: "http://ignored", want: "10.0.0.1:9"},
		{name: "url with port", remote: "http://catalog.local:8080/api", want: "catalog.local:8080"},
		{name: "http default port", remote: "http://catalog.local", want: "catalog.local:80"},
		{name: "https default port", remote: "https://catalog.local", want: "catalog.local:443"},
		{name: "no host", remote: "catalog", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := New(tt.cfg, tt.remote)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorContains(t, err, domain.ErrConfigInvalid.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Address())
		})
	}
}

func TestCheck_Reachable(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	p, err := New(domain.NetworkConfig{ProbeAddress: ln.Addr().String(), ProbeTimeout: time.Second}, "")
	require.NoError(t, err)

	info, err := p.Check(t.Context())
	require.NoError(t, err)
	assert.Equal(t, ConnectionTCP, info.ConnectionType)
	assert.NotEmpty(t, info.EffectiveType)
}

func TestCheck_Unreachable(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	p, err := New(domain.NetworkConfig{ProbeAddress: addr, ProbeTimeout: time.Second}, "")
	require.NoError(t, err)

	_, err = p.Check(t.Context())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrOffline.Error())
}

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Effective4G, classify(20*time.Millisecond))
	assert.Equal(t, Effective3G, classify(200*time.Millisecond))
	assert.Equal(t, Effective2G, classify(time.Second))
}
