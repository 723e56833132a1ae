package domain

import "time"

// ConnectionInfo is best-effort metadata reported by the connectivity signal.
type ConnectionInfo struct {
	ConnectionType string `json:"connectionType,omitempty"`
	EffectiveType  string `json:"effectiveType,omitempty"`
}

// NetworkStatus is the observed connectivity state.
type NetworkStatus struct {
	IsOnline       bool       `json:"isOnline"`
	IsConnecting   bool       `json:"isConnecting"`
	LastOnline     *time.Time `json:"lastOnline"`
	LastOffline    *time.Time `json:"lastOffline"`
	ConnectionType string     `json:"connectionType,omitempty"`
	EffectiveType  string     `json:"effectiveType,omitempty"`
}

// NetworkStats accumulates offline periods since process start.
type NetworkStats struct {
	TotalOfflineTime time.Duration `json:"totalOfflineTime"`
	OfflineEvents    int           `json:"offlineEvents"`
}
