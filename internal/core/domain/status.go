package domain

// StatusReport is a point-in-time view of the offline subsystem.
type StatusReport struct {
	Network     NetworkStatus `json:"network"`
	NetworkInfo NetworkStats  `json:"networkStats"`
	Cache       CacheStats    `json:"cache"`
	Retry       RetryStats    `json:"retry"`
	UsingCache  bool          `json:"usingCache"`
	SyncPending bool          `json:"syncPending"`
	Syncing     bool          `json:"syncing"`
}
