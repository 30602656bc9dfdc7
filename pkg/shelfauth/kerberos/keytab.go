package kerberos

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/marmos91/shelf/internal/logger"
)

// keytabPollInterval is the interval at which the keytab file is polled for changes.
const keytabPollInterval = 60 * time.Second

// KeytabManager watches a keytab file for changes and triggers hot-reload.
//
// It polls modification time rather than using fsnotify because keytab
// files are often replaced atomically (rename) by key management tools
// like kadmin or k5srvutil, which polling handles more reliably across
// platforms than inode-based watches.
//
// Thread Safety: All methods are safe for concurrent use.
type KeytabManager struct {
	path    string
	client  *Client
	stopCh  chan struct{}
	mu      sync.Mutex
	lastMod time.Time
}

// NewKeytabManager creates a new keytab file manager (not yet started).
func NewKeytabManager(path string, client *Client) *KeytabManager {
	return &KeytabManager{
		path:   path,
		client: client,
		stopCh: make(chan struct{}),
	}
}

// Start begins polling the keytab file for changes.
func (km *KeytabManager) Start() error {
	km.mu.Lock()
	defer km.mu.Unlock()

	info, err := os.Stat(km.path)
	if err != nil {
		return fmt.Errorf("keytab file not accessible: %w", err)
	}

	km.lastMod = info.ModTime()

	go km.pollLoop()

	logger.Info("Keytab hot-reload started",
		"path", km.path,
		"poll_interval", keytabPollInterval.String(),
	)

	return nil
}

// Stop stops the polling goroutine. Safe to call multiple times or on a
// manager that was never started.
func (km *KeytabManager) Stop() {
	select {
	case <-km.stopCh:
	default:
		close(km.stopCh)
	}
}

func (km *KeytabManager) pollLoop() {
	ticker := time.NewTicker(keytabPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			km.checkAndReload()
		case <-km.stopCh:
			return
		}
	}
}

func (km *KeytabManager) checkAndReload() {
	km.mu.Lock()
	defer km.mu.Unlock()

	info, err := os.Stat(km.path)
	if err != nil {
		logger.Error("Keytab file stat failed", "path", km.path, "error", err)
		return
	}

	modTime := info.ModTime()
	if modTime.Equal(km.lastMod) {
		return
	}

	if err := km.client.ReloadKeytab(); err != nil {
		logger.Error("Keytab reload failed", "path", km.path, "error", err)
		return
	}

	km.lastMod = modTime
	logger.Info("Keytab reloaded successfully", "path", km.path)
}

// resolveKeytabPath resolves the keytab path with environment variable override.
//
// Resolution order (highest priority first):
//  1. SHELF_KERBEROS_KEYTAB env var
//  2. configPath from configuration
func resolveKeytabPath(configPath string) string {
	if envPath := os.Getenv("SHELF_KERBEROS_KEYTAB"); envPath != "" {
		return envPath
	}
	return configPath
}

// resolveServicePrincipal resolves the service principal with environment variable override.
//
// Resolution order (highest priority first):
//  1. SHELF_KERBEROS_SERVICE_PRINCIPAL env var
//  2. configPrincipal from configuration
func resolveServicePrincipal(configPrincipal string) string {
	if envSPN := os.Getenv("SHELF_KERBEROS_SERVICE_PRINCIPAL"); envSPN != "" {
		return envSPN
	}
	return configPrincipal
}

// resolveKrb5ConfPath resolves the krb5.conf path with environment variable override.
//
// Resolution order (highest priority first):
//  1. SHELF_KERBEROS_KRB5CONF env var
//  2. configPath from configuration
//  3. Default: /etc/krb5.conf
func resolveKrb5ConfPath(configPath string) string {
	if envPath := os.Getenv("SHELF_KERBEROS_KRB5CONF"); envPath != "" {
		return envPath
	}
	if configPath != "" {
		return configPath
	}
	return "/etc/krb5.conf"
}
