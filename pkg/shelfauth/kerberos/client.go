package kerberos

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"sync"
	"time"

	krb5client "github.com/jcmturner/gokrb5/v8/client"
	krb5config "github.com/jcmturner/gokrb5/v8/config"
	"github.com/jcmturner/gokrb5/v8/keytab"
	"github.com/jcmturner/gokrb5/v8/spnego"

	"github.com/marmos91/shelf/internal/logger"
	"github.com/marmos91/shelf/pkg/shelfauth"
)

// Client is a shelfauth.Credentials implementation that authenticates
// against a cluster's service principal using a Kerberos keytab.
//
// Thread Safety: all methods are safe for concurrent use. The keytab can be
// hot-reloaded via ReloadKeytab without disrupting an in-flight login.
type Client struct {
	krb5Conf         *krb5config.Config
	servicePrincipal string
	username         string
	realm            string
	maxClockSkew     time.Duration
	keytabPath       string
	keytabManager    *KeytabManager

	mu     sync.RWMutex
	keytab *keytab.Keytab
	krb    *krb5client.Client
}

// New creates a Client from configuration. It loads the keytab and
// krb5.conf, logs in against the realm, and starts a KeytabManager that
// polls for keytab rotation every 60 seconds.
//
// Environment variables take precedence over cfg:
//   - SHELF_KERBEROS_KEYTAB overrides KeytabPath
//   - SHELF_KERBEROS_SERVICE_PRINCIPAL overrides ServicePrincipal
//   - SHELF_KERBEROS_KRB5CONF overrides Krb5ConfPath
func New(cfg Config) (*Client, error) {
	keytabPath := resolveKeytabPath(cfg.KeytabPath)
	if keytabPath == "" {
		return nil, fmt.Errorf("kerberos keytab path not configured (set KeytabPath or SHELF_KERBEROS_KEYTAB)")
	}

	servicePrincipal := resolveServicePrincipal(cfg.ServicePrincipal)
	if servicePrincipal == "" {
		return nil, fmt.Errorf("kerberos service principal not configured (set ServicePrincipal or SHELF_KERBEROS_SERVICE_PRINCIPAL)")
	}

	krb5ConfPath := resolveKrb5ConfPath(cfg.Krb5ConfPath)

	kt, err := loadKeytab(keytabPath)
	if err != nil {
		return nil, fmt.Errorf("load keytab %s: %w", keytabPath, err)
	}

	krbCfg, err := loadKrb5Conf(krb5ConfPath)
	if err != nil {
		return nil, fmt.Errorf("load krb5.conf %s: %w", krb5ConfPath, err)
	}

	c := &Client{
		krb5Conf:         krbCfg,
		servicePrincipal: servicePrincipal,
		username:         cfg.Username,
		realm:            cfg.Realm,
		maxClockSkew:     cfg.MaxClockSkew,
		keytabPath:       keytabPath,
		keytab:           kt,
	}

	if err := c.login(); err != nil {
		return nil, fmt.Errorf("kerberos login: %w", err)
	}

	km := NewKeytabManager(keytabPath, c)
	if err := km.Start(); err != nil {
		logger.Warn("Keytab hot-reload failed to start, continuing without it",
			"path", keytabPath, "error", err)
	}
	c.keytabManager = km

	return c, nil
}

func (c *Client) login() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	krb := krb5client.NewWithKeytab(c.username, c.realm, c.keytab, c.krb5Conf,
		krb5client.DisablePAFXFAST(true))

	if err := krb.Login(); err != nil {
		return fmt.Errorf("login as %s@%s: %w", c.username, c.realm, err)
	}

	c.krb = krb
	return nil
}

// Scheme implements shelfauth.Credentials.
func (c *Client) Scheme() string { return "Negotiate" }

// Token implements shelfauth.Credentials by negotiating a SPNEGO token for
// the configured service principal and returning it base64-encoded, ready
// to attach as an Authorization header value.
func (c *Client) Token(_ context.Context) (string, error) {
	c.mu.RLock()
	krb := c.krb
	c.mu.RUnlock()

	if krb == nil {
		return "", fmt.Errorf("kerberos client not logged in")
	}

	spnegoClient := spnego.SPNEGOClient(krb, c.servicePrincipal)
	if err := spnegoClient.AcquireCred(); err != nil {
		return "", fmt.Errorf("acquire kerberos credential: %w", err)
	}

	token, err := spnegoClient.InitSecContext()
	if err != nil {
		return "", fmt.Errorf("init security context for %s: %w", c.servicePrincipal, err)
	}

	encoded, err := token.Marshal()
	if err != nil {
		return "", fmt.Errorf("marshal spnego token: %w", err)
	}

	return base64.StdEncoding.EncodeToString(encoded), nil
}

// ReloadKeytab re-reads the keytab file and logs in again with it. Active
// tokens already handed out remain valid until they expire; the next call
// to Token uses the new credential.
func (c *Client) ReloadKeytab() error {
	kt, err := loadKeytab(c.keytabPath)
	if err != nil {
		return fmt.Errorf("reload keytab %s: %w", c.keytabPath, err)
	}

	c.mu.Lock()
	c.keytab = kt
	c.mu.Unlock()

	return c.login()
}

// Close stops the KeytabManager's polling goroutine and logs out the
// Kerberos session. Safe to call multiple times.
func (c *Client) Close() error {
	if c.keytabManager != nil {
		c.keytabManager.Stop()
	}

	c.mu.RLock()
	krb := c.krb
	c.mu.RUnlock()

	if krb != nil {
		krb.Destroy()
	}

	return nil
}

// Compile-time check that Client implements shelfauth.Credentials.
var _ shelfauth.Credentials = (*Client)(nil)

func loadKeytab(path string) (*keytab.Keytab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keytab file: %w", err)
	}

	kt := keytab.New()
	if err := kt.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("parse keytab: %w", err)
	}

	return kt, nil
}

func loadKrb5Conf(path string) (*krb5config.Config, error) {
	cfg, err := krb5config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parse krb5.conf: %w", err)
	}

	return cfg, nil
}
