package kerberos

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jcmturner/gokrb5/v8/keytab"
)

// ============================================================================
// resolveKeytabPath tests
// ============================================================================

func TestResolveKeytabPath_EnvVarOverride(t *testing.T) {
	t.Setenv("SHELF_KERBEROS_KEYTAB", "/env/override/keytab")

	result := resolveKeytabPath("/config/path/keytab")
	if result != "/env/override/keytab" {
		t.Fatalf("expected /env/override/keytab, got %s", result)
	}
}

func TestResolveKeytabPath_FallbackToConfig(t *testing.T) {
	t.Setenv("SHELF_KERBEROS_KEYTAB", "")

	result := resolveKeytabPath("/config/path/keytab")
	if result != "/config/path/keytab" {
		t.Fatalf("expected /config/path/keytab, got %s", result)
	}
}

func TestResolveKeytabPath_EmptyBoth(t *testing.T) {
	t.Setenv("SHELF_KERBEROS_KEYTAB", "")

	result := resolveKeytabPath("")
	if result != "" {
		t.Fatalf("expected empty string, got %s", result)
	}
}

// ============================================================================
// resolveServicePrincipal tests
// ============================================================================

func TestResolveServicePrincipal_EnvVarOverride(t *testing.T) {
	t.Setenv("SHELF_KERBEROS_SERVICE_PRINCIPAL", "shelf/env.example.com@EXAMPLE.COM")

	result := resolveServicePrincipal("shelf/config.example.com@EXAMPLE.COM")
	if result != "shelf/env.example.com@EXAMPLE.COM" {
		t.Fatalf("expected shelf/env.example.com@EXAMPLE.COM, got %s", result)
	}
}

func TestResolveServicePrincipal_FallbackToConfig(t *testing.T) {
	t.Setenv("SHELF_KERBEROS_SERVICE_PRINCIPAL", "")

	result := resolveServicePrincipal("shelf/config.example.com@EXAMPLE.COM")
	if result != "shelf/config.example.com@EXAMPLE.COM" {
		t.Fatalf("expected shelf/config.example.com@EXAMPLE.COM, got %s", result)
	}
}

// ============================================================================
// resolveKrb5ConfPath tests
// ============================================================================

func TestResolveKrb5ConfPath_EnvVarOverride(t *testing.T) {
	t.Setenv("SHELF_KERBEROS_KRB5CONF", "/env/override/krb5.conf")

	result := resolveKrb5ConfPath("/config/path/krb5.conf")
	if result != "/env/override/krb5.conf" {
		t.Fatalf("expected /env/override/krb5.conf, got %s", result)
	}
}

func TestResolveKrb5ConfPath_DefaultFallback(t *testing.T) {
	t.Setenv("SHELF_KERBEROS_KRB5CONF", "")

	result := resolveKrb5ConfPath("")
	if result != "/etc/krb5.conf" {
		t.Fatalf("expected /etc/krb5.conf, got %s", result)
	}
}

// ============================================================================
// loadKeytab tests
// ============================================================================

func createTestKeytab(t *testing.T, dir string) string {
	t.Helper()
	return createTestKeytabWithKVNO(t, dir, 1)
}

func createTestKeytabWithKVNO(t *testing.T, dir string, kvno uint8) string {
	t.Helper()

	kt := keytab.New()
	err := kt.AddEntry("client@EXAMPLE.COM", "EXAMPLE.COM", "test-password", time.Now(), kvno, 17)
	if err != nil {
		t.Fatalf("add keytab entry: %v", err)
	}

	data, err := kt.Marshal()
	if err != nil {
		t.Fatalf("marshal test keytab: %v", err)
	}

	path := filepath.Join(dir, "test.keytab")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write test keytab: %v", err)
	}

	return path
}

func TestLoadKeytab_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := createTestKeytab(t, dir)

	kt, err := loadKeytab(path)
	if err != nil {
		t.Fatalf("loadKeytab failed: %v", err)
	}
	if kt == nil {
		t.Fatal("expected non-nil keytab")
	}
}

func TestLoadKeytab_NonexistentFile(t *testing.T) {
	_, err := loadKeytab("/nonexistent/path/keytab")
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
}

func TestLoadKeytab_InvalidData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.keytab")
	if err := os.WriteFile(path, []byte("not a keytab"), 0600); err != nil {
		t.Fatalf("write bad keytab: %v", err)
	}

	_, err := loadKeytab(path)
	if err == nil {
		t.Fatal("expected error for invalid keytab data")
	}
}

// ============================================================================
// KeytabManager tests
// ============================================================================

func TestKeytabManager_StartStop(t *testing.T) {
	dir := t.TempDir()
	path := createTestKeytab(t, dir)

	c := &Client{keytabPath: path}
	kt, _ := loadKeytab(path)
	c.keytab = kt

	km := NewKeytabManager(path, c)
	if err := km.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	km.Stop()
	km.Stop() // double stop must be safe
}

func TestKeytabManager_StartFailsForMissingFile(t *testing.T) {
	c := &Client{keytabPath: "/nonexistent"}

	km := NewKeytabManager("/nonexistent", c)
	err := km.Start()
	if err == nil {
		t.Fatal("expected error for nonexistent keytab file")
	}
}
