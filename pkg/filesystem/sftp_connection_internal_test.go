package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSFTPConnection_CloseWithNilClients(t *testing.T) {
	t.Parallel()

	conn := &SFTPConnection{}

	if err := conn.Close(); err != nil {
		t.Errorf("Close() on an empty connection should succeed, got %v", err)
	}

	if conn.Client() != nil {
		t.Error("Client() should be nil when no session was opened")
	}
}

func TestHostKeyVerifier_NoKnownHosts(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	callback, err := hostKeyVerifier()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if callback == nil {
		t.Fatal("expected a callback when known_hosts is missing")
	}
}

func TestHostKeyVerifier_MalformedKnownHosts(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	sshDir := filepath.Join(home, ".ssh")
	if err := os.MkdirAll(sshDir, 0o700); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(sshDir, "known_hosts"), []byte("example.com ssh-ed25519 %%%not-base64%%%\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := hostKeyVerifier(); err == nil {
		t.Error("expected an error for a malformed known_hosts file")
	}
}

func TestTryDefaultSSHKeys_SkipsUnparseableKeys(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	sshDir := filepath.Join(home, ".ssh")
	if err := os.MkdirAll(sshDir, 0o700); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(sshDir, "id_rsa"), []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}

	methods := tryDefaultSSHKeys()
	if len(methods) != 0 {
		t.Errorf("expected no auth methods from an unparseable key, got %d", len(methods))
	}
}

func TestTrySSHAgent_NoSocket(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")

	method, conn := trySSHAgent()
	if method != nil || conn != nil {
		t.Error("expected no agent auth without SSH_AUTH_SOCK")
	}
}

func TestConnect_NoAuthMethods(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SSH_AUTH_SOCK", "")

	_, err := Connect("localhost", DefaultSFTPPort, "nobody")
	if err != ErrNoAuthMethods { //nolint:errorlint // Sentinel is returned unwrapped
		t.Errorf("expected ErrNoAuthMethods, got %v", err)
	}
}
