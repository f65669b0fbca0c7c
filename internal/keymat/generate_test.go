package keymat_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/terrapane/aescrypt-cli/internal/keymat"
	"github.com/terrapane/aescrypt-cli/internal/logging"
)

const keyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_+"

func TestGenerateKeyFile(t *testing.T) {
	log := &logging.Logger{}
	path := filepath.Join(t.TempDir(), "generated.key")

	if err := keymat.GenerateKeyFile(path, keymat.DefaultKeyFileSize, log); err != nil {
		t.Fatalf("GenerateKeyFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading generated key: %v", err)
	}

	if len(data) != keymat.DefaultKeyFileSize {
		t.Fatalf("key file holds %d octets, want %d", len(data), keymat.DefaultKeyFileSize)
	}

	for i, b := range data {
		if !strings.ContainsRune(keyAlphabet, rune(b)) {
			t.Fatalf("octet %d (%#x) outside the key alphabet", i, b)
		}
	}

	// A generated key must load back as key material.
	buf, err := keymat.FromKeyFile(path, log)
	if err != nil {
		t.Fatalf("FromKeyFile on generated key: %v", err)
	}

	defer buf.Destroy()

	if buf.Len() != keymat.DefaultKeyFileSize {
		t.Fatalf("loaded key length = %d, want %d", buf.Len(), keymat.DefaultKeyFileSize)
	}
}

func TestGenerateKeyFileRefusesOverwrite(t *testing.T) {
	log := &logging.Logger{}
	path := filepath.Join(t.TempDir(), "existing.key")

	if err := os.WriteFile(path, []byte("precious"), 0o600); err != nil {
		t.Fatalf("seeding existing file: %v", err)
	}

	if err := keymat.GenerateKeyFile(path, keymat.DefaultKeyFileSize, log); err == nil {
		t.Fatal("GenerateKeyFile overwrote an existing file")
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "precious" {
		t.Fatalf("existing file was modified: %q, %v", data, err)
	}
}

func TestGenerateKeyFileRejectsZeroSize(t *testing.T) {
	log := &logging.Logger{}

	if err := keymat.GenerateKeyFile(filepath.Join(t.TempDir(), "k"), 0, log); err == nil {
		t.Fatal("GenerateKeyFile accepted a zero size")
	}
}
