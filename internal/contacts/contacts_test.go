package contacts

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	book := NewBook(map[string]string{
		"Mom":       "+880 1711-000001",
		"Alex":      "+880 1711-000002",
		"Alex Khan": "+880 1711-000003",
	})

	name, phone, ok := book.Resolve("send a message to mom saying hi")
	if !ok || name != "mom" || phone != "+880 1711-000001" {
		t.Fatalf("unexpected resolution: %q %q %v", name, phone, ok)
	}

	// Longer names win over their prefixes.
	name, _, ok = book.Resolve("tell alex khan I'm running late")
	if !ok || name != "alex khan" {
		t.Fatalf("want alex khan, got %q", name)
	}

	if _, _, ok := book.Resolve("tell nobody anything"); ok {
		t.Fatalf("unknown contact should not resolve")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contacts.yaml")
	data := "contacts:\n  Mom: \"+8801711000001\"\n  Rafi: \"+8801711000002\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write contacts: %v", err)
	}

	book, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if book.Len() != 2 {
		t.Fatalf("want 2 contacts, got %d", book.Len())
	}
	phone, ok := book.Phone("rafi")
	if !ok || phone != "+8801711000002" {
		t.Fatalf("phone lookup failed: %q %v", phone, ok)
	}
}

func TestLoadMissingFile(t *testing.T) {
	book, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing contacts file should not be fatal: %v", err)
	}
	if book.Len() != 0 {
		t.Fatalf("want empty book, got %d", book.Len())
	}
}
