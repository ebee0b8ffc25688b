package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEnv(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// unset clears key for the duration of the test.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		_ = os.Unsetenv(key) //nolint:errcheck
	}
}

func TestLoad_NonexistentFile(t *testing.T) {
	if err := Load("/nonexistent/.env"); err != nil {
		t.Fatalf("expected nil for nonexistent file, got %v", err)
	}
}

func TestLoad_SetsUnsetVars(t *testing.T) {
	path := writeEnv(t, ".env.local", "MENDELEY_DATA_DIR=/srv/mendeley\nM2B_TEST_B=world\n")
	unset(t, "MENDELEY_DATA_DIR", "M2B_TEST_B")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("MENDELEY_DATA_DIR"); got != "/srv/mendeley" {
		t.Errorf("MENDELEY_DATA_DIR = %q, want %q", got, "/srv/mendeley")
	}
	if got := os.Getenv("M2B_TEST_B"); got != "world" {
		t.Errorf("M2B_TEST_B = %q, want %q", got, "world")
	}
}

func TestLoad_DoesNotOverrideExisting(t *testing.T) {
	path := writeEnv(t, ".env", "M2B_TEST_C=from_file\n")
	t.Setenv("M2B_TEST_C", "from_env")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("M2B_TEST_C"); got != "from_env" {
		t.Errorf("M2B_TEST_C = %q, want %q (env should take precedence)", got, "from_env")
	}
}

func TestLoad_Syntax(t *testing.T) {
	content := "# comment\n\n" +
		"M2B_TEST_PLAIN=value\n" +
		"M2B_TEST_DOUBLE=\"quoted value\"\n" +
		"M2B_TEST_SINGLE='single quoted'\n" +
		"export M2B_TEST_EXPORT=exported\n"
	path := writeEnv(t, ".env", content)
	unset(t, "M2B_TEST_PLAIN", "M2B_TEST_DOUBLE", "M2B_TEST_SINGLE", "M2B_TEST_EXPORT")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	tests := map[string]string{
		"M2B_TEST_PLAIN":  "value",
		"M2B_TEST_DOUBLE": "quoted value",
		"M2B_TEST_SINGLE": "single quoted",
		"M2B_TEST_EXPORT": "exported",
	}
	for key, want := range tests {
		if got := os.Getenv(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestLoadAll_EarlierFileWins(t *testing.T) {
	local := writeEnv(t, ".env.local", "M2B_TEST_ORDER=local\n")
	shared := writeEnv(t, ".env", "M2B_TEST_ORDER=shared\nM2B_TEST_ONLY_SHARED=yes\n")
	unset(t, "M2B_TEST_ORDER", "M2B_TEST_ONLY_SHARED")

	if err := LoadAll(local, "/nonexistent/.env", shared); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("M2B_TEST_ORDER"); got != "local" {
		t.Errorf("M2B_TEST_ORDER = %q, want %q", got, "local")
	}
	if got := os.Getenv("M2B_TEST_ONLY_SHARED"); got != "yes" {
		t.Errorf("M2B_TEST_ONLY_SHARED = %q, want %q", got, "yes")
	}
}
