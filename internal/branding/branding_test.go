package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "gameshelf" {
		t.Errorf("CLIName() = %q, want %q", got, "gameshelf")
	}
	if got := HomeDir(); got != ".gameshelf" {
		t.Errorf("HomeDir() = %q, want %q", got, ".gameshelf")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("registry"); got != "GAMESHELF_REGISTRY" {
		t.Errorf("EnvVar(registry) = %q, want %q", got, "GAMESHELF_REGISTRY")
	}
}
