package version

import (
	"strings"
	"testing"
)

func TestFullDev(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "dev"
	if got := Full(); got != "petcare version dev (built from source)" {
		t.Errorf("Full() = %q", got)
	}

	Version = "1.2.3"
	if got := Full(); got != "petcare version 1.2.3" {
		t.Errorf("Full() = %q", got)
	}
}

func TestUserAgent(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3"
	ua := UserAgent()
	if !strings.HasPrefix(ua, "petcare-cli/1.2.3") {
		t.Errorf("UserAgent() = %q, want petcare-cli/1.2.3 prefix", ua)
	}
}
