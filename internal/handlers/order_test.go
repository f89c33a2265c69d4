package handlers

import (
	"strings"
	"testing"

	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

func TestJerseyNameLimitFallsBackBeforeFirstWrite(t *testing.T) {
	if got := jerseyNameLimit(models.JerseyFormSettings{}); got != defaultMaxJerseyName {
		t.Fatalf("expected default %d, got %d", defaultMaxJerseyName, got)
	}
	if got := jerseyNameLimit(models.JerseyFormSettings{MaxNameLength: 8}); got != 8 {
		t.Fatalf("expected configured limit 8, got %d", got)
	}
}

func TestValidateJerseyNameEnforcesConfiguredCap(t *testing.T) {
	settings := models.JerseyFormSettings{MaxNameLength: 5}

	if err := validateJerseyName("RONIN", settings); err != nil {
		t.Fatalf("5-rune name within a 5 cap should pass: %v", err)
	}
	if err := validateJerseyName("RONALDO", settings); err == nil {
		t.Fatal("7-rune name over a 5 cap should be rejected")
	}
	if err := validateJerseyName("", settings); err != nil {
		t.Fatalf("empty name should always pass: %v", err)
	}
}

func TestValidateJerseyNameUsesDefaultCap(t *testing.T) {
	settings := models.JerseyFormSettings{}

	if err := validateJerseyName(strings.Repeat("A", defaultMaxJerseyName), settings); err != nil {
		t.Fatalf("name at the default cap should pass: %v", err)
	}
	if err := validateJerseyName(strings.Repeat("A", defaultMaxJerseyName+1), settings); err == nil {
		t.Fatal("name over the default cap should be rejected")
	}
}

func TestValidateJerseyNameCountsRunesNotBytes(t *testing.T) {
	settings := models.JerseyFormSettings{MaxNameLength: 4}

	// 4 runes, 12 bytes
	if err := validateJerseyName("রহিম", settings); err != nil {
		t.Fatalf("4-rune multibyte name within a 4 cap should pass: %v", err)
	}
}
