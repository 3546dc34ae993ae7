package classify

import (
	"testing"

	"ticker-pulse/internal/types"
)

func boolPtr(v bool) *bool { return &v }

func TestClassifyHintForcesCrypto(t *testing.T) {
	if got := Classify("AAPL", boolPtr(true)); got != types.Crypto {
		t.Errorf("Expected CRYPTO with explicit hint, got %s", got)
	}
}

func TestClassifyKnownCryptoSymbol(t *testing.T) {
	cases := []string{"BTC", "btc", " eth ", "DOGE"}
	for _, sym := range cases {
		if got := Classify(sym, nil); got != types.Crypto {
			t.Errorf("Expected CRYPTO for %q, got %s", sym, got)
		}
	}
}

func TestClassifyDefaultsToEquity(t *testing.T) {
	cases := []string{"AAPL", "MSFT", "", "???", "btcoin"}
	for _, sym := range cases {
		if got := Classify(sym, nil); got != types.Equity {
			t.Errorf("Expected EQUITY for %q, got %s", sym, got)
		}
	}
}

func TestClassifyFalseHintStillChecksMembership(t *testing.T) {
	if got := Classify("BTC", boolPtr(false)); got != types.Crypto {
		t.Errorf("Expected CRYPTO for BTC even with false hint, got %s", got)
	}
}

func TestClassifyTotality(t *testing.T) {
	hints := []*bool{nil, boolPtr(true), boolPtr(false)}
	symbols := []string{"", " ", "BTC", "AAPL", "0", "\n", "bitcoin"}
	for _, h := range hints {
		for _, s := range symbols {
			got := Classify(s, h)
			if got != types.Equity && got != types.Crypto {
				t.Fatalf("Classify(%q) returned unexpected value %q", s, got)
			}
		}
	}
}

func TestCanonicalID(t *testing.T) {
	if got := CanonicalID("BTC"); got != "bitcoin" {
		t.Errorf("Expected bitcoin, got %s", got)
	}
	if got := CanonicalID("eth"); got != "ethereum" {
		t.Errorf("Expected ethereum, got %s", got)
	}
	// Unknown symbols pass through lower-cased.
	if got := CanonicalID("PEPE"); got != "pepe" {
		t.Errorf("Expected pepe, got %s", got)
	}
}

func TestCanonicalName(t *testing.T) {
	if got := CanonicalName("matic-network"); got != "Polygon" {
		t.Errorf("Expected Polygon, got %s", got)
	}
	if got := CanonicalName("pepe"); got != "pepe" {
		t.Errorf("Expected passthrough for unknown id, got %s", got)
	}
}
