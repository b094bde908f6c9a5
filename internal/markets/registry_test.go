package markets

import (
	"errors"
	"testing"
)

func TestResolveKnownMarket(t *testing.T) {
	cfg, err := Resolve("Sandoghe-Aiar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Source != SourceTSETMC {
		t.Errorf("expected tsetmc source, got %s", cfg.Source)
	}
	if cfg.InstrumentID == "" {
		t.Error("tsetmc market must carry an instrument id")
	}
}

func TestResolveUnknownMarket(t *testing.T) {
	_, err := Resolve("not-a-market")
	if !errors.Is(err, ErrUnknownMarket) {
		t.Fatalf("expected ErrUnknownMarket, got %v", err)
	}
}

func TestListAllOrderAndCoverage(t *testing.T) {
	names := ListAll()
	if len(names) != 16 {
		t.Fatalf("expected 16 markets, got %d", len(names))
	}
	if names[0] != "Sandoghe-Aiar" || names[len(names)-1] != "Silver" {
		t.Errorf("catalog order not preserved: %v", names)
	}

	for _, name := range names {
		if _, err := Resolve(name); err != nil {
			t.Errorf("listed market %s does not resolve: %v", name, err)
		}
	}
}

func TestInstrumentIDOnlyOnTSETMC(t *testing.T) {
	for _, name := range ListAll() {
		cfg, _ := Resolve(name)
		if cfg.Source == SourceTSETMC && cfg.InstrumentID == "" {
			t.Errorf("%s: tsetmc market without instrument id", name)
		}
		if cfg.Source != SourceTSETMC && cfg.InstrumentID != "" {
			t.Errorf("%s: unexpected instrument id on %s market", name, cfg.Source)
		}
	}
}

func TestPersianName(t *testing.T) {
	if got := PersianName("Dollar"); got != "دلار" {
		t.Errorf("unexpected name: %s", got)
	}
	if got := PersianName("nope"); got != "Unknown" {
		t.Errorf("expected Unknown fallback, got %s", got)
	}
}
