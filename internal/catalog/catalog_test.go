package catalog

import (
	"testing"

	"Solagent-Core/internal/actions"
)

func TestRegisterAll(t *testing.T) {
	reg := actions.NewRegistry()
	RegisterAll(reg, Dependencies{})

	want := []string{
		"WALLET_ADDRESS",
		"BALANCE_ACTION",
		"TOKEN_BALANCE_ACTION",
		"TRANSFER",
		"GET_TPS",
		"REQUEST_FUNDS",
		"FETCH_PRICE",
		"TRADE",
		"RESOLVE_SOL_DOMAIN",
	}
	for _, name := range want {
		if _, ok := reg.Get(name); !ok {
			t.Errorf("action %s not registered", name)
		}
	}
	if reg.Len() != len(want) {
		t.Errorf("unexpected catalogue size: %d", reg.Len())
	}

	metas := reg.Metadata()
	seen := make(map[string]bool)
	for _, m := range metas {
		if m.Name == "" || m.Description == "" {
			t.Errorf("action metadata incomplete: %+v", m)
		}
		if seen[m.Name] {
			t.Errorf("duplicate metadata entry for %s", m.Name)
		}
		seen[m.Name] = true
	}
}
