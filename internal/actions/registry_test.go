package actions_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"Solagent-Core/internal/actions"
	"Solagent-Core/internal/actions/token"
	"Solagent-Core/internal/chain"
	xerrors "Solagent-Core/internal/errors"
	"Solagent-Core/internal/wallet"

	"github.com/gagliardetto/solana-go"
)

// stubWallet counts signing requests so tests can assert that failed
// validation never reaches the signer.
type stubWallet struct {
	addr      solana.PublicKey
	signCalls atomic.Int64
}

func newStubWallet() *stubWallet {
	priv, _ := solana.NewRandomPrivateKey()
	return &stubWallet{addr: priv.PublicKey()}
}

func (w *stubWallet) Address() solana.PublicKey {
	return w.addr
}

func (w *stubWallet) SignMessage(ctx context.Context, payload []byte) (solana.Signature, error) {
	w.signCalls.Add(1)
	return solana.Signature{}, nil
}

func (w *stubWallet) SignTransaction(ctx context.Context, tx *solana.Transaction) error {
	w.signCalls.Add(1)
	return nil
}

func (w *stubWallet) SignAllTransactions(ctx context.Context, txs []*solana.Transaction) error {
	w.signCalls.Add(int64(len(txs)))
	return nil
}

// stubAgent satisfies the execution context interface without touching
// any network. Transfers are recorded, not broadcast.
type stubAgent struct {
	wallet    *stubWallet
	balance   float64
	transfers atomic.Int64
}

func newStubAgent() *stubAgent {
	return &stubAgent{wallet: newStubWallet(), balance: 1.5}
}

func (a *stubAgent) Wallet() wallet.Wallet { return a.wallet }
func (a *stubAgent) Client() chain.Client  { return nil }
func (a *stubAgent) Endpoint() string      { return "http://localhost:8899" }

func (a *stubAgent) GetBalance(ctx context.Context, mint *solana.PublicKey) (float64, error) {
	return a.balance, nil
}

func (a *stubAgent) Transfer(ctx context.Context, to solana.PublicKey, amount float64, mint *solana.PublicKey) (solana.Signature, error) {
	a.transfers.Add(1)
	a.wallet.signCalls.Add(1)
	return solana.Signature{}, nil
}

func (a *stubAgent) SignAndSubmit(ctx context.Context, tx *solana.Transaction, kind string) (solana.Signature, error) {
	a.wallet.signCalls.Add(1)
	return solana.Signature{}, nil
}

// fakeAction is a minimal action with a canned result.
type fakeAction struct {
	name        string
	description string
	result      map[string]any
	calls       atomic.Int64
}

func (f *fakeAction) Metadata() actions.Metadata {
	return actions.Metadata{
		Name:        f.name,
		Description: f.description,
		InputSchema: map[string]any{"type": "object"},
	}
}

func (f *fakeAction) Execute(ctx context.Context, ag actions.Agent, input map[string]any) (map[string]any, error) {
	f.calls.Add(1)
	return f.result, nil
}

func TestExecuteRegisteredAction(t *testing.T) {
	reg := actions.NewRegistry()
	reg.Register(&fakeAction{
		name:   "BALANCE_ACTION",
		result: map[string]any{"lamports": 1000},
	})

	out, err := reg.Execute(context.Background(), "BALANCE_ACTION", newStubAgent(), map[string]any{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if out["lamports"] != 1000 {
		t.Errorf("unexpected output: %v", out)
	}
}

func TestExecuteUnknownAction(t *testing.T) {
	reg := actions.NewRegistry()
	ag := newStubAgent()

	_, err := reg.Execute(context.Background(), "NONEXISTENT", ag, map[string]any{})
	if err == nil {
		t.Fatal("expected error for unknown action")
	}
	if code := xerrors.CodeOf(err); code != xerrors.CodeActionNotFound {
		t.Errorf("unexpected error code: %s", code)
	}
	if got := ag.wallet.signCalls.Load(); got != 0 {
		t.Errorf("unknown action dispatch reached the signer %d times", got)
	}
}

func TestRegisteredNamesAlwaysResolvable(t *testing.T) {
	reg := actions.NewRegistry()
	reg.Register(&fakeAction{name: "A", result: map[string]any{}})
	reg.Register(&fakeAction{name: "B", result: map[string]any{}})

	for _, name := range reg.Names() {
		if _, err := reg.Execute(context.Background(), name, newStubAgent(), map[string]any{}); err != nil {
			t.Errorf("registered action %s failed: %v", name, err)
		}
	}
}

func TestLastRegistrationWins(t *testing.T) {
	reg := actions.NewRegistry()
	first := &fakeAction{name: "PING", description: "first", result: map[string]any{"v": 1}}
	second := &fakeAction{name: "PING", description: "second", result: map[string]any{"v": 2}}
	reg.Register(first)
	reg.Register(second)

	if reg.Len() != 1 {
		t.Fatalf("expected one registered action, got %d", reg.Len())
	}

	out, err := reg.Execute(context.Background(), "PING", newStubAgent(), map[string]any{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if out["v"] != 2 {
		t.Errorf("dispatch reached the replaced action: %v", out)
	}
	if first.calls.Load() != 0 {
		t.Error("replaced action was still invoked")
	}

	metas := reg.Metadata()
	if len(metas) != 1 {
		t.Fatalf("expected one metadata entry, got %d", len(metas))
	}
	if metas[0].Description != "second" {
		t.Errorf("metadata describes the replaced action: %s", metas[0].Description)
	}
}

func TestMetadataUniqueAndOrdered(t *testing.T) {
	reg := actions.NewRegistry()
	for _, name := range []string{"C", "A", "B"} {
		reg.Register(&fakeAction{name: name, result: map[string]any{}})
	}
	// 覆盖注册不改变列举位置。
	reg.Register(&fakeAction{name: "A", description: "replacement", result: map[string]any{}})

	metas := reg.Metadata()
	if len(metas) != 3 {
		t.Fatalf("expected three metadata entries, got %d", len(metas))
	}
	seen := make(map[string]bool)
	for _, m := range metas {
		if seen[m.Name] {
			t.Errorf("duplicate metadata entry for %s", m.Name)
		}
		seen[m.Name] = true
	}
	want := []string{"C", "A", "B"}
	for i, m := range metas {
		if m.Name != want[i] {
			t.Errorf("metadata[%d] = %s, want %s", i, m.Name, want[i])
		}
	}
	if metas[1].Description != "replacement" {
		t.Errorf("replacement metadata not reflected: %s", metas[1].Description)
	}
}

func TestEmptyRegistryMetadata(t *testing.T) {
	reg := actions.NewRegistry()
	if metas := reg.Metadata(); len(metas) != 0 {
		t.Errorf("empty registry returned metadata: %v", metas)
	}
}

func TestRegisterIgnoresNilAndUnnamed(t *testing.T) {
	reg := actions.NewRegistry()
	reg.Register(nil)
	reg.Register(&fakeAction{name: "", result: map[string]any{}})
	if reg.Len() != 0 {
		t.Errorf("expected empty registry, got %d entries", reg.Len())
	}
}

func TestTransferValidationBeforeSigning(t *testing.T) {
	reg := actions.NewRegistry()
	token.Register(reg)
	ag := newStubAgent()

	// 缺少 amount 字段。
	_, err := reg.Execute(context.Background(), "TRANSFER", ag, map[string]any{"to": "abc"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if code := xerrors.CodeOf(err); code != xerrors.CodeInvalidInput {
		t.Errorf("unexpected error code: %s", code)
	}
	if got := ag.wallet.signCalls.Load(); got != 0 {
		t.Errorf("rejected transfer reached the signer %d times", got)
	}
	if got := ag.transfers.Load(); got != 0 {
		t.Errorf("rejected transfer was broadcast %d times", got)
	}
}

func TestTransferRejectsNonPositiveAmount(t *testing.T) {
	reg := actions.NewRegistry()
	token.Register(reg)
	ag := newStubAgent()

	_, err := reg.Execute(context.Background(), "TRANSFER", ag, map[string]any{
		"to":     ag.wallet.Address().String(),
		"amount": -1.0,
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if code := xerrors.CodeOf(err); code != xerrors.CodeInvalidInput {
		t.Errorf("unexpected error code: %s", code)
	}
	if got := ag.wallet.signCalls.Load(); got != 0 {
		t.Errorf("rejected transfer reached the signer %d times", got)
	}
}

func TestTransferRejectsUnknownField(t *testing.T) {
	reg := actions.NewRegistry()
	token.Register(reg)
	ag := newStubAgent()

	_, err := reg.Execute(context.Background(), "TRANSFER", ag, map[string]any{
		"to":     ag.wallet.Address().String(),
		"amount": 1.0,
		"memo":   "extra",
	})
	if err == nil {
		t.Fatal("expected validation error for unknown field")
	}
	if code := xerrors.CodeOf(err); code != xerrors.CodeInvalidInput {
		t.Errorf("unexpected error code: %s", code)
	}
}

func TestConcurrentDispatch(t *testing.T) {
	reg := actions.NewRegistry()
	action := &fakeAction{name: "READ", result: map[string]any{"ok": true}}
	reg.Register(action)
	ag := newStubAgent()

	const workers = 64
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := reg.Execute(context.Background(), "READ", ag, map[string]any{})
			if err != nil {
				errs <- err
				return
			}
			if out["ok"] != true {
				errs <- xerrors.New(xerrors.CodeUnknown, "unexpected output")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent dispatch failed: %v", err)
	}
	if got := action.calls.Load(); got != workers {
		t.Errorf("expected %d invocations, got %d", workers, got)
	}
}
