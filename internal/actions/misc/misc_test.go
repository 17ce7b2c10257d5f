package misc_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"Solagent-Core/internal/actions/misc"
	"Solagent-Core/internal/chain"
	xerrors "Solagent-Core/internal/errors"
	"Solagent-Core/internal/providers/bonfida"
	"Solagent-Core/internal/wallet"

	"github.com/gagliardetto/solana-go"
)

type stubAgent struct {
	w wallet.Wallet
}

func newStubAgent() *stubAgent {
	priv, err := solana.NewRandomPrivateKey()
	if err != nil {
		panic(err)
	}
	w, err := wallet.NewKeypairWallet(priv)
	if err != nil {
		panic(err)
	}
	return &stubAgent{w: w}
}

func (a *stubAgent) Wallet() wallet.Wallet { return a.w }
func (a *stubAgent) Client() chain.Client  { return nil }
func (a *stubAgent) Endpoint() string      { return "http://localhost:8899" }

func (a *stubAgent) GetBalance(ctx context.Context, mint *solana.PublicKey) (float64, error) {
	return 0, nil
}

func (a *stubAgent) Transfer(ctx context.Context, to solana.PublicKey, amount float64, mint *solana.PublicKey) (solana.Signature, error) {
	return solana.Signature{}, nil
}

func (a *stubAgent) SignAndSubmit(ctx context.Context, tx *solana.Transaction, kind string) (solana.Signature, error) {
	return solana.Signature{}, nil
}

func TestResolveDomain(t *testing.T) {
	const owner = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resolve/example" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"result":"` + owner + `"}`))
	}))
	defer server.Close()

	sns := bonfida.NewClient(bonfida.Config{BaseURL: server.URL})
	action := misc.NewResolveDomainAction(sns)

	// .sol 后缀可带可不带。
	for _, domain := range []string{"example.sol", "example"} {
		out, err := action.Execute(context.Background(), newStubAgent(), map[string]any{
			"domain": domain,
		})
		if err != nil {
			t.Fatalf("Execute(%s) failed: %v", domain, err)
		}
		if out["owner"] != owner {
			t.Errorf("unexpected owner: %v", out["owner"])
		}
		if out["domain"] != "example.sol" {
			t.Errorf("unexpected domain: %v", out["domain"])
		}
	}
}

func TestResolveDomainRequiresDomain(t *testing.T) {
	action := misc.NewResolveDomainAction(nil)

	_, err := action.Execute(context.Background(), newStubAgent(), map[string]any{})
	if xerrors.CodeOf(err) != xerrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}

	_, err = action.Execute(context.Background(), newStubAgent(), map[string]any{"domain": ".sol"})
	if xerrors.CodeOf(err) != xerrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT for bare suffix, got %v", err)
	}
}

func TestResolveDomainExternalFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	sns := bonfida.NewClient(bonfida.Config{BaseURL: server.URL})
	_, err := misc.NewResolveDomainAction(sns).Execute(context.Background(), newStubAgent(), map[string]any{
		"domain": "example.sol",
	})
	if xerrors.CodeOf(err) != xerrors.CodeExternalFailure {
		t.Errorf("expected EXTERNAL_FAILURE, got %v", err)
	}
}
