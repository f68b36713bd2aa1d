package wallet

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/manifest-network/adacoin/internal/ledger"
)

// Wallet serializes access to a single ledger.Chain so it can be shared between the ingest loop
// and the metrics collectors.
type Wallet struct {
	mu    sync.Mutex
	chain *ledger.Chain
}

// New returns a wallet around a fresh chain built with opts.
func New(opts ...ledger.Option) *Wallet {
	return &Wallet{chain: ledger.NewChain(opts...)}
}

// Add appends a block dated ts holding tx.
func (w *Wallet) Add(ts string, tx ledger.Transaction) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chain.AddBlock(ledger.NewBlock(ts, tx))
}

func (w *Wallet) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chain.Len()
}

func (w *Wallet) IsValid() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chain.IsValid()
}

func (w *Wallet) Verify() (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chain.Verify()
}

// Balance formats the balance and reports it to the chain's sink.
func (w *Wallet) Balance() ledger.Money {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chain.Balance()
}

// BalanceAmount computes the balance without emitting any event, so collectors can poll it.
func (w *Wallet) BalanceAmount() decimal.Decimal {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chain.BalanceAmount()
}

func (w *Wallet) Rebuild() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.chain.Rebuild()
}

// Blocks returns copies of every block.
func (w *Wallet) Blocks() []*ledger.Block {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chain.Blocks()
}
