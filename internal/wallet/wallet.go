package wallet

import (
	"context"
	"errors"
)

var ErrNotConnected = errors.New("wallet not connected")

// Static is a wallet whose accounts and staked balance are fixed at startup.
type Static struct {
	accounts []string
	staked   float64
}

func NewStatic(accounts []string, staked float64) *Static {
	return &Static{
		accounts: append([]string(nil), accounts...),
		staked:   staked,
	}
}

// Connected reports whether at least one account has been shared.
func (w *Static) Connected() bool {
	return len(w.accounts) > 0
}

func (w *Static) Accounts() []string {
	return append([]string(nil), w.accounts...)
}

func (w *Static) StakedBalance(context.Context) (float64, error) {
	if !w.Connected() {
		return 0, ErrNotConnected
	}
	return w.staked, nil
}
