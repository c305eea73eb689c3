package command

import (
	"fmt"

	"github.com/pixil98/corvax-lab/internal/sim"
	"github.com/pixil98/corvax-lab/internal/wallet"
	"github.com/pixil98/go-errors"
)

type WalletType int

const (
	WalletTypeStatic WalletType = iota
	WalletTypeGateway
)

func (wt *WalletType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "static":
		*wt = WalletTypeStatic
	case "gateway":
		*wt = WalletTypeGateway
	default:
		return fmt.Errorf("unknown wallet type: %s", text)
	}
	return nil
}

// WalletConfig selects the wallet. Staked is only used by the static wallet,
// gateway_url and staked_resource only by the gateway.
type WalletConfig struct {
	Type           WalletType `json:"type"`
	Accounts       []string   `json:"accounts"`
	Staked         float64    `json:"staked"`
	GatewayURL     string     `json:"gateway_url"`
	StakedResource string     `json:"staked_resource"`
}

func (c *WalletConfig) Validate() error {
	el := errors.NewErrorList()

	switch c.Type {
	case WalletTypeStatic:
		if c.Staked < 0 {
			el.Add(fmt.Errorf("wallet: staked must not be negative"))
		}
	case WalletTypeGateway:
		if c.GatewayURL == "" {
			el.Add(fmt.Errorf("wallet: gateway_url is required"))
		}
		if c.StakedResource == "" {
			el.Add(fmt.Errorf("wallet: staked_resource is required"))
		}
	default:
		el.Add(fmt.Errorf("wallet: unknown type %d", c.Type))
	}

	return el.Err()
}

func (c *WalletConfig) buildWallet() (sim.Wallet, error) {
	switch c.Type {
	case WalletTypeStatic:
		return wallet.NewStatic(c.Accounts, c.Staked), nil
	case WalletTypeGateway:
		return wallet.NewGateway(c.GatewayURL, c.StakedResource, c.Accounts, nil), nil
	default:
		return nil, fmt.Errorf("unknown wallet type: %v", c.Type)
	}
}
