package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const fungiblesPath = "/state/entity/page/fungibles/"

// Gateway reads the staked balance of the first shared account from a Radix
// gateway. The account list is supplied by whatever performed the wallet
// connection; the gateway client never changes it.
type Gateway struct {
	baseURL  string
	resource string
	accounts []string
	http     *http.Client
}

func NewGateway(baseURL, resourceAddress string, accounts []string, hc *http.Client) *Gateway {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Gateway{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		resource: resourceAddress,
		accounts: append([]string(nil), accounts...),
		http:     hc,
	}
}

func (g *Gateway) Connected() bool {
	return len(g.accounts) > 0
}

func (g *Gateway) Accounts() []string {
	return append([]string(nil), g.accounts...)
}

type fungiblesRequest struct {
	Address string `json:"address"`
}

type fungiblesResponse struct {
	Items []struct {
		ResourceAddress string `json:"resource_address"`
		Amount          string `json:"amount"`
	} `json:"items"`
}

// StakedBalance returns the amount of the staked resource held by the first
// account. A missing resource is a zero balance, not an error.
func (g *Gateway) StakedBalance(ctx context.Context) (float64, error) {
	if !g.Connected() {
		return 0, ErrNotConnected
	}

	body, err := json.Marshal(fungiblesRequest{Address: g.accounts[0]})
	if err != nil {
		return 0, fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+fungiblesPath, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("querying gateway: %w", err)
	}
	// Ignoring close error - body is fully read below, error is not actionable
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("reading gateway response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var out fungiblesResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return 0, fmt.Errorf("decoding gateway response: %w", err)
	}

	for _, item := range out.Items {
		if item.ResourceAddress != g.resource {
			continue
		}
		amount, err := strconv.ParseFloat(item.Amount, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing amount %q: %w", item.Amount, err)
		}
		return amount, nil
	}

	return 0, nil
}
