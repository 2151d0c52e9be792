package ledger

import (
	"context"
	"math/big"
	"strings"
)

// Network identifies the chain the gateway is connected to.
type Network struct {
	Name    string `json:"name"`
	ChainID string `json:"chainId"`
}

// SystemInfo is a snapshot of the gateway's view of the ledger.
type SystemInfo struct {
	ContractAddress string  `json:"contractAddress"`
	SignerAddress   string  `json:"signerAddress"`
	BalanceWei      string  `json:"balanceWei"`
	Balance         string  `json:"balance"`
	Network         Network `json:"network"`
	RegisteredCount uint64  `json:"touristCount"`
}

// SystemInfo reports the contract, the signer's balance, the network and the
// registration count. Calls are issued one after another.
func (g *Gateway) SystemInfo(ctx context.Context) (*SystemInfo, error) {
	var info *SystemInfo
	err := g.run(ctx, OpRead, "systemInfo", g.cfg.CallTimeout, func(ctx context.Context, conn *connection) error {
		balance, err := conn.node.BalanceAt(ctx, conn.signer, nil)
		if err != nil {
			return err
		}
		count, err := g.countRegistered(ctx, conn)
		if err != nil {
			return err
		}
		info = &SystemInfo{
			ContractAddress: conn.address.Hex(),
			SignerAddress:   conn.signer.Hex(),
			BalanceWei:      balance.String(),
			Balance:         FormatEther(balance),
			Network:         Network{Name: g.cfg.NetworkName, ChainID: conn.chainID.String()},
			RegisteredCount: count,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

var weiPerEther = big.NewInt(1_000_000_000_000_000_000)

// FormatEther renders a wei amount as a decimal ether string with at least
// one fractional digit, e.g. "10000.0" or "0.000021".
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0.0"
	}
	sign := ""
	abs := new(big.Int).Set(wei)
	if abs.Sign() < 0 {
		sign = "-"
		abs.Neg(abs)
	}
	whole, frac := new(big.Int).QuoRem(abs, weiPerEther, new(big.Int))
	digits := strings.TrimRight(leftPad(frac.String(), 18), "0")
	if digits == "" {
		digits = "0"
	}
	return sign + whole.String() + "." + digits
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
