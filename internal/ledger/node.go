package ledger

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Node is the chain connection used outside of contract calls.
type Node interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
	Close()
}

// Contract is the method-level surface of a bound contract. *bind.BoundContract
// satisfies it.
type Contract interface {
	Call(opts *bind.CallOpts, results *[]interface{}, method string, params ...interface{}) error
	Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error)
}

// Dialer opens a node connection and binds the contract at address.
type Dialer func(ctx context.Context, rpcURL string, address common.Address, parsed abi.ABI) (Node, Contract, error)

// DialEthereum is the production Dialer backed by an RPC client.
func DialEthereum(ctx context.Context, rpcURL string, address common.Address, parsed abi.ABI) (Node, Contract, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, nil, err
	}
	contract := bind.NewBoundContract(address, parsed, client, client, client)
	return &ethNode{client: client}, contract, nil
}

type ethNode struct {
	client *ethclient.Client
}

func (n *ethNode) ChainID(ctx context.Context) (*big.Int, error) {
	return n.client.ChainID(ctx)
}

func (n *ethNode) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	return n.client.BalanceAt(ctx, account, blockNumber)
}

func (n *ethNode) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return bind.WaitMined(ctx, n.client, tx)
}

func (n *ethNode) Close() {
	n.client.Close()
}
