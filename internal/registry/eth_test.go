package registry

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"testing"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/landvote/balance-register/internal/chains"
	"github.com/landvote/balance-register/internal/contracts/bindings/go/minime"
	registrybind "github.com/landvote/balance-register/internal/contracts/bindings/go/registry"
	"github.com/landvote/balance-register/internal/ethwallet/userwallet"
)

// contractNode answers eth_call by ABI method name and records sent transactions.
type contractNode struct {
	chains.Backend

	abi     abi.ABI
	answers map[string][]interface{}

	mu   sync.Mutex
	sent []*types.Transaction
}

func newContractNode(t *testing.T, abiJSON string, answers map[string][]interface{}) *contractNode {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	require.NoError(t, err)
	return &contractNode{abi: parsed, answers: answers}
}

func (n *contractNode) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	method, err := n.abi.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	out, ok := n.answers[method.Name]
	if !ok {
		return nil, fmt.Errorf("execution reverted: %s", method.Name)
	}
	return method.Outputs.Pack(out...)
}

func (n *contractNode) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func (n *contractNode) PendingCodeAt(context.Context, common.Address) ([]byte, error) {
	return []byte{0x60}, nil
}

func (n *contractNode) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(100), BaseFee: big.NewInt(1_000_000_000)}, nil
}

func (n *contractNode) PendingNonceAt(context.Context, common.Address) (uint64, error) { return 3, nil }

func (n *contractNode) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(2_000_000_000), nil
}

func (n *contractNode) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (n *contractNode) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 60_000, nil
}

func (n *contractNode) SendTransaction(_ context.Context, tx *types.Transaction) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, tx)
	return nil
}

const hardhatKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var owner = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

func TestEthRegistryReads(t *testing.T) {
	node := newContractNode(t, registrybind.RegistryABI, map[string][]interface{}{
		"registeredBalance": {true},
		"balanceOf":         {big.NewInt(50)},
		"getLANDsSize":      {big.NewInt(12)},
	})
	w, err := userwallet.FromPrivateKeyHex(hardhatKey)
	require.NoError(t, err)

	reg, err := NewEthRegistry(common.HexToAddress("0x959e104e1a4db6317fa58f8295f586e1a978c297"), node, w, big.NewInt(1))
	require.NoError(t, err)
	ctx := context.Background()

	ok, err := reg.RegisteredBalance(ctx, owner)
	require.NoError(t, err)
	require.True(t, ok)

	bal, err := reg.BalanceOf(ctx, owner)
	require.NoError(t, err)
	require.EqualValues(t, 50, bal.Int64())

	size, err := reg.GetLANDsSize(ctx, owner)
	require.NoError(t, err)
	require.EqualValues(t, 12, size.Int64())
}

func TestEthRegistryReadError(t *testing.T) {
	node := newContractNode(t, registrybind.RegistryABI, map[string][]interface{}{})
	w, err := userwallet.FromPrivateKeyHex(hardhatKey)
	require.NoError(t, err)

	reg, err := NewEthRegistry(common.HexToAddress("0x01"), node, w, big.NewInt(1))
	require.NoError(t, err)

	_, err = reg.GetLANDsSize(context.Background(), owner)
	require.ErrorContains(t, err, "getLANDsSize")
}

func TestEthRegistryRegisterSendsSignedTx(t *testing.T) {
	node := newContractNode(t, registrybind.RegistryABI, nil)
	w, err := userwallet.FromPrivateKeyHex(hardhatKey)
	require.NoError(t, err)

	regAddr := common.HexToAddress("0xf87e31492faf9a91b02ee0deaad50d51d56d5d4d")
	reg, err := NewEthRegistry(regAddr, node, w, big.NewInt(1))
	require.NoError(t, err)

	for _, method := range []string{"registerBalance", "unregisterBalance"} {
		var tx Tx
		if method == "registerBalance" {
			tx, err = reg.RegisterBalance(context.Background())
		} else {
			tx, err = reg.UnregisterBalance(context.Background())
		}
		require.NoError(t, err)

		node.mu.Lock()
		sent := node.sent[len(node.sent)-1]
		node.mu.Unlock()

		require.Equal(t, sent.Hash(), tx.Hash())
		require.Equal(t, regAddr, *sent.To())
		require.Equal(t, node.abi.Methods[method].ID, sent.Data()[:4])
		require.EqualValues(t, 3, sent.Nonce())

		from, err := types.Sender(types.LatestSignerForChainID(big.NewInt(1)), sent)
		require.NoError(t, err)
		require.Equal(t, owner, from)
	}
}

func TestEthVotingToken(t *testing.T) {
	node := newContractNode(t, minime.MiniMeTokenABI, map[string][]interface{}{
		"balanceOf":   {big.NewInt(7)},
		"balanceOfAt": {big.NewInt(5)},
		"symbol":      {"LANDMINI"},
		"decimals":    {uint8(0)},
		"totalSupply": {big.NewInt(1000)},
		"name":        {"LAND MiniMe"},
	})

	tok, err := NewEthVotingToken(common.HexToAddress("0x20dfe381ca71ade2582094cf569a8cb020af5ab1"), node)
	require.NoError(t, err)
	ctx := context.Background()

	bal, err := tok.BalanceOf(ctx, owner)
	require.NoError(t, err)
	require.EqualValues(t, 7, bal.Int64())

	at, err := tok.BalanceOfAt(ctx, owner, 90)
	require.NoError(t, err)
	require.EqualValues(t, 5, at.Int64())

	info, err := tok.Info(ctx)
	require.NoError(t, err)
	require.Equal(t, "LANDMINI", info.Symbol)
	require.Equal(t, "LAND MiniMe", info.Name)
	require.EqualValues(t, 1000, info.TotalSupply.Int64())
}
