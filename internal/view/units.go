package view

import (
	"math/big"
	"strings"
)

// FormatUnits divides amount by 10^decimals and keeps at most maxFrac
// fractional digits, dropping trailing zeros.
//
//	amount=1234500000000000000, decimals=18 -> "1.2345"
//	amount=1, decimals=18, maxFrac=4 -> "0"
func FormatUnits(amount *big.Int, decimals uint8, maxFrac int) string {
	if amount == nil || amount.Sign() == 0 {
		return "0"
	}

	base := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	intPart, fracPart := new(big.Int).QuoRem(amount, base, new(big.Int))
	if fracPart.Sign() < 0 {
		fracPart.Neg(fracPart)
	}

	sign := ""
	if amount.Sign() < 0 && intPart.Sign() == 0 {
		sign = "-"
	}

	if fracPart.Sign() == 0 || maxFrac <= 0 {
		return sign + intPart.String()
	}

	fracStr := fracPart.String()
	if len(fracStr) < int(decimals) {
		fracStr = strings.Repeat("0", int(decimals)-len(fracStr)) + fracStr
	}
	if len(fracStr) > maxFrac {
		fracStr = fracStr[:maxFrac]
	}
	fracStr = strings.TrimRight(fracStr, "0")
	if fracStr == "" {
		return sign + intPart.String()
	}
	return sign + intPart.String() + "." + fracStr
}
