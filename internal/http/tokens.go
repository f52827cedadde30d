package http

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/landvote/balance-register/internal/balances"
	"github.com/landvote/balance-register/internal/constants"
	"github.com/landvote/balance-register/internal/registry"
	"github.com/landvote/balance-register/internal/view"
)

// TokenInfoReader reads the metadata of one voting-power token.
type TokenInfoReader interface {
	Info(ctx context.Context) (registry.TokenInfo, error)
}

type tokenCache struct {
	readers map[balances.AssetClass]TokenInfoReader
	entries *cache.Cache
}

func newTokenCache(readers map[balances.AssetClass]TokenInfoReader) *tokenCache {
	return &tokenCache{
		readers: readers,
		entries: cache.New(constants.TokenInfoTTL, 2*constants.TokenInfoTTL),
	}
}

func (t *tokenCache) get(ctx context.Context, class balances.AssetClass) (registry.TokenInfo, error) {
	if v, ok := t.entries.Get(class.String()); ok {
		return v.(registry.TokenInfo), nil
	}
	r, ok := t.readers[class]
	if !ok || r == nil {
		return registry.TokenInfo{}, errors.Wrapf(balances.ErrNotReady, "%s token", class)
	}
	info, err := r.Info(ctx)
	if err != nil {
		return registry.TokenInfo{}, errors.Mark(errors.Wrapf(err, "%s token info", class), balances.ErrReadFailure)
	}
	t.entries.Set(class.String(), info, cache.DefaultExpiration)
	return info, nil
}

func (s *Server) handleTokens(c *gin.Context) {
	if !s.requireSession(c) {
		return
	}
	out := make([]tokenResponse, 0, len(balances.AssetClasses))
	for _, class := range balances.AssetClasses {
		info, err := s.tokens.get(c.Request.Context(), class)
		if err != nil {
			writeError(c, statusFor(err), err.Error())
			return
		}
		out = append(out, tokenResponse{
			Class:       class,
			Address:     info.Address,
			Name:        info.Name,
			Symbol:      info.Symbol,
			Decimals:    info.Decimals,
			TotalSupply: decimal(info.TotalSupply),
			Supply:      view.FormatUnits(info.TotalSupply, info.Decimals, 4),
		})
	}
	c.JSON(http.StatusOK, out)
}
