package http

import (
	"bytes"
	"math/big"
	"net/http"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/landvote/balance-register/internal/balances"
	"github.com/landvote/balance-register/internal/httpui"
)

func (s *Server) handleIndex(c *gin.Context) {
	var buf bytes.Buffer
	if err := httpui.Render(&buf, s.page()); err != nil {
		log.Error("render page", "error", err, "request_id", c.GetString(ctxKeyRequestID))
		writeError(c, http.StatusInternalServerError, HTTPErrorInternalText)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleHealth(c *gin.Context) {
	resp := healthResponse{OK: true, WalletFound: s.session != nil}
	if s.session != nil {
		resp.Account = s.session.Account().Hex()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleBalances(c *gin.Context) {
	if !s.requireSession(c) {
		return
	}
	c.JSON(http.StatusOK, s.snapshot())
}

func (s *Server) handleToggle(c *gin.Context) {
	if !s.requireSession(c) {
		return
	}
	class, err := balances.ParseAssetClass(c.Param("class"))
	if err != nil {
		writeError(c, http.StatusNotFound, err.Error())
		return
	}

	if err := s.session.StartToggle(s.ctx, class); err != nil {
		writeError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusAccepted, s.snapshot())
}

// handleRefresh reloads every bound class. It is refused as a whole when
// any class is loading.
func (s *Server) handleRefresh(c *gin.Context) {
	if !s.requireSession(c) {
		return
	}

	var ready []balances.AssetClass
	for _, class := range balances.AssetClasses {
		if !s.session.Ready(class) {
			continue
		}
		if s.session.Store().Snapshot(class).Loading {
			writeError(c, http.StatusConflict, errors.Wrapf(balances.ErrToggleInProgress, "%s", class).Error())
			return
		}
		ready = append(ready, class)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	for _, class := range ready {
		wg.Add(1)
		go func(class balances.AssetClass) {
			defer wg.Done()
			if err := s.session.Reload(c.Request.Context(), class); err != nil {
				mu.Lock()
				errs = errors.CombineErrors(errs, err)
				mu.Unlock()
			}
		}(class)
	}
	wg.Wait()

	if errs != nil {
		writeError(c, statusFor(errs), errs.Error())
		return
	}
	c.JSON(http.StatusOK, s.snapshot())
}

func (s *Server) requireSession(c *gin.Context) bool {
	if s.session == nil {
		writeError(c, http.StatusServiceUnavailable, HTTPErrorNoSessionText)
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, balances.ErrUnknownAssetClass):
		return http.StatusNotFound
	case errors.Is(err, balances.ErrToggleInProgress):
		return http.StatusConflict
	case errors.Is(err, balances.ErrNotReady), errors.Is(err, balances.ErrConnection):
		return http.StatusServiceUnavailable
	case errors.Is(err, balances.ErrReadFailure), errors.Is(err, balances.ErrTransaction):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decimal(v *big.Int) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}
