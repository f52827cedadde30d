// Package http serves the balance page, its JSON API and the metrics
// endpoint on a loopback address.
package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/landvote/balance-register/internal/balances"
	"github.com/landvote/balance-register/internal/constants"
	"github.com/landvote/balance-register/internal/view"
)

type Config struct {
	AllowedOrigins    []string
	Title             string
	VoteURL           string
	VotingPowerFactor int64

	// Tokens backs GET /api/tokens. Missing classes answer 503.
	Tokens map[balances.AssetClass]TokenInfoReader
}

type Server struct {
	// ctx outlives single requests; background toggles run under it.
	ctx       context.Context
	session   *balances.Session
	formatter view.Formatter
	title     string
	voteURL   string
	cors      corsPolicy
	gatherer  prometheus.Gatherer
	tokens    *tokenCache

	engine *gin.Engine
}

// NewServer builds the router. A nil session serves the "wallet not found"
// page and answers 503 on the API. A nil gatherer uses the default registry.
func NewServer(ctx context.Context, cfg Config, session *balances.Session, gatherer prometheus.Gatherer) *Server {
	if cfg.Title == "" {
		cfg.Title = constants.DefaultTitle
	}
	if cfg.VoteURL == "" {
		cfg.VoteURL = constants.VoteURL
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		ctx:       ctx,
		session:   session,
		formatter: view.NewFormatter(cfg.VotingPowerFactor),
		title:     cfg.Title,
		voteURL:   cfg.VoteURL,
		cors:      newCORSPolicy(cfg.AllowedOrigins),
		gatherer:  gatherer,
		tokens:    newTokenCache(cfg.Tokens),
	}
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) page() view.Page {
	if s.session == nil {
		return s.formatter.Build(s.title, s.voteURL, "", nil)
	}
	return s.formatter.Build(s.title, s.voteURL, s.session.Account().Hex(), s.session)
}

func (s *Server) snapshot() balancesResponse {
	resp := balancesResponse{
		Account:           s.session.Account().Hex(),
		VoteURL:           s.voteURL,
		VotingPowerFactor: s.formatter.Factor(),
		Classes:           make([]classState, 0, len(balances.AssetClasses)),
	}
	for _, class := range balances.AssetClasses {
		st := s.session.Store().Snapshot(class)
		cs := classState{
			Class:         class,
			Registered:    st.Registered,
			Loading:       st.Loading,
			Balance:       decimal(st.Balance),
			VotingBalance: decimal(st.VotingBalance),
			Size:          decimal(st.Size),
			Panel:         s.formatter.Panel(class, st),
		}
		if vp, ok := s.formatter.VotingPower(st); ok {
			cs.VotingPower = decimal(vp)
		}
		resp.Classes = append(resp.Classes, cs)
	}
	return resp
}
