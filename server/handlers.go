// SPDX-License-Identifier: MIT
// Package: fuzzar/server
//
// handlers.go — request decoding and mining endpoints.

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/fuzzar/config"
	"github.com/katalvlaran/fuzzar/dataset"
	"github.com/katalvlaran/fuzzar/itemset"
	"github.com/katalvlaran/fuzzar/miner"
	"github.com/katalvlaran/fuzzar/rulegraph"
)

// MineRequest is the body of /v1/mine and /v1/graph. Where is an optional
// rule filter expression such as "cf > 0.5 && length <= 3".
//
// Config uses the list form of variables:
//
//	{"variables":[{"name":"A","sets":[{"label":"Low","a":0,"b":0,"c":20}]}],
//	 "min_support":0.1,"min_confidence":0.5}
type MineRequest struct {
	Config    json.RawMessage      `json:"config" binding:"required"`
	Rows      []map[string]float64 `json:"rows" binding:"required"`
	Top       int                  `json:"top"`
	Partition string               `json:"partition"`
	Where     string               `json:"where"`
}

// MineResponse is the reply of /v1/mine.
type MineResponse struct {
	Rules   []miner.Rule  `json:"rules"`
	Summary miner.Summary `json:"summary"`
}

const dotContentType = "text/vnd.graphviz; charset=utf-8"

// errorBody is the JSON shape of every error reply.
type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleMine(c *gin.Context) {
	rules, ok := s.mine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, MineResponse{Rules: rules, Summary: miner.Summarize(rules)})
}

func (s *Server) handleGraph(c *gin.Context) {
	rules, ok := s.mine(c)
	if !ok {
		return
	}
	g, err := rulegraph.FromRules(rules)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	switch c.DefaultQuery("format", "json") {
	case "json":
		c.JSON(http.StatusOK, g)
	case "dot":
		dot, err := g.DOT()
		if err != nil {
			s.fail(c, http.StatusInternalServerError, err)
			return
		}
		c.Data(http.StatusOK, dotContentType, []byte(dot))
	default:
		s.fail(c, http.StatusBadRequest, fmt.Errorf("unknown graph format %q", c.Query("format")))
	}
}

// mine decodes the request and runs the miner. On failure it has already
// written the error reply.
func (s *Server) mine(c *gin.Context) ([]miner.Rule, bool) {
	var req MineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return nil, false
	}
	if req.Top < 0 {
		s.fail(c, http.StatusBadRequest, fmt.Errorf("top must be ≥ 0 (%d)", req.Top))
		return nil, false
	}
	policy, err := itemset.ParsePartitionPolicy(req.Partition)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return nil, false
	}

	if _, err := miner.NewFilter(req.Where); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return nil, false
	}

	cfg, err := config.ParseJSON(req.Config)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return nil, false
	}
	if len(req.Rows) == 0 {
		s.fail(c, http.StatusUnprocessableEntity, dataset.ErrEmptyDataset)
		return nil, false
	}
	ds, err := dataset.FromRows(req.Rows)
	if err != nil {
		s.fail(c, http.StatusUnprocessableEntity, err)
		return nil, false
	}

	rules, err := miner.Mine(ds, cfg,
		miner.WithContext(c.Request.Context()),
		miner.WithWorkers(s.workers),
		miner.WithPartitionPolicy(policy),
		miner.WithTopN(req.Top),
		miner.WithFilter(req.Where),
		miner.WithLogger(s.log))
	if err != nil {
		s.fail(c, statusOf(err), err)
		return nil, false
	}
	return rules, true
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorBody{Error: err.Error()})
}

// statusOf maps mining errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, config.ErrConfiguration),
		errors.Is(err, dataset.ErrEmptyDataset),
		errors.Is(err, dataset.ErrNonFinite),
		errors.Is(err, dataset.ErrRaggedData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, miner.ErrOptionViolation),
		errors.Is(err, miner.ErrBadFilter),
		errors.Is(err, itemset.ErrOptionViolation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
