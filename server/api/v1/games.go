// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package v1

import (
	"log/slog"
	"net/http"

	"github.com/zintix-labs/minelab"
	"github.com/zintix-labs/minelab/dto"
	"github.com/zintix-labs/minelab/errs"
	"github.com/zintix-labs/minelab/sdk/core"
	"github.com/zintix-labs/minelab/server/httperr"
	"github.com/zintix-labs/minelab/server/netsvr"
	"github.com/zintix-labs/minelab/server/netsvr/middleware"
)

// GameHandler 對局 API。每個請求只持有單一 Session 的鎖。
type GameHandler struct {
	lab   *minelab.Lab
	store *minelab.Store
	log   *slog.Logger
}

func NewGameHandler(lab *minelab.Lab, store *minelab.Store, log *slog.Logger) (*GameHandler, error) {
	if lab == nil || store == nil {
		return nil, errs.NewFatal("game handler requires lab and store")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &GameHandler{lab: lab, store: store, log: log}, nil
}

func (h *GameHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	httperr.Log(h.log, msg, err, slog.String("req_id", middleware.ReqID(r)))
	httperr.Errs(w, err)
}

func (h *GameHandler) session(w http.ResponseWriter, r *http.Request) (*minelab.Session, bool) {
	s, err := h.store.Get(netsvr.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "game.lookup", err)
		return nil, false
	}
	return s, true
}

// Create POST /v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := new(dto.CreateRequest)
	if err := dto.DecodeJSON(w, r, req); err != nil {
		h.fail(w, r, "game.create", err)
		return
	}
	if err := req.Valid(); err != nil {
		h.fail(w, r, "game.create", err)
		return
	}
	if req.Layout != "" {
		s, err := h.lab.ReplaySession(req.Layout)
		if err != nil {
			h.fail(w, r, "game.create", err)
			return
		}
		h.put(w, r, s)
		return
	}

	var seed int64
	if req.Seed != nil {
		seed = *req.Seed
	} else {
		s, err := core.EntropySeed()
		if err != nil {
			h.fail(w, r, "game.create", err)
			return
		}
		seed = s
	}

	var (
		s   *minelab.Session
		err error
	)
	if req.Custom != nil {
		s, err = h.lab.NewCustomSession(*req.Custom, seed)
	} else {
		s, err = h.lab.NewSession(req.Preset, seed)
	}
	if err != nil {
		h.fail(w, r, "game.create", err)
		return
	}
	h.put(w, r, s)
}

func (h *GameHandler) put(w http.ResponseWriter, r *http.Request, s *minelab.Session) {
	if err := h.store.Put(s); err != nil {
		h.fail(w, r, "game.create", err)
		return
	}
	writeJSON(w, http.StatusCreated, s.Summary())
}

// View GET /v1/games/{id}
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

// Reveal POST /v1/games/{id}/reveal
func (h *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	req := new(dto.MoveRequest)
	if err := dto.DecodeJSON(w, r, req); err != nil {
		h.fail(w, r, "game.reveal", err)
		return
	}
	v, opened, err := s.Reveal(req.X, req.Y)
	if err != nil {
		h.fail(w, r, "game.reveal", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewRevealResult(req.X, req.Y, v, opened))
}

// Flag POST /v1/games/{id}/flag
func (h *GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	req := new(dto.MoveRequest)
	if err := dto.DecodeJSON(w, r, req); err != nil {
		h.fail(w, r, "game.flag", err)
		return
	}
	if _, err := s.Flag(req.X, req.Y); err != nil {
		h.fail(w, r, "game.flag", err)
		return
	}
	h.tile(w, r, s, req.X, req.Y)
}

// SetFlag POST /v1/games/{id}/setflag
func (h *GameHandler) SetFlag(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	req := new(dto.MoveRequest)
	if err := dto.DecodeJSON(w, r, req); err != nil {
		h.fail(w, r, "game.setflag", err)
		return
	}
	if err := req.ValidFlag(); err != nil {
		h.fail(w, r, "game.setflag", err)
		return
	}
	if _, err := s.SetFlag(req.X, req.Y, *req.Flag); err != nil {
		h.fail(w, r, "game.setflag", err)
		return
	}
	h.tile(w, r, s, req.X, req.Y)
}

func (h *GameHandler) tile(w http.ResponseWriter, r *http.Request, s *minelab.Session, x, y int) {
	st, v, ok, err := s.Tile(x, y)
	if err != nil {
		h.fail(w, r, "game.tile", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewTileResult(x, y, st, v, ok))
}

// Layout GET /v1/games/{id}/layout
func (h *GameHandler) Layout(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	code, err := s.Layout()
	if err != nil {
		h.fail(w, r, "game.layout", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.LayoutResult{ID: s.ID(), Layout: code})
}

// Delete DELETE /v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(netsvr.URLParam(r, "id")); err != nil {
		h.fail(w, r, "game.delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
