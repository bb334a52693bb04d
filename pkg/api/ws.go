// Quran Search
// Copyright (c) 2026 The Quran Search Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Quran Search.
//
// Quran Search is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Quran Search is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Quran Search.  If not, see <http://www.gnu.org/licenses/>.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/mosaid/quransearch/pkg/api/middleware"
	"github.com/mosaid/quransearch/pkg/api/models"
	"github.com/mosaid/quransearch/pkg/api/validation"
	"github.com/mosaid/quransearch/pkg/config"
	"github.com/mosaid/quransearch/pkg/service/searcher"
	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

const dispatcherKey = "dispatcher"

var errNoDispatcher = errors.New("session has no dispatcher")

// Each WebSocket session owns a dispatcher, so a new search from a client
// supersedes that client's previous one without affecting other clients.
func (s *Server) setupWebSocket() {
	s.ws.Upgrader.CheckOrigin = func(*http.Request) bool { return true }

	s.ws.HandleConnect(func(session *melody.Session) {
		session.Set(dispatcherKey, searcher.NewDispatcher(s.engine, s.clock))
		log.Debug().Str("addr", session.Request.RemoteAddr).Msg("websocket connected")
	})

	s.ws.HandleDisconnect(func(session *melody.Session) {
		if d, err := sessionDispatcher(session); err == nil {
			d.Cancel()
		}
		log.Debug().Str("addr", session.Request.RemoteAddr).Msg("websocket disconnected")
	})

	s.ws.HandleMessage(s.rateLimitMessages(s.handleWSMessage))
}

func sessionDispatcher(session *melody.Session) (*searcher.Dispatcher, error) {
	v, ok := session.Get(dispatcherKey)
	if !ok {
		return nil, errNoDispatcher
	}
	d, ok := v.(*searcher.Dispatcher)
	if !ok {
		return nil, errNoDispatcher
	}
	return d, nil
}

func (s *Server) rateLimitMessages(
	handler func(*melody.Session, []byte),
) func(*melody.Session, []byte) {
	return func(session *melody.Session, msg []byte) {
		host := middleware.ParseRemoteIP(session.Request.RemoteAddr).String()
		if !s.limiter.Allow(host) {
			log.Warn().
				Str("ip", host).
				Int("msg_size", len(msg)).
				Msg("WebSocket rate limit exceeded")
			sendError(session, uuid.Nil, models.ErrorObject{Code: -32000, Message: "Rate limit exceeded"})
			return
		}
		handler(session, msg)
	}
}

func (s *Server) handleWSMessage(session *melody.Session, msg []byte) {
	// heartbeat
	if bytes.Equal(msg, []byte("ping")) {
		if err := session.Write([]byte("pong")); err != nil {
			log.Error().Err(err).Msg("sending pong")
		}
		return
	}

	if !json.Valid(msg) {
		sendError(session, uuid.Nil, models.ErrorParseError)
		return
	}

	var req models.RequestObject
	if err := json.Unmarshal(msg, &req); err != nil || req.JSONRPC != models.JSONRPCVersion || req.Method == "" {
		sendError(session, uuid.Nil, models.ErrorInvalidRequest)
		return
	}
	if req.ID == nil {
		log.Debug().Str("method", req.Method).Msg("ignoring notification")
		return
	}
	id := *req.ID
	log.Debug().Str("method", req.Method).Str("id", id.String()).Msg("received request")

	switch req.Method {
	case models.MethodSearch:
		s.wsSearch(session, id, req.Params)
	case models.MethodSearchCancel:
		if d, err := sessionDispatcher(session); err == nil {
			d.Cancel()
		}
		sendResult(session, id, nil)
	case models.MethodContext:
		s.wsContext(session, id, req.Params)
	case models.MethodWords:
		s.wsWords(session, id, req.Params)
	case models.MethodVersion:
		sendResult(session, id, models.VersionResponse{Version: config.AppVersion})
	default:
		sendError(session, id, models.ErrorMethodNotFound)
	}
}

func invalidParams(err error) models.ErrorObject {
	return models.ErrorObject{
		Code:    models.ErrorInvalidParams.Code,
		Message: fmt.Sprintf("%s: %s", models.ErrorInvalidParams.Message, err),
	}
}

// wsSearch submits the search and replies when it completes. A search
// superseded by a later one is answered with ErrorSuperseded.
func (s *Server) wsSearch(session *melody.Session, id uuid.UUID, raw json.RawMessage) {
	var params models.SearchParams
	if err := validation.ValidateAndUnmarshalCtx(context.Background(), raw, &params, nil); err != nil {
		sendError(session, id, invalidParams(err))
		return
	}
	method, err := searcher.ParseMethod(params.Method)
	if err != nil {
		sendError(session, id, invalidParams(err))
		return
	}
	d, err := sessionDispatcher(session)
	if err != nil {
		sendError(session, id, models.ErrorServerError)
		return
	}

	ch := d.Submit(context.Background(), searcher.Request{
		Method:         method,
		Query:          params.Query,
		HighlightWords: params.Highlight,
		Dark:           params.Dark,
	})
	go func() {
		resp, ok := <-ch
		switch {
		case !ok:
			sendError(session, id, models.ErrorSuperseded)
		case resp.Err != nil:
			sendError(session, id, models.ErrorObject{Code: models.ErrorServerError.Code, Message: resp.Error})
		default:
			sendResult(session, id, resp)
		}
	}()
}

func (s *Server) wsContext(session *melody.Session, id uuid.UUID, raw json.RawMessage) {
	lo, hi := s.engine.Corpus().ChapterRange()
	var params models.ContextParams
	err := validation.ValidateAndUnmarshalCtx(context.Background(), raw, &params, validation.NewContext(lo, hi))
	if err != nil {
		sendError(session, id, invalidParams(err))
		return
	}
	radius := -1
	if params.Radius != nil {
		radius = *params.Radius
	}
	results, err := s.engine.Context(params.Chapter, params.Verse, radius, searcher.Request{
		Query:          params.Query,
		HighlightWords: params.Highlight,
		Dark:           params.Dark,
	})
	if err != nil {
		sendError(session, id, invalidParams(err))
		return
	}
	sendResult(session, id, models.VersesResponse{Results: results})
}

func (s *Server) wsWords(session *melody.Session, id uuid.UUID, raw json.RawMessage) {
	params := models.WordsParams{}
	if len(raw) > 0 {
		if err := validation.ValidateAndUnmarshalCtx(context.Background(), raw, &params, nil); err != nil {
			sendError(session, id, invalidParams(err))
			return
		}
	}
	sendResult(session, id, s.lookupWords(params))
}

func sendResult(session *melody.Session, id uuid.UUID, result any) {
	write(session, models.ResponseObject{JSONRPC: models.JSONRPCVersion, ID: id, Result: result})
}

func sendError(session *melody.Session, id uuid.UUID, errObj models.ErrorObject) {
	log.Debug().Int("code", errObj.Code).Str("message", errObj.Message).Msg("sending error")
	write(session, models.ResponseObject{JSONRPC: models.JSONRPCVersion, ID: id, Error: &errObj})
}

func write(session *melody.Session, resp models.ResponseObject) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("marshalling response")
		return
	}
	if err := session.Write(data); err != nil {
		log.Debug().Err(err).Msg("writing to websocket session")
	}
}
