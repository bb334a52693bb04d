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

// Package client calls the JSON-RPC methods of a running server over its
// WebSocket.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mosaid/quransearch/pkg/api/models"
	"github.com/mosaid/quransearch/pkg/config"
	"github.com/rs/zerolog/log"
)

var (
	ErrRequestTimeout   = errors.New("request timed out")
	ErrInvalidParams    = errors.New("invalid params")
	ErrRequestCancelled = errors.New("request cancelled")
)

const WSPath = "/api/ws"

// RPCError is an error object returned by the server.
type RPCError struct {
	Message string
	Code    int
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

type response struct {
	Error   *models.ErrorObject `json:"error"`
	JSONRPC string              `json:"jsonrpc"`
	Result  json.RawMessage     `json:"result"`
	ID      uuid.UUID           `json:"id"`
}

type Client struct {
	url     string
	timeout time.Duration
}

// New returns a client for the server listening on addr (host:port).
func New(addr string) *Client {
	u := url.URL{Scheme: "ws", Host: addr, Path: WSPath}
	return &Client{url: u.String(), timeout: config.APIRequestTimeout}
}

// Local returns a client for the server configured in cfg.
func Local(cfg *config.Instance) *Client {
	host := cfg.APIListen()
	if ip := net.ParseIP(host); ip != nil && ip.IsUnspecified() {
		host = "localhost"
	}
	return New(net.JoinHostPort(host, strconv.Itoa(cfg.APIPort())))
}

// Call sends one request and waits for the response with the same ID.
// params must be empty or valid JSON. The raw result is returned.
func (c *Client) Call(ctx context.Context, method, params string) (json.RawMessage, error) {
	id := uuid.New()
	req := models.RequestObject{
		JSONRPC: models.JSONRPCVersion,
		ID:      &id,
		Method:  method,
	}
	switch {
	case params == "":
	case json.Valid([]byte(params)):
		req.Params = json.RawMessage(params)
	default:
		return nil, ErrInvalidParams
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Debug().Err(err).Msg("closing websocket")
		}
	}()

	done := make(chan *response, 1)
	go func() {
		defer close(done)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				log.Debug().Err(err).Msg("reading websocket message")
				return
			}
			var m response
			if err := json.Unmarshal(msg, &m); err != nil || m.JSONRPC != models.JSONRPCVersion {
				continue
			}
			if m.ID != id {
				continue
			}
			done <- &m
			return
		}
	}()

	if err := conn.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	select {
	case m := <-done:
		if m == nil {
			return nil, errors.New("connection closed before response")
		}
		if m.Error != nil {
			return nil, &RPCError{Code: m.Error.Code, Message: m.Error.Message}
		}
		return m.Result, nil
	case <-ctx.Done():
		_ = conn.Close()
		<-done
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrRequestTimeout
		}
		return nil, ErrRequestCancelled
	}
}
