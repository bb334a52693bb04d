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

package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

const JSONRPCVersion = "2.0"

// WebSocket methods.
const (
	MethodSearch       = "search"
	MethodSearchCancel = "search.cancel"
	MethodContext      = "context"
	MethodWords        = "words"
	MethodVersion      = "version"
)

type RequestObject struct {
	ID      *uuid.UUID      `json:"id,omitempty"`
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type ErrorObject struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type ResponseObject struct {
	Result  any          `json:"result"`
	Error   *ErrorObject `json:"error,omitempty"`
	JSONRPC string       `json:"jsonrpc"`
	ID      uuid.UUID    `json:"id"`
}

var (
	ErrorParseError     = ErrorObject{Code: -32700, Message: "Parse error"}
	ErrorInvalidRequest = ErrorObject{Code: -32600, Message: "Invalid Request"}
	ErrorMethodNotFound = ErrorObject{Code: -32601, Message: "Method not found"}
	ErrorInvalidParams  = ErrorObject{Code: -32602, Message: "Invalid params"}
	ErrorServerError    = ErrorObject{Code: -32000, Message: "Server error"}
	ErrorSuperseded     = ErrorObject{Code: -32001, Message: "Request superseded"}
)
