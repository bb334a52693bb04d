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

// Package validation checks API request parameters using
// go-playground/validator with custom validators for search requests.
package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mosaid/quransearch/pkg/service/searcher"
)

var (
	ErrMissingParams = errors.New("missing params")
	ErrInvalidParams = errors.New("invalid params")
)

type contextKey struct{}

var validateCtxKey = contextKey{}

// Validator handles validation of API parameters.
type Validator struct {
	validate *validator.Validate
}

// Context carries the corpus bounds for context-aware validators.
type Context struct {
	MinChapter int
	MaxChapter int
}

func NewContext(minChapter, maxChapter int) *Context {
	return &Context{MinChapter: minChapter, MaxChapter: maxChapter}
}

// NewValidator creates a Validator with the custom validators registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("nonblank", validateNonBlank)
	_ = v.RegisterValidation("searchmethod", validateSearchMethod)
	_ = v.RegisterValidationCtx("chapter", validateChapter)

	return &Validator{validate: v}
}

// DefaultValidator is a shared validator instance for API use.
var DefaultValidator = NewValidator()

func (v *Validator) Validate(params any) error {
	return v.ValidateCtx(context.Background(), params, nil)
}

// ValidateCtx validates a struct with context and returns a formatted error.
func (v *Validator) ValidateCtx(ctx context.Context, params any, vctx *Context) error {
	ctxVal := context.WithValue(ctx, validateCtxKey, vctx)
	if err := v.validate.StructCtx(ctxVal, params); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewError(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// ValidateAndUnmarshalCtx unmarshals JSON params and validates them.
// Returns ErrMissingParams if params is empty, ErrInvalidParams if unmarshal
// fails, or an *Error if validation fails.
func ValidateAndUnmarshalCtx[T any](ctx context.Context, params json.RawMessage, dest *T, vctx *Context) error {
	if len(params) == 0 {
		return ErrMissingParams
	}
	if err := json.Unmarshal(params, dest); err != nil {
		return ErrInvalidParams
	}
	return DefaultValidator.ValidateCtx(ctx, dest, vctx)
}

// validateNonBlank rejects strings made only of whitespace.
func validateNonBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateSearchMethod(fl validator.FieldLevel) bool {
	_, err := searcher.ParseMethod(fl.Field().String())
	return err == nil
}

// validateChapter checks the chapter number against the loaded corpus.
func validateChapter(ctx context.Context, fl validator.FieldLevel) bool {
	vctx, ok := ctx.Value(validateCtxKey).(*Context)
	if !ok || vctx == nil {
		return true
	}
	n := fl.Field().Int()
	return n >= int64(vctx.MinChapter) && n <= int64(vctx.MaxChapter)
}
