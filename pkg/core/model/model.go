// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// It is acceptable to annotate structs in this package with validation
// tags because they only describe the field constraints which must
// hold no matter which adapter persists or transmits a model instance.
package model

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrMultipleMatches indicates that a lookup which is backed by a
// uniqueness invariant found more than one row. It is never a normal
// control-flow branch; seeing it means the stored data is corrupted.
var ErrMultipleMatches = errors.New("multiple rows match a unique key")

// ValidationError collects the violated field constraints of a model
// instance. Keys are the field names as known by model users (i.e., the
// lower-cased names) and values list the violation messages.
type ValidationError map[string][]string

// Error implements the error interface, listing fields in a stable
// (alphabetical) order.
func (ve ValidationError) Error() string {
	names := make([]string, 0, len(ve))
	for name := range ve {
		names = append(names, name)
	}
	slices.Sort(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf(
			"%s: %s", name, strings.Join(ve[name], "; "),
		))
	}
	return "invalid fields: " + strings.Join(parts, ", ")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator instance which knows about
// the custom "slug" tag. It may be registered by adapters too, so
// requests and models obey the same rules.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			return strings.ToLower(f.Name)
		})
		if err := validate.RegisterValidation("slug", validSlug); err != nil {
			panic(err)
		}
	})
	return validate
}

// validateStruct runs the `validate` tags of v and converts possible
// violations into a ValidationError.
func validateStruct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := ValidationError{}
	for _, fe := range verrs {
		ve[fe.Field()] = append(ve[fe.Field()], violation(fe))
	}
	return ve
}

func violation(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure it has at most %s characters", fe.Param())
	case "email":
		return "enter a valid email address"
	case "slug":
		return "enter a valid slug of letters, numbers, underscores or hyphens"
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
