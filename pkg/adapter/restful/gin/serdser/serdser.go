// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser provides the serialization and deserialization
// helpers which are shared by all resources. Request binding failures
// and validation errors are written as a JSON object mapping each
// field name to its violation messages, while other errors are written
// as {"detail": "..."} with the status code which is carried by the
// error (see the cerr package).
package serdser

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/momeni/mysite/pkg/core/model"
)

var registerOnce sync.Once

// RegisterValidations teaches the gin binding validator about the
// "slug" tag and makes it report fields by their json, form, or uri
// names. It is safe to be called multiple times.
func RegisterValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("unexpected gin binding validator engine")
		}
		v.RegisterTagNameFunc(fieldName)
		err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return model.IsSlug(fl.Field().String())
		})
		if err != nil {
			panic(err)
		}
	})
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return strings.ToLower(f.Name)
}

// FieldErrors maps each invalid field name to its violation messages.
// It is written as the body of 400 responses.
type FieldErrors map[string][]string

// Add appends msgs to the name field messages.
func (fe FieldErrors) Add(name string, msgs ...string) {
	fe[name] = append(fe[name], msgs...)
}

// Require adds msg for the name field unless ok holds. It returns ok,
// so dependent checks may be chained with &&.
func (fe FieldErrors) Require(ok bool, name, msg string) bool {
	if !ok {
		fe.Add(name, msg)
	}
	return ok
}

// Bind decodes the request into req using the b binding and validates
// it. On failure, a 400 response is written (or 500 if req could not
// be validated at all) and false is returned.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	err := c.ShouldBindWith(req, b)
	if err == nil {
		return true
	}
	var invalid *validator.InvalidValidationError
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	case errors.As(err, &verrs):
		fe := FieldErrors{}
		for _, ferr := range verrs {
			fe.Add(ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, fe)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	}
	return false
}

// BindURI binds the path params into req. Path params which break
// their rules, such as a non-numeric year in a blog post path, name
// no resource, so a 404 response is written.
func BindURI(c *gin.Context, req any) bool {
	if err := c.ShouldBindUri(req); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return false
	}
	return true
}

// SerErr writes err as a JSON response. A model.ValidationError is
// written as is (with the status of its wrapping cerr.Error, or 400).
// Errors without a status code are reported as internal errors.
func SerErr(c *gin.Context, err error) {
	code := cerr.StatusOf(err)
	if code == 0 {
		code = http.StatusInternalServerError
	}
	var ve model.ValidationError
	if errors.As(err, &ve) {
		if code == http.StatusInternalServerError {
			code = http.StatusBadRequest
		}
		c.JSON(code, ve)
		return
	}
	var ce *cerr.Error
	if errors.As(err, &ce) {
		c.JSON(code, gin.H{
			"detail": ce.Err.Error(),
		})
		return
	}
	c.JSON(code, gin.H{
		"detail": err.Error(),
	})
}
