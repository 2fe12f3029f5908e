// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("allocstatus", func(fl validator.FieldLevel) bool {
		return IsKnownStatus(fl.Field().String())
	})
}

// IsKnownStatus reports whether s is one of the five allocation statuses.
func IsKnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusInTransit, StatusDelivered:
		return true
	}
	return false
}

// IsDecision reports whether s is a status the dispatcher may set.
func IsDecision(s string) bool {
	return s == StatusApproved || s == StatusRejected
}

// Validate runs struct-tag validation and flattens the result into a single
// readable error.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(parts, "; "))
}
