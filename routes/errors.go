/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errMissingNumber   = errors.New("missing number")
	errInvalidNumber   = errors.New("invalid number")
	errInvalidJSONBody = errors.New("invalid JSON body")
	errInvalidChoice   = errors.New("invalid choice")
)
