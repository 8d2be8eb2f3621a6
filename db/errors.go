/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "errors"

var (
	ErrDatabaseURLEnvVarNotSet          = errors.New("DATABASE_URL environment variable is not set")
	ErrDatabaseNameNotSpecified         = errors.New("database name not specified in connection string")
	ErrDatabaseConnectionNotInitialized = errors.New("database connection not initialized")
	ErrTrackingProfileNotFound          = errors.New("tracking profile not found")
	ErrAssessmentNotFound               = errors.New("assessment not found")
	ErrProfileNameRequired              = errors.New("profile name is required")
	ErrInvalidSessionConfig             = errors.New("invalid session store config")
)
