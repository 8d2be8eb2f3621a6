/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/flamego/session"
	"github.com/jackc/pgx/v5"
)

// DefaultSessionLifetime is how long an idle page session is kept.
const DefaultSessionLifetime = 7 * 24 * time.Hour

// SessionConfig contains options for the PostgreSQL session store
type SessionConfig struct {
	// Lifetime is the idle time after which a session is recycled.
	Lifetime time.Duration
	// Encoder defaults to session.GobEncoder.
	Encoder session.Encoder
	// Decoder defaults to session.GobDecoder.
	Decoder session.Decoder
}

// SessionStore keeps page sessions (flash messages and CSRF state) in the
// web_sessions table so they survive restarts.
type SessionStore struct {
	config SessionConfig
}

// SessionIniter returns the session.Initer for the PostgreSQL session store
func SessionIniter() session.Initer {
	return func(ctx context.Context, args ...interface{}) (session.Store, error) {
		var config SessionConfig
		if len(args) > 0 && args[0] != nil {
			var ok bool
			config, ok = args[0].(SessionConfig)
			if !ok {
				return nil, ErrInvalidSessionConfig
			}
		}

		if config.Lifetime <= 0 {
			config.Lifetime = DefaultSessionLifetime
		}
		if config.Encoder == nil {
			config.Encoder = session.GobEncoder
		}
		if config.Decoder == nil {
			config.Decoder = session.GobDecoder
		}

		return &SessionStore{config: config}, nil
	}
}

// The session middleware writes the cookie itself.
func noopIDWriter(http.ResponseWriter, *http.Request, string) {}

// Exist returns true if the session with given ID exists and hasn't expired
func (s *SessionStore) Exist(ctx context.Context, sid string) bool {
	if pool == nil {
		return false
	}

	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM web_sessions WHERE id = $1 AND expires_at > NOW())`,
		sid,
	).Scan(&exists)

	return err == nil && exists
}

// Read returns the session with given ID, or a fresh one with that ID when
// it does not exist or cannot be decoded.
func (s *SessionStore) Read(ctx context.Context, sid string) (session.Session, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	var data []byte
	err := pool.QueryRow(ctx,
		`SELECT data FROM web_sessions WHERE id = $1 AND expires_at > NOW()`,
		sid,
	).Scan(&data)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if len(data) == 0 {
		return session.NewBaseSession(sid, s.config.Encoder, noopIDWriter), nil
	}

	values, err := s.config.Decoder(data)
	if err != nil {
		logger.Warn("Discarding undecodable session", "error", err)
		return session.NewBaseSession(sid, s.config.Encoder, noopIDWriter), nil
	}

	return session.NewBaseSessionWithData(sid, s.config.Encoder, noopIDWriter, values), nil
}

// Destroy deletes session with given ID from the session store completely
func (s *SessionStore) Destroy(ctx context.Context, sid string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	_, err := pool.Exec(ctx, `DELETE FROM web_sessions WHERE id = $1`, sid)
	return err
}

// Touch updates the expiry time of the session with given ID
func (s *SessionStore) Touch(ctx context.Context, sid string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	_, err := pool.Exec(ctx,
		`UPDATE web_sessions SET expires_at = $1 WHERE id = $2`,
		time.Now().Add(s.config.Lifetime),
		sid,
	)
	return err
}

// Save persists session data to the session store
func (s *SessionStore) Save(ctx context.Context, sess session.Session) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	data, err := sess.Encode()
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO web_sessions (id, data, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			data = EXCLUDED.data,
			expires_at = EXCLUDED.expires_at`,
		sess.ID(),
		data,
		time.Now().Add(s.config.Lifetime),
	)

	return err
}

// GC removes expired sessions
func (s *SessionStore) GC(ctx context.Context) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	tag, err := pool.Exec(ctx, `DELETE FROM web_sessions WHERE expires_at < NOW()`)
	if err != nil {
		return err
	}

	if n := tag.RowsAffected(); n > 0 {
		logger.Debug("Removed expired sessions", "count", n)
	}

	return nil
}
