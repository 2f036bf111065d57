package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/Crystallen1/lyricsWordle/internal/game"
	"github.com/Crystallen1/lyricsWordle/internal/store"
)

const sessionCookieName = "lyrics_session"

// ctxSessionKey is the context key for the player's session id.
type ctxSessionKey struct{}

// withSession resolves the player's session from the bearer token or
// cookie, creating a fresh session (and cookie) when there is none or it
// has expired. The session id is placed in the request context.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := s.parseSessionToken(tokenFromRequest(r))
		if id == "" || !s.sessionExists(r.Context(), id) {
			var err error
			id, err = s.newSession(w, r)
			if err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("create session")
				writeJSON(w, http.StatusInternalServerError, errorRes{Error: "session_failed"})
				return
			}
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxSessionKey{}, id)))
	})
}

// withPlayer runs fn against the request's session.
func (s *Server) withPlayer(r *http.Request, fn func(*game.Session) error) error {
	id, _ := r.Context().Value(ctxSessionKey{}).(string)
	return s.opts.Sessions.Do(r.Context(), id, fn)
}

func (s *Server) sessionExists(ctx context.Context, id string) bool {
	err := s.opts.Sessions.Do(ctx, id, func(*game.Session) error { return nil })
	return !errors.Is(err, store.ErrNotFound)
}

// newSession registers a session and hands its token to the client.
func (s *Server) newSession(w http.ResponseWriter, r *http.Request) (string, error) {
	id := uuid.NewString()
	sess := game.NewSession(id, game.Deps{
		Catalog:   s.opts.Catalog,
		Board:     s.opts.Board,
		Rand:      s.opts.Rand,
		DailySalt: s.opts.DailySalt,
	})
	if err := s.opts.Sessions.Save(r.Context(), sess); err != nil {
		return "", err
	}
	tok, exp, err := s.signSessionToken(id)
	if err != nil {
		return "", err
	}
	s.setSessionCookie(w, tok, exp)
	w.Header().Set("X-Session-Token", tok)
	hlog.FromRequest(r).Debug().Str("session", id).Msg("session created")
	return id, nil
}

// signSessionToken creates an HS256 JWT carrying the session id.
func (s *Server) signSessionToken(id string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.secret()))
	return ss, exp, err
}

// parseSessionToken returns the session id of a valid token, or "".
func (s *Server) parseSessionToken(tok string) string {
	if tok == "" {
		return ""
	}
	var claims jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.secret()), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return ""
	}
	return claims.Subject
}

func (s *Server) secret() string {
	if s.opts.SessionSecret == "" {
		return "dev_secret_change_me"
	}
	return s.opts.SessionSecret
}

// setSessionCookie writes the session cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.SecureCookies {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// tokenFromRequest extracts a bearer token from the Authorization header
// or the session cookie.
func tokenFromRequest(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}
