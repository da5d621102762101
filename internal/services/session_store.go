package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/BlockyAit/personal-list-site/internal/models"
)

const sessionKeyPrefix = "session"

type sessionStoreImpl struct {
	logger zerolog.Logger
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(
	logger zerolog.Logger,
	client *redis.Client,
	ttl time.Duration,
) SessionStore {
	return &sessionStoreImpl{
		logger: logger,
		client: client,
		ttl:    ttl,
	}
}

func (s *sessionStoreImpl) Create(ctx context.Context) (*models.Session, error) {
	sessionUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate session uuid")
		return nil, err
	}

	csrfToken, err := generateCSRFToken()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate csrf token")
		return nil, err
	}

	session := &models.Session{
		ID:        sessionUUID.String(),
		CSRFToken: csrfToken,
		CreatedAt: time.Now(),
	}

	err = s.save(ctx, session)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to save session")
		return nil, err
	}

	s.logger.Debug().
		Str("session_id", session.ID).
		Msg("created session")
	return session, nil
}

func (s *sessionStoreImpl) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expired keys are evicted by the redis TTL,
			// so expiry and absence look the same here.
			return nil, ErrSessionNotFound
		}

		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to get session")
		return nil, err
	}

	session := new(models.Session)
	err = json.Unmarshal(data, session)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to unmarshal session")
		return nil, err
	}
	return session, nil
}

func (s *sessionStoreImpl) SetToken(ctx context.Context, sessionID, token string) error {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	session.Token = token

	err = s.save(ctx, session)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to save session")
		return err
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Msg("bound token to session")
	return nil
}

func (s *sessionStoreImpl) Delete(ctx context.Context, sessionID string) error {
	err := s.client.Del(ctx, sessionKey(sessionID)).Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to delete session")
		return err
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Msg("deleted session")
	return nil
}

func (s *sessionStoreImpl) save(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.client.Set(ctx, sessionKey(session.ID), data, s.ttl).Err()
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", sessionKeyPrefix, sessionID)
}

func generateCSRFToken() (string, error) {
	const length = 32
	bytes := make([]byte, length)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
