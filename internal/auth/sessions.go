package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/liftly/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "liftly-session||"
	sessionsSetKey   = "liftly-sessions"
)

var ErrSessionNotFound = errors.New("login session not found")

type LoginSession struct {
	ID        string
	AccountID int
	CreatedAt time.Time
}

// SessionStore keeps login sessions in redis. Each session is stored
// under its own key, and all session IDs are tracked in a set so stale
// ones can be cleaned up.
type SessionStore struct {
	redisClient *redis.Client
	ttl         time.Duration
	now         func() time.Time
	// ability to inject random string generator func for session IDs (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewSessionStore(ttl time.Duration, redisClient *redis.Client) *SessionStore {
	return &SessionStore{
		ttl:            ttl,
		redisClient:    redisClient,
		now:            time.Now,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func sessionValue(accountID int, createdAt time.Time) string {
	return fmt.Sprintf("%d|%d", accountID, createdAt.Unix())
}

func parseSessionValue(id, val string) (*LoginSession, error) {
	accountIDStr, createdAtStr, found := strings.Cut(val, "|")
	if !found {
		return nil, fmt.Errorf("malformed session value: %q", val)
	}
	accountID, err := strconv.Atoi(accountIDStr)
	if err != nil {
		return nil, fmt.Errorf("session account id: %w", err)
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("session created at: %w", err)
	}
	return &LoginSession{
		ID:        id,
		AccountID: accountID,
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}

func (s *SessionStore) Create(ctx context.Context, accountID int, createdAt time.Time) (string, error) {
	id, err := s.RandStringFunc(24)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + id
	cmdSet := s.redisClient.Set(ctx, sessionKey, sessionValue(accountID, createdAt), s.ttl)
	if err := cmdSet.Err(); err != nil {
		return "", err
	}

	// add session to the set of sessions
	cmdSAdd := s.redisClient.SAdd(ctx, sessionsSetKey, id)
	if err := cmdSAdd.Err(); err != nil {
		return "", err
	}

	return id, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*LoginSession, error) {
	cmd := s.redisClient.Get(ctx, sessionKeyPrefix+id)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	session, err := parseSessionValue(id, cmd.Val())
	if err != nil {
		return nil, err
	}

	if s.now().Sub(session.CreatedAt) > s.ttl {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// Delete removes the session. Returns false if there was nothing to remove.
func (s *SessionStore) Delete(ctx context.Context, id string) (bool, error) {
	cmdDel := s.redisClient.Del(ctx, sessionKeyPrefix+id)
	if err := cmdDel.Err(); err != nil {
		return false, err
	}

	cmdSRem := s.redisClient.SRem(ctx, sessionsSetKey, id)
	if err := cmdSRem.Err(); err != nil {
		return false, err
	}

	return cmdDel.Val() > 0, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (s *SessionStore) ScanAndClean(ctx context.Context) {
	cmd := s.redisClient.SMembers(ctx, sessionsSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! session store, scan and clean, get sessions: %s", err)
		return
	}

	sessionIDs := cmd.Val()
	if len(sessionIDs) == 0 {
		log.Debugln("=> session store, scan and clean abort, no sessions")
		return
	}

	log.Infof("=> session store, scan and clean [%d sessions] start ...", len(sessionIDs))
	var toRemove []string
	for _, id := range sessionIDs {
		cmd := s.redisClient.Get(ctx, sessionKeyPrefix+id)
		if err := cmd.Err(); err != nil {
			if errors.Is(err, redis.Nil) {
				// expired by redis already, only the set entry is left
				toRemove = append(toRemove, id)
				continue
			}
			log.Errorf("=> session store, scan and clean session %s: %s", id, err)
			continue
		}

		session, err := parseSessionValue(id, cmd.Val())
		if err != nil {
			log.Errorf("=> session store, scan and clean session %s: %s", id, err)
			continue
		}

		if s.now().Sub(session.CreatedAt) > s.ttl {
			toRemove = append(toRemove, id)
		}
	}

	for _, id := range toRemove {
		if _, err := s.Delete(ctx, id); err != nil {
			log.Errorf("=> session store, clean session %s: %s", id, err)
		}
	}
	log.Infof("=> session store, scan and clean done, removed %d sessions", len(toRemove))
}
