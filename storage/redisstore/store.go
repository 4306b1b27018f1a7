// Package redisstore keeps portal sessions in Redis so they survive restarts and are shared between instances.
package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/trezcool/gateway/core"
	"github.com/trezcool/gateway/core/session"
)

const (
	keyPrefix     = "session:" // string: session:{id} -> JSON session
	maxTxAttempts = 10
)

type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ session.Store = (*SessionStore)(nil)

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Connect opens a client from the session config and checks it answers.
func Connect(ctx context.Context, conf core.SessionConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.RedisAddr,
		Password: conf.RedisPassword,
		DB:       conf.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "pinging redis at %s", conf.RedisAddr)
	}
	return client, nil
}

func key(id string) string {
	return keyPrefix + id
}

func (st *SessionStore) Create(ctx context.Context, s session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	ok, err := st.client.SetNX(ctx, key(s.ID), data, st.ttl).Result()
	if err != nil {
		return errors.Wrap(err, "saving session")
	}
	if !ok {
		return errors.Errorf("session %s already exists", s.ID)
	}
	return nil
}

func get(ctx context.Context, cmd redis.Cmdable, id string) (session.Session, error) {
	data, err := cmd.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return session.Session{}, session.ErrNotFound
	}
	if err != nil {
		return session.Session{}, errors.Wrap(err, "loading session")
	}
	var s session.Session
	if err = json.Unmarshal(data, &s); err != nil {
		return session.Session{}, errors.Wrap(err, "decoding session")
	}
	return s, nil
}

func (st *SessionStore) Get(ctx context.Context, id string) (session.Session, error) {
	return get(ctx, st.client, id)
}

// Update applies fn inside an optimistic transaction, retrying when another writer got there first.
func (st *SessionStore) Update(ctx context.Context, id string, fn func(s *session.Session) error) (session.Session, error) {
	var result session.Session
	txf := func(tx *redis.Tx) error {
		s, err := get(ctx, tx, id)
		if err != nil {
			return err
		}
		if err = fn(&s); err != nil {
			return err
		}
		s.ID = id
		s.UpdatedAt = session.NowFunc().UTC()

		data, err := json.Marshal(s)
		if err != nil {
			return errors.Wrap(err, "encoding session")
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key(id), data, st.ttl)
			return nil
		})
		if err == nil {
			result = s
		}
		return err
	}

	for i := 0; i < maxTxAttempts; i++ {
		err := st.client.Watch(ctx, txf, key(id))
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return session.Session{}, err
		}
		return result, nil
	}
	return session.Session{}, errors.Wrapf(session.ErrConflict, "updating session %s", id)
}

func (st *SessionStore) Delete(ctx context.Context, id string) error {
	if err := st.client.Del(ctx, key(id)).Err(); err != nil {
		return errors.Wrap(err, "deleting session")
	}
	return nil
}
