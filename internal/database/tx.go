package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor runs fn as one unit of work. Transactional reports whether a
// failed fn is rolled back by the store; when false, callers compensate.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	Transactional() bool
}

type mongoTransactor struct {
	client  *mongo.Client
	enabled bool
}

// NewTransactor returns a transactor backed by Mongo sessions. Multi-document
// transactions need a replica set, so they are opt-in.
func NewTransactor(client *mongo.Client, enabled bool) Transactor {
	return &mongoTransactor{client: client, enabled: enabled}
}

func (t *mongoTransactor) Transactional() bool { return t.enabled }

func (t *mongoTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled {
		return fn(ctx)
	}
	sess, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// NoTx runs fn directly; used by tests and tools without a replica set.
type NoTx struct{}

func (NoTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
func (NoTx) Transactional() bool                                                    { return false }
