package mongo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
)

// UnitOfWork runs a function inside a MongoDB multi-document transaction.
// Every repository call made with the callback's context joins the session.
//
// Transactions require a replica set or sharded cluster; against a standalone
// mongod set enabled to false and the callback runs without a session, leaving
// partial writes possible on mid-sequence failure.
type UnitOfWork struct {
	client  *mongo.Client
	enabled bool
	log     zerolog.Logger
}

func NewUnitOfWork(client *mongo.Client, enabled bool, log zerolog.Logger) *UnitOfWork {
	if !enabled {
		log.Warn().Msg("mongo transactions disabled, multi-document operations are not atomic")
	}
	return &UnitOfWork{client: client, enabled: enabled, log: log}
}

// Execute invokes fn, committing on nil and aborting on error. The error fn
// returns passes through unchanged so callers can match domain sentinels.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if !u.enabled {
		return fn(ctx)
	}

	session, err := u.client.StartSession()
	if err != nil {
		return storeErr(fmt.Errorf("start session: %w", err))
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
