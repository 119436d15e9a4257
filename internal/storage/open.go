// Package storage picks the configured services.Store implementation.
package storage

import (
	"context"
	"fmt"

	"wanderlust/internal/config"
	"wanderlust/internal/mongostore"
	"wanderlust/internal/repos"
	"wanderlust/internal/services"
)

// Open connects to the store named by cfg.Store. The returned func releases
// the connection.
func Open(ctx context.Context, cfg config.Config) (services.Store, func(), error) {
	switch cfg.Store {
	case "", "sqlite":
		db, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		return repos.NewStore(db), func() { _ = db.Close() }, nil
	case "mongo":
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		st := mongostore.New(client, cfg.MongoDB)
		st.UseTransactions = cfg.MongoTx
		return st, func() { _ = client.Disconnect(context.Background()) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
