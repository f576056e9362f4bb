// Package mongo persiste eventos y usuarios en MongoDB, el document store
// natural de este dominio. Se selecciona con MONGO_URI en el router.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("not found")

// Open conecta y hace ping con timeout corto, mismo contrato que el Open de
// postgres: error temprano si el store no está.
func Open(uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	if dbName == "" {
		dbName = "eventhorizon"
	}
	return client.Database(dbName), nil
}
