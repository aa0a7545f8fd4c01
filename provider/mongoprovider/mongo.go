package mongoprovider

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/philipp01105/slogger/core"
	"github.com/philipp01105/slogger/formatter"
	"github.com/philipp01105/slogger/provider"
)

// Kind is the provider kind this package registers under
const Kind = "mongodb"

// Target keys
const (
	KeyConnectionString = "connectionString"
	KeyDatabaseName     = "databaseName"
	KeyCollectionName   = "collectionName"
	KeyConnectOptions   = "connectOptions"
	KeyTimeout          = "timeout"
)

const (
	DefaultConnectionString = "mongodb://127.0.0.1:27017"
	DefaultDatabaseName     = "applog"
	DefaultTimeout          = time.Second
)

// Defaults returns the MongoDB provider's settings defaults. The collection
// defaults to the logger name.
func Defaults() provider.Settings {
	return provider.Settings{
		provider.KeyTarget: map[string]any{
			KeyConnectionString: DefaultConnectionString,
			KeyDatabaseName:     DefaultDatabaseName,
			KeyConnectOptions: map[string]any{
				KeyTimeout: int(DefaultTimeout / time.Millisecond),
			},
		},
	}
}

// Target describes where records are inserted
type Target struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// TargetFrom resolves the target mapping of s, filling missing keys with
// their defaults.
func TargetFrom(name string, s provider.Settings) Target {
	t := s.Map(provider.KeyTarget)
	return Target{
		URI:        strings.TrimRight(t.String(KeyConnectionString, DefaultConnectionString), "/"),
		Database:   t.String(KeyDatabaseName, DefaultDatabaseName),
		Collection: t.String(KeyCollectionName, name),
		Timeout:    t.Map(KeyConnectOptions).Millis(KeyTimeout, DefaultTimeout),
	}
}

// collection is the subset of *mongo.Collection the provider uses
type collection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// Provider inserts one document per record
type Provider struct {
	client  *mongo.Client
	coll    collection
	payload formatter.PayloadFunc
	timeout time.Duration
}

// New is the provider.Factory for the mongodb kind. It connects and pings
// the server within the configured timeout.
func New(name string, s provider.Settings) (provider.Provider, error) {
	t := TargetFrom(name, s)

	ctx, cancel := context.WithTimeout(context.Background(), t.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(t.URI).
		SetConnectTimeout(t.Timeout).
		SetServerSelectionTimeout(t.Timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, provider.NewInitError(Kind, name, fmt.Errorf("could not connect to %s: %w", redact(t.URI), err))
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, provider.NewInitError(Kind, name, fmt.Errorf("could not connect to %s: %w", redact(t.URI), err))
	}

	p := newProvider(client.Database(t.Database).Collection(t.Collection), s.Formatter(), t.Timeout)
	p.client = client
	return p, nil
}

func newProvider(coll collection, payload formatter.PayloadFunc, timeout time.Duration) *Provider {
	return &Provider{
		coll:    coll,
		payload: payload,
		timeout: timeout,
	}
}

// Document builds the stored shape of a record
func Document(rec *core.Record, payload formatter.PayloadFunc) bson.D {
	return bson.D{
		{Key: "timestamp", Value: rec.Time},
		{Key: "level", Value: rec.Level.String()},
		{Key: "message", Value: formatter.RenderPayload(rec.Payload, payload)},
	}
}

// Write inserts the record as a document
func (p *Provider) Write(rec *core.Record) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	_, err := p.coll.InsertOne(ctx, Document(rec, p.payload))
	return err
}

// Close disconnects from the server
func (p *Provider) Close() error {
	if p.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	return p.client.Disconnect(ctx)
}

// redact hides credentials in a connection string
func redact(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "<invalid connection string>"
	}
	return u.Redacted()
}
