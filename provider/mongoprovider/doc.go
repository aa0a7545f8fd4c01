// Package mongoprovider stores records in a MongoDB collection, one
// document per accepted log call with the fields timestamp, level and
// message.
//
// The target setting is a mapping:
//
//	provider.Settings{
//	    "target": map[string]any{
//	        "connectionString": "mongodb://user:secret@db:27017",
//	        "databaseName":     "applog",
//	        "collectionName":   "api",
//	        "connectOptions":   map[string]any{"timeout": 500},
//	    },
//	}
//
// The collection defaults to the logger name and the timeout, in
// milliseconds, bounds connecting, the initial ping and every insert.
// Connection failures are reported with the password redacted.
package mongoprovider
