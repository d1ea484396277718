// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds backend dependencies for the console.
//
// The console's domain data lives behind the remote CyVox API, so the only
// database here is the optional MongoDB used for login audit records. Both
// fields are nil when auditing is disabled.
type DBDeps struct {
	AuditMongoClient   *mongo.Client
	AuditMongoDatabase *mongo.Database
}
