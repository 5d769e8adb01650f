package retrieval

import (
	"context"
	"log"
	"testing"

	"github.com/siherrmann/adam/database"
	"github.com/siherrmann/adam/helper"
	adamsql "github.com/siherrmann/adam/sql"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var dbPort string

func TestMain(m *testing.M) {
	var teardown func(ctx context.Context, opts ...testcontainers.TerminateOption) error
	var err error
	teardown, dbPort, err = helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("error starting postgres container: %v", err)
	}

	m.Run()

	if teardown != nil && teardown(context.Background()) != nil {
		log.Fatalf("error tearing down postgres container: %v", err)
	}
}

func initHandlers(t *testing.T) (*database.ConversationsDBHandler, *database.EntitiesDBHandler) {
	helper.SetTestDatabaseConfigEnvs(t, dbPort)
	dbConfig, err := helper.NewDatabaseConfiguration()
	require.NoError(t, err, "failed to create database configuration")
	db := helper.NewTestDatabase(dbConfig)

	err = adamsql.Init(db.Instance)
	require.NoError(t, err)

	entities, err := database.NewEntitiesDBHandler(db, true)
	require.NoError(t, err)
	conversations, err := database.NewConversationsDBHandler(db, true)
	require.NoError(t, err)

	_, err = db.Instance.Exec(`DELETE FROM conversations`)
	require.NoError(t, err)
	_, err = db.Instance.Exec(`DELETE FROM entities`)
	require.NoError(t, err)

	return conversations, entities
}
