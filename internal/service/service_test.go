package service

import (
	"context"
	"testing"

	"rgpt-backend/internal/pkg/logger"
	"rgpt-backend/internal/repository/unitofwork"
	"rgpt-backend/pkg/chat"
	"rgpt-backend/pkg/database"
	"rgpt-backend/pkg/genai"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires the service layer against an in-memory database, the same
// way the container does against Postgres.
type testEnv struct {
	db         *gorm.DB
	uowFactory unitofwork.RepositoryFactory
	pubSub     *gochannel.GoChannel
	log        logger.ILogger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.GetMigrator(db).Migrate())

	return &testEnv{
		db:         db,
		uowFactory: unitofwork.NewRepositoryFactory(db),
		pubSub:     gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}),
		log:        logger.NewNopLogger(),
	}
}

func (e *testEnv) messageService(t *testing.T, consumer genai.Consumer) IChatMessageService {
	t.Helper()
	return NewChatMessageService(
		e.uowFactory,
		consumer,
		testPersona(),
		e.pubSub,
		nil,
		e.log,
		t.TempDir(),
	)
}

func (e *testEnv) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(model).Count(&count).Error)
	return count
}

// stubConsumer scripts the remote model for dispatcher tests.
type stubConsumer struct {
	replyCalls  int
	streamCalls int

	lastInstruction string
	lastHistory     []genai.Turn
	lastTurn        genai.Turn

	chunks []string
	err    error
	// partialBeforeErr makes ReplyStream emit its chunks before failing,
	// simulating a connection dropped mid-stream.
	partialBeforeErr bool
}

func (f *stubConsumer) joined() string {
	full := ""
	for _, c := range f.chunks {
		full += c
	}
	return full
}

func (f *stubConsumer) Reply(ctx context.Context, instruction string, history []genai.Turn, turn genai.Turn) (string, error) {
	f.replyCalls++
	f.lastInstruction = instruction
	f.lastHistory = history
	f.lastTurn = turn
	if f.err != nil {
		return "", f.err
	}
	return f.joined(), nil
}

func (f *stubConsumer) ReplyStream(ctx context.Context, instruction string, history []genai.Turn, turn genai.Turn, onDelta func(string)) (string, error) {
	f.streamCalls++
	f.lastInstruction = instruction
	f.lastHistory = history
	f.lastTurn = turn

	if f.err != nil && !f.partialBeforeErr {
		return "", f.err
	}

	full := ""
	for _, c := range f.chunks {
		full += c
		if onDelta != nil {
			onDelta(c)
		}
	}
	return full, f.err
}

func testPersona() chat.Persona {
	return chat.DefaultPersona()
}
