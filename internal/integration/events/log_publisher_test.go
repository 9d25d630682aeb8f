package events

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

func TestLogPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	publisher := NewLogPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

	event := entity.NewLedgerEvent(entity.EventTransactionPosted, time.Now())
	txID := uuid.New()
	accountID := uuid.New()
	event.TransactionID = &txID
	event.AccountID = &accountID
	event.Balance = "800.00"
	event.Attributes["source"] = "manual"

	require.NoError(t, publisher.Publish(context.Background(), event))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Ledger event", record["msg"])
	assert.Equal(t, string(entity.EventTransactionPosted), record["type"])
	assert.Equal(t, txID.String(), record["transaction_id"])
	assert.Equal(t, "800.00", record["balance"])
	assert.Equal(t, "manual", record["source"])
}
