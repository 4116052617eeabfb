package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"bevstock/internal/core/id"
	"bevstock/pkg/logger"
)

// AuditAction represents the type of audited operation.
type AuditAction string

const (
	AuditActionCreate   AuditAction = "create"
	AuditActionUpdate   AuditAction = "update"
	AuditActionAddStock AuditAction = "add_stock"
)

// CompressionAlgo specifies the compression applied to the payload.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// AuditEntry is a single audit log record. Sale mutations and purchase
// batches write one entry each so stock movements stay reconstructable.
type AuditEntry struct {
	ID              id.ID           `db:"id"`
	EntityType      string          `db:"entity_type"`
	EntityID        id.ID           `db:"entity_id"`
	Action          AuditAction     `db:"action"`
	Payload         []byte          `db:"payload"`
	CompressionAlgo CompressionAlgo `db:"compression_algo"`
	CreatedAt       time.Time       `db:"created_at"`
}

const auditTable = "audit_log"

// AuditLog records audit entries, compressing large payloads with zstd.
type AuditLog struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	compressThreshold int // bytes
}

// NewAuditLog creates a new audit log writer.
func NewAuditLog(txManager *TxManager) (*AuditLog, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	return &AuditLog{
		txManager:         txManager,
		encoder:           encoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Record writes an audit entry for an entity mutation. The payload is an
// arbitrary JSON-serializable snapshot of the change. Joins the caller's
// transaction when one is active, so a rolled-back operation leaves no
// audit trace either.
func (a *AuditLog) Record(ctx context.Context, entityType string, entityID id.ID, action AuditAction, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	algo := CompressionNone
	if len(raw) > a.compressThreshold {
		raw = a.encoder.EncodeAll(raw, nil)
		algo = CompressionZstd
	}

	entry := AuditEntry{
		ID:              id.New(),
		EntityType:      entityType,
		EntityID:        entityID,
		Action:          action,
		Payload:         raw,
		CompressionAlgo: algo,
		CreatedAt:       time.Now().UTC(),
	}

	querier := a.txManager.GetQuerier(ctx)
	_, err = querier.Exec(ctx,
		`INSERT INTO `+auditTable+` (id, entity_type, entity_id, action, payload, compression_algo, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.EntityType, entry.EntityID, entry.Action, entry.Payload, entry.CompressionAlgo, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	logger.Debug(ctx, "audit entry recorded",
		"entity_type", entityType,
		"entity_id", entityID,
		"action", action,
	)

	return nil
}
