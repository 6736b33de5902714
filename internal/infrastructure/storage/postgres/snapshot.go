package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"fakturator/internal/domain/sharing"
)

// CompressionAlgo specifies the compression algorithm used.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// compressThreshold is the payload size above which snapshots are
// zstd-compressed. Small invoices stay plain for cheap reads.
const compressThreshold = 4 * 1024

// Compile-time check that the store implements the domain contract.
var _ sharing.SnapshotStore = (*ShareSnapshotStore)(nil)

// ShareSnapshotStore persists the rendered public payloads of shared
// documents. The archived payload is what PDF and email consumers render,
// so it must survive later edits to the live document.
type ShareSnapshotStore struct {
	txManager *TxManager
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
}

// NewShareSnapshotStore creates a snapshot store.
func NewShareSnapshotStore(txManager *TxManager) (*ShareSnapshotStore, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &ShareSnapshotStore{
		txManager: txManager,
		encoder:   encoder,
		decoder:   decoder,
	}, nil
}

// Close releases the compression codecs.
func (s *ShareSnapshotStore) Close() {
	s.encoder.Close()
	s.decoder.Close()
}

// SaveSnapshot stores (or replaces) the payload archived for a token.
func (s *ShareSnapshotStore) SaveSnapshot(ctx context.Context, token string, payload []byte) error {
	algo := CompressionNone
	stored := payload
	if len(payload) > compressThreshold {
		stored = s.encoder.EncodeAll(payload, nil)
		algo = CompressionZstd
	}

	sql := `
		INSERT INTO share_snapshots (token, payload, compression_algo, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (token) DO UPDATE
		SET payload = EXCLUDED.payload,
		    compression_algo = EXCLUDED.compression_algo,
		    created_at = EXCLUDED.created_at
	`

	querier := s.txManager.GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql, token, stored, algo, time.Now().UTC())
	if err != nil {
		return TranslateError(err, "snapshot", token)
	}
	return nil
}

// GetSnapshot returns the archived payload for a token.
func (s *ShareSnapshotStore) GetSnapshot(ctx context.Context, token string) ([]byte, error) {
	sql := `
		SELECT payload, compression_algo
		FROM share_snapshots
		WHERE token = $1
	`

	var payload []byte
	var algo CompressionAlgo
	err := s.txManager.GetQuerier(ctx).QueryRow(ctx, sql, token).Scan(&payload, &algo)
	if err != nil {
		return nil, TranslateError(err, "snapshot", token)
	}

	if algo == CompressionZstd {
		decompressed, err := s.decoder.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress snapshot: %w", err)
		}
		return decompressed, nil
	}
	return payload, nil
}
