package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bullyguard/bullyguard/internal/core/domain"
)

type HistoryRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

type historyRow struct {
	ID    int64   `db:"id"`
	UID   string  `db:"uid"`
	Text  string  `db:"text"`
	Label string  `db:"label"`
	Prob  float64 `db:"prob"`
	Time  string  `db:"time"`
}

func (r *HistoryRepository) Append(ctx context.Context, rec *domain.HistoryRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO history (uid, text, label, prob, time) VALUES (?, ?, ?, ?, ?)`,
		rec.UserID, rec.Text, string(rec.Label), rec.Confidence, rec.FormattedTimestamp())
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert history id: %w", err)
	}
	rec.ID = strconv.FormatInt(id, 10)
	return nil
}

func (r *HistoryRepository) ListFor(ctx context.Context, userID string) ([]*domain.HistoryRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []historyRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT id, uid, text, label, prob, time FROM history WHERE uid = ? ORDER BY id`, userID); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	out := make([]*domain.HistoryRecord, 0, len(rows))
	for _, row := range rows {
		ts, err := time.ParseInLocation(domain.TimestampLayout, row.Time, time.Local)
		if err != nil {
			return nil, fmt.Errorf("history %d time: %w", row.ID, err)
		}
		out = append(out, &domain.HistoryRecord{
			ID:         strconv.FormatInt(row.ID, 10),
			UserID:     row.UID,
			Text:       row.Text,
			Label:      domain.Label(row.Label),
			Confidence: row.Prob,
			Timestamp:  ts,
		})
	}
	return out, nil
}

func (r *HistoryRepository) CountByLabel(ctx context.Context, userID string, label domain.Label) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int
	if err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM history WHERE uid = ? AND label = ?`, userID, string(label)); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

func (r *HistoryRepository) TextsFor(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	texts := []string{}
	if err := r.db.SelectContext(ctx, &texts,
		`SELECT text FROM history WHERE uid = ? ORDER BY id`, userID); err != nil {
		return nil, fmt.Errorf("history texts: %w", err)
	}
	return texts, nil
}
