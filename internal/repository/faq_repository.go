package repository

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"college-qa/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Schema creates the tables the FAQ repository reads and writes.
const Schema = `
CREATE TABLE IF NOT EXISTS faqs (
	id         UUID PRIMARY KEY,
	position   INTEGER NOT NULL,
	question   TEXT NOT NULL,
	answer     TEXT NOT NULL,
	keywords   TEXT[] NOT NULL DEFAULT '{}',
	category   TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS faqs_position_idx ON faqs (position);
CREATE TABLE IF NOT EXISTS contact_info (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var faqColumns = []string{"id", "position", "question", "answer", "keywords", "category", "created_at"}

type FAQRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewFAQRepository(db *pgxpool.Pool, logger *zap.Logger) *FAQRepository {
	return &FAQRepository{
		db:     db,
		logger: logger,
	}
}

func (r *FAQRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Load reads the whole knowledge base in insertion order.
func (r *FAQRepository) Load(ctx context.Context) (*models.KnowledgeBase, error) {
	faqs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	contact, err := r.ContactInfo(ctx)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Knowledge base loaded from database", zap.Int("faqs", len(faqs)))
	return &models.KnowledgeBase{
		FAQs:        faqs,
		ContactInfo: contact,
		LoadedAt:    time.Now(),
	}, nil
}

func (r *FAQRepository) List(ctx context.Context) ([]models.FAQEntry, error) {
	sql, args, err := listFAQsQuery().ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query faqs: %w", err)
	}
	defer rows.Close()

	var faqs []models.FAQEntry
	for rows.Next() {
		var faq models.FAQEntry
		if err := rows.Scan(
			&faq.ID, &faq.Position, &faq.Question, &faq.Answer, &faq.Keywords, &faq.Category, &faq.CreatedAt,
		); err != nil {
			return nil, err
		}
		faqs = append(faqs, faq)
	}
	return faqs, rows.Err()
}

func (r *FAQRepository) ContactInfo(ctx context.Context) (map[string]string, error) {
	sql, args, err := psql.Select("key", "value").From("contact_info").OrderBy("key").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact info: %w", err)
	}
	defer rows.Close()

	contact := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		contact[key] = value
	}
	return contact, rows.Err()
}

// Create appends faq after the current last entry.
func (r *FAQRepository) Create(ctx context.Context, faq *models.FAQEntry) error {
	if faq.ID == uuid.Nil {
		faq.ID = uuid.New()
	}
	if faq.CreatedAt.IsZero() {
		faq.CreatedAt = time.Now()
	}

	sql, args, err := appendFAQQuery(faq).ToSql()
	if err != nil {
		return err
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&faq.Position); err != nil {
		return fmt.Errorf("failed to insert faq: %w", err)
	}
	return nil
}

// ReplaceAll swaps the stored knowledge base for kb in one transaction.
func (r *FAQRepository) ReplaceAll(ctx context.Context, kb *models.KnowledgeBase) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, table := range []string{"faqs", "contact_info"} {
			sql, args, err := psql.Delete(table).ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		if len(kb.FAQs) > 0 {
			sql, args, err := insertFAQsQuery(kb.FAQs, time.Now()).ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("failed to insert faqs: %w", err)
			}
		}

		if len(kb.ContactInfo) > 0 {
			sql, args, err := insertContactQuery(kb.ContactInfo).ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("failed to insert contact info: %w", err)
			}
		}
		return nil
	})
}

func listFAQsQuery() squirrel.SelectBuilder {
	return psql.Select(faqColumns...).From("faqs").OrderBy("position ASC", "created_at ASC")
}

func appendFAQQuery(faq *models.FAQEntry) squirrel.InsertBuilder {
	question, answer, keywords, category := storedText(faq)
	return psql.Insert("faqs").
		Columns(faqColumns...).
		Values(
			faq.ID,
			squirrel.Expr("(SELECT COALESCE(MAX(position), -1) + 1 FROM faqs)"),
			question, answer, keywords, category, faq.CreatedAt,
		).
		Suffix("RETURNING position")
}

func insertFAQsQuery(faqs []models.FAQEntry, now time.Time) squirrel.InsertBuilder {
	builder := psql.Insert("faqs").Columns(faqColumns...)
	for i := range faqs {
		id := faqs[i].ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		question, answer, keywords, category := storedText(&faqs[i])
		builder = builder.Values(id, i, question, answer, keywords, category, now)
	}
	return builder
}

func insertContactQuery(contact map[string]string) squirrel.InsertBuilder {
	builder := psql.Insert("contact_info").Columns("key", "value")
	for _, key := range slices.Sorted(maps.Keys(contact)) {
		builder = builder.Values(sanitizeUTF8(key), sanitizeUTF8(contact[key]))
	}
	return builder
}
