package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"big5-survey/internal/domain"
)

// SubmissionRepository define el contrato de persistencia para envios.
type SubmissionRepository interface {
	Create(ctx context.Context, sub domain.Submission) error
	GetByID(ctx context.Context, id string) (domain.Submission, error)
	ListRecent(ctx context.Context, limit, offset int) ([]domain.Submission, error)
	ListAll(ctx context.Context) ([]domain.Submission, error)
	Count(ctx context.Context) (int, error)
}

// PgSubmissionRepository implementa SubmissionRepository usando pgxpool.
type PgSubmissionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSubmissionRepository(pool *pgxpool.Pool) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool}
}

func (r *PgSubmissionRepository) Create(ctx context.Context, sub domain.Submission) error {
	const query = `
		INSERT INTO submissions (id, created_at, nickname, email, answers, sums, percentages)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	answers, err := json.Marshal(sub.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	sums, err := json.Marshal(sub.Sums)
	if err != nil {
		return fmt.Errorf("marshal sums: %w", err)
	}
	percentages, err := json.Marshal(sub.Percentages)
	if err != nil {
		return fmt.Errorf("marshal percentages: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		sub.ID,
		sub.CreatedAt,
		nullable(sub.Nickname),
		nullable(sub.Email),
		answers,
		sums,
		percentages,
	)
	return err
}

func (r *PgSubmissionRepository) GetByID(ctx context.Context, id string) (domain.Submission, error) {
	const query = `
		SELECT id, created_at, nickname, email, answers, sums, percentages
		FROM submissions
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	sub, err := scanSubmission(row)
	if err != nil {
		return domain.Submission{}, err
	}
	return sub, nil
}

func (r *PgSubmissionRepository) ListRecent(ctx context.Context, limit, offset int) ([]domain.Submission, error) {
	const query = `
		SELECT id, created_at, nickname, email, answers, sums, percentages
		FROM submissions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

func (r *PgSubmissionRepository) ListAll(ctx context.Context) ([]domain.Submission, error) {
	const query = `
		SELECT id, created_at, nickname, email, answers, sums, percentages
		FROM submissions
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

func (r *PgSubmissionRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (domain.Submission, error) {
	var (
		sub         domain.Submission
		nickname    *string
		email       *string
		answers     []byte
		sums        []byte
		percentages []byte
	)
	if err := row.Scan(
		&sub.ID,
		&sub.CreatedAt,
		&nickname,
		&email,
		&answers,
		&sums,
		&percentages,
	); err != nil {
		return domain.Submission{}, err
	}
	if nickname != nil {
		sub.Nickname = *nickname
	}
	if email != nil {
		sub.Email = *email
	}
	if err := json.Unmarshal(answers, &sub.Answers); err != nil {
		return domain.Submission{}, fmt.Errorf("unmarshal answers: %w", err)
	}
	if err := json.Unmarshal(sums, &sub.Sums); err != nil {
		return domain.Submission{}, fmt.Errorf("unmarshal sums: %w", err)
	}
	if err := json.Unmarshal(percentages, &sub.Percentages); err != nil {
		return domain.Submission{}, fmt.Errorf("unmarshal percentages: %w", err)
	}
	return sub, nil
}

func collectSubmissions(rows pgx.Rows) ([]domain.Submission, error) {
	var subs []domain.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
