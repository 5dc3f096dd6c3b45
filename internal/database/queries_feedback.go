package database

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Feedback kinds
const (
	KindComplaint  = "complaint"
	KindSuggestion = "suggestion"
	KindReview     = "review"
)

const MaxFeedbackLength = 2000

// SubmitComplaint stores a complaint
func (db *DB) SubmitComplaint(ctx context.Context, userID, text string) (*Feedback, error) {
	return db.submitText(ctx, KindComplaint, userID, text)
}

// SubmitSuggestion stores a suggestion
func (db *DB) SubmitSuggestion(ctx context.Context, userID, text string) (*Feedback, error) {
	return db.submitText(ctx, KindSuggestion, userID, text)
}

// SubmitRating stores a review. Ratings outside 1-5 are rejected.
func (db *DB) SubmitRating(ctx context.Context, userID string, rating int, comment string) (*Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating %d must be 1-5: %w", rating, ErrInvalidInput)
	}
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) > MaxFeedbackLength {
		return nil, fmt.Errorf("comment longer than %d characters: %w", MaxFeedbackLength, ErrInvalidInput)
	}
	return db.insertFeedback(ctx, KindReview, userID, comment, &rating)
}

// ListFeedback returns the newest feedback of a kind. An empty kind lists all.
func (db *DB) ListFeedback(ctx context.Context, kind string, limit int) ([]Feedback, error) {
	if limit <= 0 {
		limit = 5
	}

	query := `SELECT id, kind, user_id, body, rating, created_at FROM feedback`
	args := []interface{}{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var items []Feedback
	for rows.Next() {
		var f Feedback
		var rating *int
		if err := rows.Scan(&f.ID, &f.Kind, &f.UserID, &f.Body, &rating, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		f.Rating = rating
		items = append(items, f)
	}
	return items, rows.Err()
}

func (db *DB) submitText(ctx context.Context, kind, userID, text string) (*Feedback, error) {
	text = strings.TrimSpace(text)
	if text == "" || utf8.RuneCountInString(text) > MaxFeedbackLength {
		return nil, fmt.Errorf("%s must be 1-%d characters: %w", kind, MaxFeedbackLength, ErrInvalidInput)
	}
	return db.insertFeedback(ctx, kind, userID, text, nil)
}

func (db *DB) insertFeedback(ctx context.Context, kind, userID, body string, rating *int) (*Feedback, error) {
	now := db.timestamp()
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO feedback (kind, user_id, body, rating, created_at) VALUES (?, ?, ?, ?, ?)`,
		kind, userID, body, rating, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert %s: %w", kind, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback ID: %w", err)
	}

	return &Feedback{
		ID:        int(id),
		Kind:      kind,
		UserID:    userID,
		Body:      body,
		Rating:    rating,
		CreatedAt: now,
	}, nil
}
