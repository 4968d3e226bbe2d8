package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// MaxSequence largest sequence number a scheme hands out
const MaxSequence = math.MaxInt32

// ErrSequenceExhausted the scheme already holds MaxSequence
var ErrSequenceExhausted = errors.New("code sequence exhausted")

// CodeScheme one series of human readable codes stored in Column of Model's table.
// Codes are Prefix followed by a decimal sequence, zero padded to Width when Width > 0.
type CodeScheme struct {
	Model  interface{}
	Column string
	Prefix string
	Width  int
}

// FlatScheme PREFIX-0001 style codes, e.g. REQ-0001
func FlatScheme(model interface{}, column, prefix string) CodeScheme {
	return CodeScheme{Model: model, Column: column, Prefix: prefix + "-", Width: 4}
}

// YearScheme KIND/YY/n style codes, e.g. CRF/26/7 or CS/26/12
func YearScheme(model interface{}, column, kind string, at time.Time) CodeScheme {
	return CodeScheme{Model: model, Column: column, Prefix: fmt.Sprintf("%s/%02d/", kind, at.Year()%100)}
}

// Format renders seq in this scheme
func (s CodeScheme) Format(seq int) string {
	if s.Width > 0 {
		return fmt.Sprintf("%s%0*d", s.Prefix, s.Width, seq)
	}
	return s.Prefix + strconv.Itoa(seq)
}

// Parse extracts the sequence number from code, ok=false if code is not in this scheme
func (s CodeScheme) Parse(code string) (int, bool) {
	if !strings.HasPrefix(code, s.Prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(code[len(s.Prefix):])
	if err != nil || n < 0 || n > MaxSequence {
		return 0, false
	}
	return n, true
}

// Blocks reports whether code sits under the prefix with a numeric suffix the
// sequence cannot move past, so accepting it would stall the series
func (s CodeScheme) Blocks(code string) bool {
	if !strings.HasPrefix(code, s.Prefix) {
		return false
	}
	digits := code[len(s.Prefix):]
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return false
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	return err != nil || n >= MaxSequence
}

// SequenceRepository derives the next code of a scheme from persisted rows.
// No lock is taken: two concurrent callers can compute the same code and the
// unique index on the column rejects the second insert.
type SequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// MaxSeq largest sequence number present under the scheme's prefix, 0 when none
func (r *SequenceRepository) MaxSeq(ctx context.Context, s CodeScheme) (int, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(s.Model).
		Where(s.Column+" LIKE ?", s.Prefix+"%").
		Pluck(s.Column, &codes).Error
	if err != nil {
		return 0, err
	}

	// string MAX() would rank CS/26/9 above CS/26/10
	max := 0
	for _, code := range codes {
		if n, ok := s.Parse(code); ok && n > max {
			max = n
		}
	}
	return max, nil
}

// Next the code following the largest one in storage
func (r *SequenceRepository) Next(ctx context.Context, s CodeScheme) (string, error) {
	max, err := r.MaxSeq(ctx, s)
	if err != nil {
		return "", err
	}
	if max >= MaxSequence {
		return "", fmt.Errorf("%s: %w", s.Prefix, ErrSequenceExhausted)
	}
	return s.Format(max + 1), nil
}

// NextN n consecutive codes following the largest one in storage
func (r *SequenceRepository) NextN(ctx context.Context, s CodeScheme, n int) ([]string, error) {
	max, err := r.MaxSeq(ctx, s)
	if err != nil {
		return nil, err
	}
	if n > MaxSequence-max {
		return nil, fmt.Errorf("%s: %w", s.Prefix, ErrSequenceExhausted)
	}
	codes := make([]string, n)
	for i := range codes {
		codes[i] = s.Format(max + 1 + i)
	}
	return codes, nil
}
