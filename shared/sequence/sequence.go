package sequence

//go:generate go run go.uber.org/mock/mockgen -source=./sequence.go -destination=./mocks/sequence_mock.go -package=mocks

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hostel/infras/otel"
	"hostel/shared/constant"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

const (
	otelScopeName = "sequence"

	queryIncrement = `UPDATE id_sequences SET value = value + 1 WHERE prefix = $1 RETURNING value`
	querySeed      = `INSERT INTO id_sequences (prefix, value) VALUES ($1, $2)
		ON CONFLICT (prefix) DO UPDATE SET value = GREATEST(id_sequences.value + 1, EXCLUDED.value)
		RETURNING value`
)

// Source names the prefix of an entity class and where its existing ids live.
type Source struct {
	Prefix string
	Table  string
	Column string
}

// Generator mints sequential ids inside the caller's transaction. The counter row for a
// prefix stays locked until that transaction ends, so concurrent writers never share an id.
type Generator interface {
	Next(ctx context.Context, tx *sqlx.Tx, source Source) (string, error)
}

type generatorImpl struct {
	otel otel.Otel
}

func New(otel otel.Otel) Generator {
	return &generatorImpl{otel: otel}
}

func (g *generatorImpl) Next(ctx context.Context, tx *sqlx.Tx, source Source) (id string, err error) {
	ctx, scope := g.otel.NewScope(ctx, otelScopeName, otelScopeName+".Next")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("sequence.prefix", source.Prefix)

	var value int64

	err = tx.QueryRowxContext(ctx, queryIncrement, source.Prefix).Scan(&value)
	if err == nil {
		return Format(source.Prefix, value), nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return constant.Empty, fmt.Errorf("failed to increment sequence %s: %w", source.Prefix, err)
	}

	// First id for this prefix: seed the counter from whatever rows already exist.
	existing := []string{}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s LIKE $1", source.Column, source.Table, source.Column)
	if err = tx.SelectContext(ctx, &existing, query, source.Prefix+"%"); err != nil {
		return constant.Empty, fmt.Errorf("failed to scan existing ids for %s: %w", source.Prefix, err)
	}

	seed := Max(source.Prefix, existing) + 1

	if err = tx.QueryRowxContext(ctx, querySeed, source.Prefix, seed).Scan(&value); err != nil {
		return constant.Empty, fmt.Errorf("failed to seed sequence %s: %w", source.Prefix, err)
	}

	return Format(source.Prefix, value), nil
}

// NextID returns prefix followed by one more than the largest numeric suffix among the ids
// that match prefix<digits>. Ids of any other shape are ignored.
func NextID(prefix string, existing []string) string {
	return Format(prefix, Max(prefix, existing)+1)
}

// Max returns the largest numeric suffix among ids shaped prefix<digits>, or 0.
func Max(prefix string, existing []string) int64 {
	var highest int64

	for _, id := range existing {
		if value, ok := Suffix(prefix, id); ok && value > highest {
			highest = value
		}
	}

	return highest
}

// Suffix returns the numeric part of an id shaped prefix<digits>.
func Suffix(prefix, id string) (int64, bool) {
	if !Matches(prefix, id) {
		return 0, false
	}

	value, err := strconv.ParseInt(strings.TrimPrefix(id, prefix), 10, 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

// Compare orders ids by numeric suffix, so BN2 sorts before BN10. Ids of another shape sort
// after well-formed ones, lexically.
func Compare(prefix, a, b string) int {
	left, leftOK := Suffix(prefix, a)
	right, rightOK := Suffix(prefix, b)

	switch {
	case leftOK && rightOK:
		return cmp.Compare(left, right)
	case leftOK:
		return -1
	case rightOK:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// Matches reports whether id is prefix followed by one or more digits.
func Matches(prefix, id string) bool {
	digits, found := strings.CutPrefix(id, prefix)
	if prefix == constant.Empty || !found || digits == constant.Empty {
		return false
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func Format(prefix string, value int64) string {
	return prefix + strconv.FormatInt(value, 10)
}
