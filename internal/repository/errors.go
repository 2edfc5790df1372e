package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrUserNotFound    = errors.New("user not found")
)

// notFound converts pgx's no-rows sentinel into the keyed-lookup error the
// HTTP layer maps to 404; everything else passes through.
func notFound(err, sentinel error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return err
}
