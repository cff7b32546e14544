package resolver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"oauth-userdata/internal/auth"
	"oauth-userdata/internal/db"
	"oauth-userdata/internal/logger"
)

// DBResolver resolves identities using the database and records the
// latest normalized profile for each (user, provider).
type DBResolver struct {
	db *db.DB
}

func NewDBResolver(db *db.DB) *DBResolver {
	return &DBResolver{db: db}
}

func (r *DBResolver) Resolve(
	ctx context.Context,
	identity *auth.Identity,
) (string, error) {

	if identity == nil {
		return "", errors.New("identity is nil")
	}

	userID, err := r.findOrCreateUser(ctx, identity)
	if err != nil {
		return "", err
	}

	if identity.Profile != nil {
		if err := r.saveProfile(ctx, userID, identity); err != nil {
			return "", err
		}
	}

	return userID.String(), nil
}

func (r *DBResolver) findOrCreateUser(
	ctx context.Context,
	identity *auth.Identity,
) (uuid.UUID, error) {

	// 1. Known identity (provider + provider_user_id)
	var userID uuid.UUID
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id
		FROM identities
		WHERE provider = $1
		  AND provider_user_id = $2
	`,
		identity.Provider,
		identity.ProviderUserID,
	).Scan(&userID)

	if err == nil {
		return userID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("lookup identity: %w", err)
	}

	// 2. Link to an existing user through a verified email
	if identity.Email != "" && identity.EmailVerified {
		err = r.db.QueryRowContext(ctx, `
			SELECT id
			FROM users
			WHERE LOWER(email) = LOWER($1)
		`,
			identity.Email,
		).Scan(&userID)

		if err == nil {
			if err := linkIdentity(ctx, r.db, userID, identity); err != nil {
				return uuid.Nil, err
			}
			logger.Info("identity linked by email", map[string]any{
				"provider": identity.Provider,
				"user_id":  userID.String(),
			})
			return userID, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("lookup user by email: %w", err)
		}
	}

	// 3. New user
	var email sql.NullString
	if identity.Email != "" {
		email = sql.NullString{String: identity.Email, Valid: true}
	}
	var displayName sql.NullString
	if identity.Profile != nil && identity.Profile.FullName != nil {
		displayName = sql.NullString{String: *identity.Profile.FullName, Valid: true}
	}

	userID, err = r.createUser(ctx, identity, email, displayName)
	if err != nil {
		return uuid.Nil, err
	}

	logger.Info("user created", map[string]any{
		"provider": identity.Provider,
		"user_id":  userID.String(),
	})

	return userID, nil
}

// createUser inserts the user and its first identity in one transaction
// so a failed link leaves no orphan user row.
func (r *DBResolver) createUser(
	ctx context.Context,
	identity *auth.Identity,
	email, displayName sql.NullString,
) (uuid.UUID, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var userID uuid.UUID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (email, email_verified, display_name)
		VALUES ($1, $2, $3)
		RETURNING id
	`,
		email,
		identity.EmailVerified,
		displayName,
	).Scan(&userID)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return uuid.Nil, fmt.Errorf("email already registered by another account: %w", err)
		}
		return uuid.Nil, fmt.Errorf("create user: %w", err)
	}

	if err := linkIdentity(ctx, tx, userID, identity); err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("commit user: %w", err)
	}
	return userID, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func linkIdentity(
	ctx context.Context,
	ex execer,
	userID uuid.UUID,
	identity *auth.Identity,
) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO identities (user_id, provider, provider_user_id)
		VALUES ($1, $2, $3)
	`,
		userID,
		identity.Provider,
		identity.ProviderUserID,
	)
	if err != nil {
		return fmt.Errorf("link identity: %w", err)
	}
	return nil
}

func (r *DBResolver) saveProfile(
	ctx context.Context,
	userID uuid.UUID,
	identity *auth.Identity,
) error {
	data, err := json.Marshal(identity.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, provider, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, provider)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`,
		userID,
		identity.Provider,
		data,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
