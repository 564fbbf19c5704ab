package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/eventlane/eventlane/internal/domain"
)

type accountsRepo struct {
	q querier
}

const accountColumns = `id, name, last_name, middle_name, gender, birth_date,
	email, username, password_hash, failed_attempts, is_locked, lock_until,
	created_at, updated_at`

func scanAccount(row *sql.Row) (domain.Account, error) {
	var (
		a          domain.Account
		middleName sql.NullString
		birthDate  sql.NullTime
		lockUntil  sql.NullTime
	)
	err := row.Scan(
		&a.ID, &a.Name, &a.LastName, &middleName, &a.Gender, &birthDate,
		&a.Email, &a.Username, &a.PasswordHash, &a.FailedAttempts, &a.IsLocked,
		&lockUntil, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.MiddleName = mapNullStringPtr(middleName)
	a.BirthDate = mapNullTimePtr(birthDate)
	a.LockUntil = mapNullTimePtr(lockUntil)
	return a, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByUsername(ctx context.Context, username string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = ?`, username)
	return scanAccount(row)
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO accounts (
			id, name, last_name, middle_name, gender, birth_date,
			email, username, password_hash, failed_attempts, is_locked,
			lock_until, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.LastName, mapOptionalString(a.MiddleName), a.Gender,
		mapOptionalTime(a.BirthDate), a.Email, a.Username, a.PasswordHash,
		a.FailedAttempts, a.IsLocked, mapOptionalTime(a.LockUntil),
		a.CreatedAt, a.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *accountsRepo) UpdateProfile(ctx context.Context, a domain.Account) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE accounts
		SET name = ?, last_name = ?, middle_name = ?, gender = ?,
			birth_date = ?, email = ?, username = ?, updated_at = ?
		WHERE id = ?`,
		a.Name, a.LastName, mapOptionalString(a.MiddleName), a.Gender,
		mapOptionalTime(a.BirthDate), a.Email, a.Username, time.Now().UTC(),
		a.ID,
	)
	if err != nil {
		return mapConflict(err)
	}
	return requireRow(res)
}

func (r *accountsRepo) UpdateLockState(ctx context.Context, accountID string, failedAttempts int, locked bool, lockUntil *time.Time) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE accounts
		SET failed_attempts = ?, is_locked = ?, lock_until = ?, updated_at = ?
		WHERE id = ?`,
		failedAttempts, locked, mapOptionalTime(lockUntil), time.Now().UTC(),
		accountID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		var (
			a          domain.Account
			middleName sql.NullString
			birthDate  sql.NullTime
			lockUntil  sql.NullTime
		)
		if err := rows.Scan(
			&a.ID, &a.Name, &a.LastName, &middleName, &a.Gender, &birthDate,
			&a.Email, &a.Username, &a.PasswordHash, &a.FailedAttempts,
			&a.IsLocked, &lockUntil, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		a.MiddleName = mapNullStringPtr(middleName)
		a.BirthDate = mapNullTimePtr(birthDate)
		a.LockUntil = mapNullTimePtr(lockUntil)
		out = append(out, a)
	}
	return out, rows.Err()
}
