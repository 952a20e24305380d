package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/halcyonlabs/userdir/internal/database"
	"github.com/halcyonlabs/userdir/internal/models"
	"github.com/jackc/pgx/v5"
)

const userColumns = "id, profile, name, email, password, address, phone"

// UserRepository is the Postgres-backed user store. Lookups report absence
// as a nil user, not an error; uniqueness on name and email is enforced by
// the schema and surfaces as models.ErrConstraint.
type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User
	err := scanner.Scan(
		&user.ID, &user.Profile, &user.Name, &user.Email,
		&user.Password, &user.Address, &user.Phone,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByName returns the user with the given name, or nil if none exists.
func (r *UserRepository) FindByName(ctx context.Context, name string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE name = $1`

	user, err := scanUserRow(r.db.Pool.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.MapStoreError(err)
	}
	return user, nil
}

// FindByID returns the user with the given id, or nil if none exists.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUserRow(r.db.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.MapStoreError(err)
	}
	return user, nil
}

// Save inserts user, assigning an id when absent, or replaces the stored
// document with the same id.
func (r *UserRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	saved := *user
	if saved.ID == "" {
		saved.ID = uuid.New().String()
	}

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			profile = EXCLUDED.profile,
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			password = EXCLUDED.password,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone
		RETURNING ` + userColumns

	result, err := scanUserRow(r.db.Pool.QueryRow(ctx, query,
		saved.ID, saved.Profile, saved.Name, saved.Email,
		saved.Password, saved.Address, saved.Phone,
	))
	if err != nil {
		return nil, database.MapStoreError(err)
	}
	return result, nil
}

// Delete removes the user. Deleting an already absent user is not an error.
func (r *UserRepository) Delete(ctx context.Context, user *models.User) error {
	query := `DELETE FROM users WHERE id = $1`

	if _, err := r.db.Pool.Exec(ctx, query, user.ID); err != nil {
		return database.MapStoreError(err)
	}
	return nil
}

// CheckAuth looks up a user by name and hashed password in one compound
// query, returning nil when the credentials match no document.
func (r *UserRepository) CheckAuth(ctx context.Context, name, hashedPassword string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE name = $1 AND password = $2`

	user, err := scanUserRow(r.db.Pool.QueryRow(ctx, query, name, hashedPassword))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.MapStoreError(err)
	}
	return user, nil
}

// FindPage runs a query-by-example search with the filter's sort and
// pagination directives.
func (r *UserRepository) FindPage(ctx context.Context, filter *models.UserFilter) (*models.UserPage, error) {
	where, args := buildExampleWhere(filter.Fields())
	order := buildOrderBy(filter.Asc(), filter.Desc())

	var total int
	countQuery := `SELECT COUNT(*) FROM users` + where
	if err := r.db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, database.MapStoreError(err)
	}

	query := fmt.Sprintf(`SELECT `+userColumns+` FROM users%s%s LIMIT $%d OFFSET $%d`,
		where, order, len(args)+1, len(args)+2)
	pageArgs := append(args, filter.Size(), filter.Page()*filter.Size())

	rows, err := r.db.Pool.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, database.MapStoreError(err)
	}
	defer rows.Close()

	content := make([]models.User, 0, filter.Size())
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, database.MapStoreError(err)
		}
		content = append(content, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, database.MapStoreError(err)
	}

	totalPages := (total + filter.Size() - 1) / filter.Size()

	return &models.UserPage{
		TotalPages: totalPages,
		Number:     filter.Page(),
		Content:    content,
	}, nil
}

// buildExampleWhere turns the non-empty fields of the example template into
// a WHERE clause. Text fields match as case-sensitive regexes, mirroring
// query-by-example with a regex string matcher; empty fields are wildcards.
func buildExampleWhere(fields models.User) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	add := func(column, value string) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s ~ $%d", column, len(args)))
	}

	if fields.ID != "" {
		args = append(args, fields.ID)
		clauses = append(clauses, fmt.Sprintf("id::text ~ $%d", len(args)))
	}
	if fields.Profile != "" {
		add("profile", fields.Profile)
	}
	if fields.Name != "" {
		add("name", fields.Name)
	}
	if fields.Email != "" {
		add("email", fields.Email)
	}
	if fields.Password != "" {
		add("password", fields.Password)
	}
	if fields.Address != "" {
		add("address", fields.Address)
	}
	if fields.Phone != "" {
		add("phone", fields.Phone)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// buildOrderBy renders the sanitized sort sets, ascending first with
// descending appended as the tie-break order. Field names were validated
// against the sortable whitelist when the filter was built; unknown names
// are skipped here as a second guard against injection.
func buildOrderBy(asc, desc []string) string {
	var terms []string
	for _, f := range asc {
		if models.SortableField(f) {
			terms = append(terms, f+" ASC")
		}
	}
	for _, f := range desc {
		if models.SortableField(f) {
			terms = append(terms, f+" DESC")
		}
	}
	if len(terms) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}
