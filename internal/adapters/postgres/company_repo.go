package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aliaga/companymap/internal/core/domain"
)

// CompanyRepo implements ports.CompanyRepository with pgx.
//
// The location column is GEOMETRY(POINT, 4326); it is written with
// ST_SetSRID(ST_MakePoint(x, y), 4326) where x is longitude and y is
// latitude, and read back via ST_X/ST_Y. The scalar latitude/longitude
// columns and the geometry are always written in the same statement, so no
// committed row can carry a geometry that disagrees with its scalars.
type CompanyRepo struct {
	db *DB
}

// NewCompanyRepo creates a new CompanyRepo.
func NewCompanyRepo(db *DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

const companyColumns = `id, name, industry, address, latitude, longitude,
	ST_X(location) AS lon, ST_Y(location) AS lat`

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	var x, y float64
	err := row.Scan(&c.ID, &c.Name, &c.Industry, &c.Address,
		&c.Latitude, &c.Longitude, &x, &y)
	if err != nil {
		return nil, err
	}
	c.Location = domain.NewPoint(x, y)
	return &c, nil
}

// Insert persists a new company and returns it with its assigned id.
func (r *CompanyRepo) Insert(ctx context.Context, c *domain.Company) (*domain.Company, error) {
	row := r.db.Pool.QueryRow(ctx, `
		INSERT INTO companies (name, industry, address, latitude, longitude, location)
		VALUES ($1, $2, $3, $4, $5, ST_SetSRID(ST_MakePoint($6, $7), 4326))
		RETURNING `+companyColumns,
		c.Name, c.Industry, c.Address, c.Latitude, c.Longitude,
		c.Location.X, c.Location.Y)

	created, err := scanCompany(row)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// GetByID returns a company by id.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)

	c, err := scanCompany(row)
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

// List returns all companies in insertion order.
func (r *CompanyRepo) List(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, mapError(err)
		}
		companies = append(companies, *c)
	}
	return companies, mapError(rows.Err())
}

// Update replaces the stored record with the merged candidate inside a
// single transaction. The row is locked first so a concurrent update cannot
// interleave between the caller's read-merge and this write.
func (r *CompanyRepo) Update(ctx context.Context, id int64, c *domain.Company) (*domain.Company, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	defer tx.Rollback(ctx)

	var locked int64
	if err := tx.QueryRow(ctx,
		`SELECT id FROM companies WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
		return nil, mapError(err)
	}

	row := tx.QueryRow(ctx, `
		UPDATE companies
		SET name = $2, industry = $3, address = $4, latitude = $5, longitude = $6,
		    location = ST_SetSRID(ST_MakePoint($7, $8), 4326)
		WHERE id = $1
		RETURNING `+companyColumns,
		id, c.Name, c.Industry, c.Address, c.Latitude, c.Longitude,
		c.Location.X, c.Location.Y)

	updated, err := scanCompany(row)
	if err != nil {
		return nil, mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// Delete removes a company. Zero rows affected means the id did not exist.
func (r *CompanyRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// mapError translates pgx failures into the domain error taxonomy.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 unique_violation; classes 08 (connection exception),
		// 53 (insufficient resources) and 57 (operator intervention,
		// e.g. shutdown) are connectivity-shaped.
		switch {
		case pgErr.Code == "23505":
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		case strings.HasPrefix(pgErr.Code, "08"),
			strings.HasPrefix(pgErr.Code, "53"),
			strings.HasPrefix(pgErr.Code, "57"):
			return fmt.Errorf("%w: %s", domain.ErrUnavailable, pgErr.Message)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return err
}
