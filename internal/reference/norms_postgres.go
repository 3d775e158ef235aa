// internal/reference/norms_postgres.go
package reference

import (
	"context"
	"database/sql"

	apperrors "career-assessment-workers/internal/common/errors"
	"career-assessment-workers/internal/models"
)

const normsQuery = `SELECT instrument, dimension, COALESCE(age_group, ''), COALESCE(region, ''), mean, std_dev, COALESCE(basis, 'normalized') FROM normative_data ORDER BY instrument, dimension`

// LoadNormsFromPostgres reads the normative_data table once.
func LoadNormsFromPostgres(ctx context.Context, db *sql.DB) (*NormTable, error) {
	rows, err := db.QueryContext(ctx, normsQuery)
	if err != nil {
		return nil, apperrors.NewNormsLoadFailedError("postgres", err)
	}
	defer rows.Close()

	var entries []NormEntry
	for rows.Next() {
		var (
			e          NormEntry
			instrument string
			basis      string
		)
		if err := rows.Scan(&instrument, &e.Dimension, &e.AgeGroup, &e.Region, &e.Mean, &e.StdDev, &basis); err != nil {
			return nil, apperrors.NewNormsLoadFailedError("postgres", err)
		}
		e.Instrument = models.InstrumentCode(instrument)
		e.Basis = models.NormBasis(basis)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewNormsLoadFailedError("postgres", err)
	}

	return NewNormTable(entries)
}
