package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/infra"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/shared"
)

type CouponRepository struct {
	pool *pgxpool.Pool
}

func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

const findCouponByCodeSQL = `
SELECT id, code, amount_off, percent_off, valid_from, valid_to
FROM coupons
WHERE upper(code) = upper($1)
`

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	var (
		snap       shared.CouponSnapshot
		amountOff  pgtype.Numeric
		percentOff pgtype.Float8
		validFrom  pgtype.Timestamptz
		validTo    pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, findCouponByCodeSQL, code).Scan(
		&snap.ID, &snap.Code, &amountOff, &percentOff, &validFrom, &validTo,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "coupon not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find coupon by code", err)
	}

	snap.AmountOff, err = pgconv.DecimalPtrFromNumeric(amountOff)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid coupon amount", err)
	}
	if percentOff.Valid {
		v := percentOff.Float64
		snap.PercentOff = &v
	}
	if validFrom.Valid {
		t := validFrom.Time
		snap.ValidFrom = &t
	}
	if validTo.Valid {
		t := validTo.Time
		snap.ValidTo = &t
	}

	return &snap, nil
}
