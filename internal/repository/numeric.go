package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func toNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   d.Coefficient(),
		Exp:   d.Exponent(),
		Valid: true,
	}
}

func toDecimal(numeric pgtype.Numeric) decimal.Decimal {
	if !numeric.Valid || numeric.Int == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(numeric.Int, numeric.Exp)
}
