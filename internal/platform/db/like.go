package db

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"library-backend/internal/platform/normalize"
)

// ContainsFold matches rows where LOWER(col) contains term literally.
func ContainsFold(col exp.IdentifierExpression, term string) exp.LiteralExpression {
	return goqu.L("LOWER(?) LIKE ? ESCAPE '"+normalize.LikeEscape+"'", col, normalize.LikePattern(term))
}
