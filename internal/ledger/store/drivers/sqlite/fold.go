package sqlite

import (
	"database/sql/driver"
	"fmt"

	"github.com/aussiebroadwan/ledger/internal/ledger/query"

	moderncsqlite "modernc.org/sqlite"
)

// foldFunc is the SQL name of query.Fold. SQLite's own lower() only folds
// ASCII, which would disagree with the in-memory matcher.
const foldFunc = "ledger_fold"

func init() {
	err := moderncsqlite.RegisterDeterministicScalarFunction(foldFunc, 1, fold)
	if err != nil {
		panic(fmt.Sprintf("sqlite: register %s: %v", foldFunc, err))
	}
}

func fold(_ *moderncsqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return query.Fold(v), nil
	case []byte:
		return query.Fold(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument %T", foldFunc, v)
	}
}
