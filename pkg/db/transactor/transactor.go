package transactor

import (
	"context"
)

// Transactor runs a unit of work within a database transaction. The
// transaction travels inside the context, so repositories stay unaware
// of transaction boundaries
type Transactor interface {
	WithinTransaction(context.Context, func(context.Context) error) error
}
