package transactor

import (
	"context"
)

// Transactor runs a unit of work within a storage transaction
type Transactor interface {
	WithinTransaction(context.Context, func(context.Context) error) error
}
