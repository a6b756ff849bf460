package health

import "context"

// StorePinger checks artifact store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// ModelChecker checks that the loaded model bundle is usable.
type ModelChecker interface {
	Check(ctx context.Context) error
}
