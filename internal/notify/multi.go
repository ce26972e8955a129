package notify

import (
	"context"
	"errors"
)

// Multi fan out to every publisher, all are tried even if one fails
type Multi []Publisher

// Publish 每個 publisher 都送一次, 錯誤合併回傳
func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
