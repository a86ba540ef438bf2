package usecase

import (
	"context"
	"fmt"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	notification "go-hrdesk/internal/pkg/notification/application/domain"

	"github.com/go-playground/validator/v10"
)

const defaultListLimit = 20

var validate = validator.New()

func validateInput(in any) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func orDefault(l *logger.Logger) *logger.Logger {
	if l == nil {
		return logger.Default()
	}
	return l
}

// publish emits one change event per row. The rows are already stored, so a
// feed failure only costs live views a refresh and is logged.
func publish(ctx context.Context, feed changefeed.Publisher, log *logger.Logger, op changefeed.Op, rows ...notification.Notification) {
	for _, n := range rows {
		keys := map[string]string{
			"id":           n.ID,
			"recipient_id": n.RecipientID,
			"sender_id":    n.SenderID,
			"type":         string(n.Type),
		}
		if err := changefeed.Emit(ctx, feed, changefeed.TableNotifications, op, keys, n); err != nil {
			orDefault(log).Errorf(err, "notification: publish %s for %s", op, n.ID)
		}
	}
}
