package docstore

import (
	"context"
	"errors"
	"fmt"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/imrishuroy/go-storefront-admin/internal/aws"
)

// CanceledError reports a cancelled transaction and why each item failed.
type CanceledError struct {
	// Reasons holds one cancellation code per transaction item, in order.
	// "None" marks items that did not cause the cancellation.
	Reasons []string
	err     error
}

func (e *CanceledError) Error() string { return fmt.Sprintf("transaction canceled: %v", e.err) }
func (e *CanceledError) Unwrap() error { return e.err }

// ConditionFailed reports whether item i failed its condition expression.
func (e *CanceledError) ConditionFailed(i int) bool {
	return i >= 0 && i < len(e.Reasons) && e.Reasons[i] == "ConditionalCheckFailed"
}

// Transact applies all items atomically. A conditional failure on any item
// returns a *CanceledError.
func Transact(ctx context.Context, client aws.DynamoDBAPI, items ...types.TransactWriteItem) error {
	_, err := client.TransactWriteItems(ctx, &dyn.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err == nil {
		return nil
	}
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		reasons := make([]string, len(items))
		for i := range reasons {
			reasons[i] = "None"
			if i < len(tce.CancellationReasons) && tce.CancellationReasons[i].Code != nil {
				reasons[i] = *tce.CancellationReasons[i].Code
			}
		}
		return &CanceledError{Reasons: reasons, err: err}
	}
	return fmt.Errorf("transact write: %w", err)
}
