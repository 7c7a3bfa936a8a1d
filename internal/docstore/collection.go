// Package docstore stores JSON-like documents in DynamoDB tables, one table
// per collection, keyed by a single string attribute.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/imrishuroy/go-storefront-admin/internal/aws"
)

var (
	// ErrNotFound is returned when the addressed document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrConditionFailed indicates a conditional write failed (e.g. attribute_not_exists)
	ErrConditionFailed = errors.New("conditional check failed")
)

const (
	condNotExists = "attribute_not_exists(#pk)"
	condExists    = "attribute_exists(#pk)"
)

// Collection is a typed view over one table. T must marshal with a string
// attribute named after the collection key.
type Collection[T any] struct {
	client    aws.DynamoDBAPI
	tableName string
	keyAttr   string
}

// NewCollection binds a collection to tableName with partition key keyAttr.
func NewCollection[T any](client aws.DynamoDBAPI, tableName, keyAttr string) *Collection[T] {
	return &Collection[T]{
		client:    client,
		tableName: tableName,
		keyAttr:   keyAttr,
	}
}

// Table returns the backing table name.
func (c *Collection[T]) Table() string { return c.tableName }

func (c *Collection[T]) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		c.keyAttr: &types.AttributeValueMemberS{Value: id},
	}
}

func (c *Collection[T]) keyNames() map[string]string {
	return map[string]string{"#pk": c.keyAttr}
}

func (c *Collection[T]) put(doc T, condition string) (*types.Put, error) {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	if _, ok := item[c.keyAttr]; !ok {
		return nil, fmt.Errorf("document has no %q attribute", c.keyAttr)
	}
	p := &types.Put{
		TableName: &c.tableName,
		Item:      item,
	}
	if condition != "" {
		p.ConditionExpression = awsString(condition)
		p.ExpressionAttributeNames = c.keyNames()
	}
	return p, nil
}

func (c *Collection[T]) putItem(ctx context.Context, doc T, condition string) error {
	p, err := c.put(doc, condition)
	if err != nil {
		return err
	}
	_, err = c.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:                p.TableName,
		Item:                     p.Item,
		ConditionExpression:      p.ConditionExpression,
		ExpressionAttributeNames: p.ExpressionAttributeNames,
	})
	return err
}

// Insert writes doc only when no document with the same key exists.
// Returns ErrConditionFailed on a key collision.
func (c *Collection[T]) Insert(ctx context.Context, doc T) error {
	if err := c.putItem(ctx, doc, condNotExists); err != nil {
		if isConditionFailed(err) {
			return ErrConditionFailed
		}
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Replace overwrites an existing document. Returns ErrNotFound if absent.
func (c *Collection[T]) Replace(ctx context.Context, doc T) error {
	if err := c.putItem(ctx, doc, condExists); err != nil {
		if isConditionFailed(err) {
			return ErrNotFound
		}
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Upsert writes doc unconditionally.
func (c *Collection[T]) Upsert(ctx context.Context, doc T) error {
	if err := c.putItem(ctx, doc, ""); err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Get fetches a document by key with a strongly consistent read.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	out, err := c.client.GetItem(ctx, &dyn.GetItemInput{
		TableName:      &c.tableName,
		Key:            c.key(id),
		ConsistentRead: awsBool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	var doc T
	if err := attributevalue.UnmarshalMap(out.Item, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &doc, nil
}

// Delete removes a document permanently. Returns ErrNotFound if absent.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	_, err := c.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName:                &c.tableName,
		Key:                      c.key(id),
		ConditionExpression:      awsString(condExists),
		ExpressionAttributeNames: c.keyNames(),
	})
	if err != nil {
		if isConditionFailed(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// All scans the whole table, following pagination, in storage order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	docs := []T{}
	p := dyn.NewScanPaginator(c.client, &dyn.ScanInput{
		TableName:      &c.tableName,
		ConsistentRead: awsBool(true),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", c.tableName, err)
		}
		var batch []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal documents: %w", err)
		}
		docs = append(docs, batch...)
	}
	return docs, nil
}

// Clear deletes every document in the collection and returns how many
// were removed.
func (c *Collection[T]) Clear(ctx context.Context) (int, error) {
	p := dyn.NewScanPaginator(c.client, &dyn.ScanInput{
		TableName:                &c.tableName,
		ProjectionExpression:     awsString("#pk"),
		ExpressionAttributeNames: c.keyNames(),
	})
	var keys []types.AttributeValue
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("scan %s: %w", c.tableName, err)
		}
		for _, item := range page.Items {
			if k, ok := item[c.keyAttr]; ok {
				keys = append(keys, k)
			}
		}
	}
	for _, k := range keys {
		_, err := c.client.DeleteItem(ctx, &dyn.DeleteItemInput{
			TableName: &c.tableName,
			Key:       map[string]types.AttributeValue{c.keyAttr: k},
		})
		if err != nil {
			return 0, fmt.Errorf("delete item: %w", err)
		}
	}
	return len(keys), nil
}

// InsertItem builds a transactional put guarded by attribute_not_exists.
func (c *Collection[T]) InsertItem(doc T) (types.TransactWriteItem, error) {
	p, err := c.put(doc, condNotExists)
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	return types.TransactWriteItem{Put: p}, nil
}

// ReplaceItem builds a transactional put guarded by attribute_exists.
func (c *Collection[T]) ReplaceItem(doc T) (types.TransactWriteItem, error) {
	p, err := c.put(doc, condExists)
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	return types.TransactWriteItem{Put: p}, nil
}

// DeleteItem builds a transactional delete. With mustExist the transaction
// is cancelled when the document is absent.
func (c *Collection[T]) DeleteItem(id string, mustExist bool) types.TransactWriteItem {
	d := &types.Delete{
		TableName: &c.tableName,
		Key:       c.key(id),
	}
	if mustExist {
		d.ConditionExpression = awsString(condExists)
		d.ExpressionAttributeNames = c.keyNames()
	}
	return types.TransactWriteItem{Delete: d}
}

func isConditionFailed(err error) bool {
	var cc *types.ConditionalCheckFailedException
	if errors.As(err, &cc) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ConditionalCheckFailedException"
}

func awsString(s string) *string { return &s }
func awsBool(b bool) *bool       { return &b }
