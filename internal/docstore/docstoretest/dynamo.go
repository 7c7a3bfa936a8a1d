// Package docstoretest provides an in-memory DynamoDB for package tests.
package docstoretest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type table struct {
	keyAttr string
	order   []string
	items   map[string]map[string]types.AttributeValue
}

// Dynamo is a minimal in-memory DynamoDB. It understands single string hash
// keys, attribute_exists / attribute_not_exists conditions and all-or-nothing
// TransactWriteItems with Put and Delete.
// NOTE: other expressions are ignored.
type Dynamo struct {
	mu      sync.Mutex
	keys    map[string]string
	tables  map[string]*table
	created map[string]bool

	// Err, when set, is returned from every call.
	Err error

	PutCalls      int
	TransactCalls int
}

// New returns an empty Dynamo. Tables use "id" as key unless overridden
// with WithKey.
func New() *Dynamo {
	return &Dynamo{
		keys:    map[string]string{},
		tables:  map[string]*table{},
		created: map[string]bool{},
	}
}

// WithKey sets the partition key attribute for tableName.
func (m *Dynamo) WithKey(tableName, keyAttr string) *Dynamo {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[tableName] = keyAttr
	return m
}

// Len returns the number of items in tableName.
func (m *Dynamo) Len(tableName string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.table(tableName).items)
}

// Item returns the raw stored item or nil.
func (m *Dynamo) Item(tableName, key string) map[string]types.AttributeValue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table(tableName).items[key]
}

func (m *Dynamo) table(name string) *table {
	t, ok := m.tables[name]
	if !ok {
		keyAttr := m.keys[name]
		if keyAttr == "" {
			keyAttr = "id"
		}
		t = &table{keyAttr: keyAttr, items: map[string]map[string]types.AttributeValue{}}
		m.tables[name] = t
	}
	return t
}

func stringKey(attrs map[string]types.AttributeValue, attr string) (string, error) {
	v, ok := attrs[attr].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("missing string key %q", attr)
	}
	return v.Value, nil
}

// checkCondition evaluates the existence conditions we issue.
func checkCondition(cond *string, exists bool) bool {
	if cond == nil {
		return true
	}
	switch {
	case strings.HasPrefix(*cond, "attribute_not_exists"):
		return !exists
	case strings.HasPrefix(*cond, "attribute_exists"):
		return exists
	}
	return true
}

func (t *table) put(k string, item map[string]types.AttributeValue) {
	if _, ok := t.items[k]; !ok {
		t.order = append(t.order, k)
	}
	t.items[k] = item
}

func (t *table) delete(k string) {
	if _, ok := t.items[k]; !ok {
		return
	}
	delete(t.items, k)
	for i, o := range t.order {
		if o == k {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (m *Dynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	t := m.table(*params.TableName)
	k, err := stringKey(params.Item, t.keyAttr)
	if err != nil {
		return nil, err
	}
	_, exists := t.items[k]
	if !checkCondition(params.ConditionExpression, exists) {
		return nil, &types.ConditionalCheckFailedException{Message: awsString("The conditional request failed")}
	}
	t.put(k, params.Item)
	return &dyn.PutItemOutput{}, nil
}

func (m *Dynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	t := m.table(*params.TableName)
	k, err := stringKey(params.Key, t.keyAttr)
	if err != nil {
		return nil, err
	}
	item, ok := t.items[k]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *Dynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	t := m.table(*params.TableName)
	k, err := stringKey(params.Key, t.keyAttr)
	if err != nil {
		return nil, err
	}
	_, exists := t.items[k]
	if !checkCondition(params.ConditionExpression, exists) {
		return nil, &types.ConditionalCheckFailedException{Message: awsString("The conditional request failed")}
	}
	t.delete(k)
	return &dyn.DeleteItemOutput{}, nil
}

// Scan returns every item in insertion order in a single page.
func (m *Dynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	t := m.table(*params.TableName)
	items := make([]map[string]types.AttributeValue, 0, len(t.order))
	for _, k := range t.order {
		items = append(items, t.items[k])
	}
	return &dyn.ScanOutput{Items: items, Count: int32(len(items))}, nil
}

func (m *Dynamo) TransactWriteItems(ctx context.Context, params *dyn.TransactWriteItemsInput, optFns ...func(*dyn.Options)) (*dyn.TransactWriteItemsOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TransactCalls++
	if m.Err != nil {
		return nil, m.Err
	}

	type op struct {
		t    *table
		key  string
		item map[string]types.AttributeValue // nil for delete
	}
	ops := make([]op, 0, len(params.TransactItems))
	reasons := make([]types.CancellationReason, len(params.TransactItems))
	canceled := false
	for i, it := range params.TransactItems {
		reasons[i] = types.CancellationReason{Code: awsString("None")}
		var (
			t    *table
			k    string
			cond *string
			item map[string]types.AttributeValue
			err  error
		)
		switch {
		case it.Put != nil:
			t = m.table(*it.Put.TableName)
			k, err = stringKey(it.Put.Item, t.keyAttr)
			cond, item = it.Put.ConditionExpression, it.Put.Item
		case it.Delete != nil:
			t = m.table(*it.Delete.TableName)
			k, err = stringKey(it.Delete.Key, t.keyAttr)
			cond = it.Delete.ConditionExpression
		default:
			return nil, errors.New("unsupported transact item")
		}
		if err != nil {
			return nil, err
		}
		_, exists := t.items[k]
		if !checkCondition(cond, exists) {
			reasons[i] = types.CancellationReason{Code: awsString("ConditionalCheckFailed")}
			canceled = true
		}
		ops = append(ops, op{t: t, key: k, item: item})
	}
	if canceled {
		return nil, &types.TransactionCanceledException{
			Message:             awsString("Transaction cancelled"),
			CancellationReasons: reasons,
		}
	}
	for _, o := range ops {
		if o.item == nil {
			o.t.delete(o.key)
		} else {
			o.t.put(o.key, o.item)
		}
	}
	return &dyn.TransactWriteItemsOutput{}, nil
}

// DescribeTable reports tables created through CreateTable.
func (m *Dynamo) DescribeTable(ctx context.Context, params *dyn.DescribeTableInput, optFns ...func(*dyn.Options)) (*dyn.DescribeTableOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.created[*params.TableName] {
		return nil, &types.ResourceNotFoundException{Message: awsString("Requested resource not found")}
	}
	return &dyn.DescribeTableOutput{Table: &types.TableDescription{TableName: params.TableName}}, nil
}

func (m *Dynamo) CreateTable(ctx context.Context, params *dyn.CreateTableInput, optFns ...func(*dyn.Options)) (*dyn.CreateTableOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name := *params.TableName
	if m.created[name] {
		return nil, &types.ResourceInUseException{Message: awsString("Table already exists")}
	}
	m.created[name] = true
	if len(params.KeySchema) > 0 && params.KeySchema[0].AttributeName != nil {
		m.keys[name] = *params.KeySchema[0].AttributeName
	}
	return &dyn.CreateTableOutput{TableDescription: &types.TableDescription{TableName: params.TableName}}, nil
}

func awsString(s string) *string { return &s }
