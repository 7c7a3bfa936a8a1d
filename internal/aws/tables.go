package aws

import (
	"context"
	"errors"
	"fmt"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// TableSpec names a table and its string partition key.
type TableSpec struct {
	Name string
	Key  string
}

// EnsureTable creates an on-demand table with a string hash key unless it
// already exists. Returns true when the table was created.
func EnsureTable(ctx context.Context, admin TableAdminAPI, spec TableSpec) (bool, error) {
	_, err := admin.DescribeTable(ctx, &dyn.DescribeTableInput{TableName: &spec.Name})
	if err == nil {
		return false, nil
	}
	var nf *types.ResourceNotFoundException
	if !errors.As(err, &nf) {
		return false, fmt.Errorf("describe table %s: %w", spec.Name, err)
	}

	_, err = admin.CreateTable(ctx, &dyn.CreateTableInput{
		TableName: &spec.Name,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: awsString(spec.Key), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: awsString(spec.Key), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		// lost a race with another creator
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceInUseException" {
			return false, nil
		}
		return false, fmt.Errorf("create table %s: %w", spec.Name, err)
	}
	return true, nil
}
