package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the slice of DynamoDB access the domain services need.
// DynamoService implements it against the real client; tests substitute an
// in-memory fake.
type DynamoAPI interface {
	GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)
	PutItem(ctx context.Context, tableName string, item interface{}) error
	DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error
	UpdateFields(ctx context.Context, tableName string, key map[string]types.AttributeValue, fields map[string]types.AttributeValue) (map[string]types.AttributeValue, error)
	UpdateSetMembership(ctx context.Context, tableName string, key map[string]types.AttributeValue, addAttr, removeAttr, member string) error
	ScanWithFilter(ctx context.Context, tableName string, matchFields map[string]string, filterFunc func(map[string]types.AttributeValue) bool, result interface{}) error
	QueryItemsWithIndex(ctx context.Context, tableName, indexName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, limit int32) ([]map[string]types.AttributeValue, error)
}

type DynamoService struct {
	Client *dynamodb.Client
}

// InitializeDynamoDBClient initializes the DynamoDB client
func InitializeDynamoDBClient(region string) *dynamodb.Client {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

// GetItem retrieves an item from DynamoDB. A missing item is returned as
// (nil, nil); callers decide whether absence is an error.
func (ds *DynamoService) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		log.Printf("Failed to get item from table '%s': %v", tableName, err)
		return nil, fmt.Errorf("get item from table '%s': %w", tableName, ErrStoreUnavailable)
	}
	return output.Item, nil
}

func (ds *DynamoService) PutItem(ctx context.Context, tableName string, item interface{}) error {
	marshaledItem, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &tableName,
		Item:      marshaledItem,
	})
	if err != nil {
		log.Printf("Failed to put item in table '%s': %v", tableName, err)
		return fmt.Errorf("put item in table '%s': %w", tableName, ErrStoreUnavailable)
	}
	return nil
}

// DeleteItem removes an item from DynamoDB
func (ds *DynamoService) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	_, err := ds.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		log.Printf("Failed to delete item from table '%s': %v", tableName, err)
		return fmt.Errorf("delete item from table '%s': %w", tableName, ErrStoreUnavailable)
	}
	return nil
}

// UpdateFields sets the given top-level attributes on one item in a single
// update expression and returns the item's new state.
func (ds *DynamoService) UpdateFields(ctx context.Context, tableName string, key map[string]types.AttributeValue, fields map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	if len(fields) == 0 {
		return nil, errors.New("update failed: no fields to set")
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var clauses []string
	expressionAttributeNames := make(map[string]string, len(fields))
	expressionAttributeValues := make(map[string]types.AttributeValue, len(fields))
	for _, name := range names {
		expressionAttributeNames["#"+name] = name
		expressionAttributeValues[":"+name] = fields[name]
		clauses = append(clauses, fmt.Sprintf("#%s = :%s", name, name))
	}
	updateExpression := "SET " + strings.Join(clauses, ", ")

	output, err := ds.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &tableName,
		Key:                       key,
		UpdateExpression:          &updateExpression,
		ExpressionAttributeNames:  expressionAttributeNames,
		ExpressionAttributeValues: expressionAttributeValues,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		log.Printf("Failed to update item in table '%s': %v", tableName, err)
		return nil, fmt.Errorf("update item in table '%s': %w", tableName, ErrStoreUnavailable)
	}
	return output.Attributes, nil
}

// UpdateSetMembership moves a member into one string set and out of another
// on a single item. Both halves run in one update expression, so the two-set
// mutation is atomic on the store side. Adding a member that is already
// present and deleting one that is absent are both no-ops, which makes the
// operation idempotent.
func (ds *DynamoService) UpdateSetMembership(ctx context.Context, tableName string, key map[string]types.AttributeValue, addAttr, removeAttr, member string) error {
	updateExpression := "ADD #add :m DELETE #rem :m"
	// The item must already exist; without the condition ADD would create a
	// half-formed document.
	condition := "attribute_exists(#pk)"

	var pkName string
	for name := range key {
		pkName = name
	}

	_, err := ds.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           &tableName,
		Key:                 key,
		UpdateExpression:    &updateExpression,
		ConditionExpression: &condition,
		ExpressionAttributeNames: map[string]string{
			"#add": addAttr,
			"#rem": removeAttr,
			"#pk":  pkName,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":m": &types.AttributeValueMemberSS{Value: []string{member}},
		},
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return fmt.Errorf("item missing in table '%s': %w", tableName, ErrNotFound)
		}
		log.Printf("Failed to update set membership in table '%s': %v", tableName, err)
		return fmt.Errorf("update set membership in table '%s': %w", tableName, ErrStoreUnavailable)
	}
	return nil
}

// ScanWithFilter scans a table, keeping items whose string attributes equal
// every entry of matchFields, then applies the optional filterFunc callback
// and unmarshals the survivors into result (a pointer to a slice of structs).
func (ds *DynamoService) ScanWithFilter(ctx context.Context, tableName string, matchFields map[string]string, filterFunc func(map[string]types.AttributeValue) bool, result interface{}) error {
	scanInput := &dynamodb.ScanInput{
		TableName: &tableName,
	}

	if len(matchFields) > 0 {
		var filterExpressions []string
		expressionAttributeNames := map[string]string{}
		expressionAttributeValues := map[string]types.AttributeValue{}

		keys := make([]string, 0, len(matchFields))
		for key := range matchFields {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			expressionAttributeNames["#"+key] = key
			expressionAttributeValues[":"+key] = &types.AttributeValueMemberS{Value: matchFields[key]}
			filterExpressions = append(filterExpressions, fmt.Sprintf("#%s = :%s", key, key))
		}
		scanInput.FilterExpression = aws.String(strings.Join(filterExpressions, " AND "))
		scanInput.ExpressionAttributeNames = expressionAttributeNames
		scanInput.ExpressionAttributeValues = expressionAttributeValues
	}

	var filteredItems []map[string]types.AttributeValue
	paginator := dynamodb.NewScanPaginator(ds.Client, scanInput)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			log.Printf("Failed to scan table '%s': %v", tableName, err)
			return fmt.Errorf("scan table '%s': %w", tableName, ErrStoreUnavailable)
		}
		for _, item := range output.Items {
			if filterFunc == nil || filterFunc(item) {
				filteredItems = append(filteredItems, item)
			}
		}
	}

	if err := attributevalue.UnmarshalListOfMaps(filteredItems, result); err != nil {
		return fmt.Errorf("failed to unmarshal scan result: %w", err)
	}
	return nil
}

// QueryItemsWithIndex queries items from DynamoDB using a Global Secondary Index (GSI)
func (ds *DynamoService) QueryItemsWithIndex(ctx context.Context, tableName, indexName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, limit int32) ([]map[string]types.AttributeValue, error) {
	output, err := ds.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 &tableName,
		IndexName:                 &indexName,
		KeyConditionExpression:    &keyConditionExpression,
		ExpressionAttributeValues: expressionAttributeValues,
		Limit:                     &limit,
	})
	if err != nil {
		log.Printf("Failed to query GSI '%s' on table '%s': %v", indexName, tableName, err)
		return nil, fmt.Errorf("query GSI '%s': %w", indexName, ErrStoreUnavailable)
	}
	return output.Items, nil
}
