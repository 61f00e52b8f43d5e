package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var (
	// ErrConcurrentCommit is returned when another writer committed a
	// snapshot version between Latest and Commit.
	ErrConcurrentCommit = errors.New("concurrent snapshot commit detected")

	// ErrNoSnapshot is returned by Latest when no snapshot has ever been
	// committed for the pool.
	ErrNoSnapshot = errors.New("no snapshot committed")
)

// DynamoDBClient is the subset of the DynamoDB API the catalog uses.
type DynamoDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Catalog tracks the latest committed snapshot name in DynamoDB.
//
// S3 offers no compare-and-swap, so a bare blob store cannot tell two
// writers apart: the last Put of a "latest" pointer silently wins. The
// catalog uses DynamoDB conditional writes to make the pointer update
// atomic: each commit appends a new monotonically increasing version row
// and fails with ErrConcurrentCommit if that version already exists.
//
// Table schema:
//   - Partition key: pool_id (string)
//   - Sort key: version (number)
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name entigo-snapshots \
//	  --attribute-definitions AttributeName=pool_id,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=pool_id,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type Catalog struct {
	client    DynamoDBClient
	tableName string
	poolID    string
}

// NewCatalog creates a snapshot catalog. poolID is the partition key that
// isolates this pool's snapshot history from others sharing the table.
func NewCatalog(client DynamoDBClient, tableName, poolID string) *Catalog {
	return &Catalog{
		client:    client,
		tableName: tableName,
		poolID:    poolID,
	}
}

// Latest returns the most recently committed snapshot name and its version.
func (c *Catalog) Latest(ctx context.Context) (string, uint64, error) {
	version, name, err := c.latest(ctx)
	if err != nil {
		return "", 0, err
	}
	if version == 0 {
		return "", 0, ErrNoSnapshot
	}
	return name, version, nil
}

// Commit atomically records name as the latest snapshot and returns the new
// version. Returns ErrConcurrentCommit if another writer got there first.
func (c *Catalog) Commit(ctx context.Context, name string) (uint64, error) {
	current, _, err := c.latest(ctx)
	if err != nil {
		return 0, err
	}
	next := current + 1

	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item: map[string]types.AttributeValue{
			"pool_id":       &types.AttributeValueMemberS{Value: c.poolID},
			"version":       &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", next)},
			"snapshot_name": &types.AttributeValueMemberS{Value: name},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return 0, ErrConcurrentCommit
		}
		return 0, fmt.Errorf("commit snapshot version: %w", err)
	}
	return next, nil
}

func (c *Catalog) latest(ctx context.Context) (uint64, string, error) {
	resp, err := c.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("pool_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: c.poolID},
		},
		ScanIndexForward: aws.Bool(false), // descending: newest version first
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("query snapshot catalog: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in catalog")
	}
	nameAttr, ok := item["snapshot_name"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid snapshot_name attribute in catalog")
	}

	var version uint64
	if _, err := fmt.Sscanf(versionAttr.Value, "%d", &version); err != nil {
		return 0, "", fmt.Errorf("parse catalog version: %w", err)
	}
	return version, nameAttr.Value, nil
}
