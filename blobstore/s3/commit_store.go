package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/gradir/blobstore"
)

// ErrConcurrentPublish is returned when another publisher committed a
// snapshot version concurrently. Retry the publish.
var ErrConcurrentPublish = errors.New("concurrent snapshot publish detected")

// DDBClient is the interface for DynamoDB operations the commit store uses.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// CommitStore publishes witness snapshots to S3 and tracks the current one
// with DynamoDB conditional writes. DynamoDB supplies the atomic
// compare-and-swap that S3 lacks, so multiple build machines can publish
// without losing the "latest" pointer.
//
// Table schema:
//   - Partition key: base_uri (string) - the S3 prefix/path
//   - Sort key: version (number) - monotonically increasing version
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name gradir-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type CommitStore struct {
	blobs     *Store
	ddbClient DDBClient
	tableName string
	baseURI   string // S3 bucket/prefix used as partition key
}

// NewCommitStore creates a new S3+DynamoDB commit store.
// The baseURI should be "s3://bucket/prefix" format used as partition key.
func NewCommitStore(blobs *Store, ddbClient DDBClient, tableName, baseURI string) *CommitStore {
	return &CommitStore{
		blobs:     blobs,
		ddbClient: ddbClient,
		tableName: tableName,
		baseURI:   baseURI,
	}
}

// Publish uploads the snapshot under name and atomically advances the
// current-snapshot pointer to it. Returns ErrConcurrentPublish if another
// publisher won the race for the next version.
func (s *CommitStore) Publish(ctx context.Context, name string, data []byte) error {
	if err := s.blobs.Put(ctx, name, data); err != nil {
		return err
	}
	return s.commitVersion(ctx, name)
}

// Current returns the name of the most recently committed snapshot.
// Returns blobstore.ErrNotFound when nothing has been published.
func (s *CommitStore) Current(ctx context.Context) (string, error) {
	version, name, err := s.latestVersion(ctx)
	if err != nil {
		return "", err
	}
	if version == 0 {
		return "", blobstore.ErrNotFound
	}
	return name, nil
}

// Fetch reads the most recently committed snapshot.
func (s *CommitStore) Fetch(ctx context.Context) ([]byte, error) {
	name, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.blobs.Get(ctx, name)
}

// latestVersion queries DynamoDB for the latest committed version.
func (s *CommitStore) latestVersion(ctx context.Context) (uint64, string, error) {
	resp, err := s.ddbClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":uri": &ddbtypes.AttributeValueMemberS{Value: s.baseURI},
		},
		ScanIndexForward: aws.Bool(false), // Descending order
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("query commit table: %w", err)
	}

	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*ddbtypes.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in commit table")
	}
	nameAttr, ok := item["snapshot_name"].(*ddbtypes.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid snapshot_name attribute in commit table")
	}

	var version uint64
	if _, err := fmt.Sscanf(versionAttr.Value, "%d", &version); err != nil {
		return 0, "", fmt.Errorf("parse committed version: %w", err)
	}

	return version, nameAttr.Value, nil
}

// commitVersion atomically commits a new snapshot version using a DynamoDB
// conditional write.
func (s *CommitStore) commitVersion(ctx context.Context, name string) error {
	currentVersion, _, err := s.latestVersion(ctx)
	if err != nil {
		return err
	}

	newVersion := currentVersion + 1

	// Conditional put: only succeed if this version doesn't exist yet.
	_, err = s.ddbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]ddbtypes.AttributeValue{
			"base_uri":      &ddbtypes.AttributeValueMemberS{Value: s.baseURI},
			"version":       &ddbtypes.AttributeValueMemberN{Value: fmt.Sprintf("%d", newVersion)},
			"snapshot_name": &ddbtypes.AttributeValueMemberS{Value: name},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentPublish
		}
		return fmt.Errorf("commit snapshot version: %w", err)
	}

	return nil
}
