package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
)

const (
	OrderNumberIndex      = "order_number-index"
	PixTransactionIDIndex = "pix_transaction_id-index"
	EmailIndex            = "email-index"
)

type tableAPI interface {
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// EnsureOrdersTable creates the orders table and its indexes when missing. Only used against
// DynamoDB Local; production tables are provisioned outside the service.
func EnsureOrdersTable(ctx context.Context, ddb *dynamodb.Client, table string, log zerolog.Logger) error {
	if err := ensureOrdersTable(ctx, ddb, table, log); err != nil {
		return err
	}
	waiter := dynamodb.NewTableExistsWaiter(ddb)
	return waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, 30*time.Second)
}

func ensureOrdersTable(ctx context.Context, ddb tableAPI, table string, log zerolog.Logger) error {
	_, err := ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
	if err == nil {
		return nil
	}
	var nf *types.ResourceNotFoundException
	if !errors.As(err, &nf) {
		return fmt.Errorf("describe table %s: %w", table, err)
	}

	_, err = ddb.CreateTable(ctx, OrdersTableInput(table))
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}
		return fmt.Errorf("create table %s: %w", table, err)
	}
	log.Info().Str("table", table).Msg("[database] orders table created")
	return nil
}

// OrdersTableInput describes the orders table: PK id plus one GSI per lookup path.
func OrdersTableInput(table string) *dynamodb.CreateTableInput {
	gsi := func(name, attr string) types.GlobalSecondaryIndex {
		return types.GlobalSecondaryIndex{
			IndexName:  aws.String(name),
			KeySchema:  []types.KeySchemaElement{{AttributeName: aws.String(attr), KeyType: types.KeyTypeHash}},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}
	}
	return &dynamodb.CreateTableInput{
		TableName:   aws.String(table),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("order_number"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("pix_transaction_id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("email"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			gsi(OrderNumberIndex, "order_number"),
			gsi(PixTransactionIDIndex, "pix_transaction_id"),
			gsi(EmailIndex, "email"),
		},
	}
}
