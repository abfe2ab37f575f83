package database

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeTableAPI struct {
	describeErr error
	createErr   error
	created     *dynamodb.CreateTableInput
}

func (f *fakeTableAPI) DescribeTable(context.Context, *dynamodb.DescribeTableInput, ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return &dynamodb.DescribeTableOutput{}, nil
}

func (f *fakeTableAPI) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.created = in
	return &dynamodb.CreateTableOutput{}, f.createErr
}

func TestEnsureOrdersTable(t *testing.T) {
	ctx := context.Background()

	t.Run("existing table is left alone", func(t *testing.T) {
		api := &fakeTableAPI{}
		require.NoError(t, ensureOrdersTable(ctx, api, "orders", zerolog.Nop()))
		require.Nil(t, api.created)
	})

	t.Run("missing table is created with indexes", func(t *testing.T) {
		api := &fakeTableAPI{describeErr: &types.ResourceNotFoundException{Message: aws.String("missing")}}
		require.NoError(t, ensureOrdersTable(ctx, api, "orders", zerolog.Nop()))
		require.NotNil(t, api.created)
		require.Equal(t, "orders", aws.ToString(api.created.TableName))
		require.Len(t, api.created.GlobalSecondaryIndexes, 3)
	})

	t.Run("concurrent creation is fine", func(t *testing.T) {
		api := &fakeTableAPI{
			describeErr: &types.ResourceNotFoundException{},
			createErr:   &types.ResourceInUseException{},
		}
		require.NoError(t, ensureOrdersTable(ctx, api, "orders", zerolog.Nop()))
	})

	t.Run("other describe errors surface", func(t *testing.T) {
		api := &fakeTableAPI{describeErr: errors.New("access denied")}
		require.ErrorContains(t, ensureOrdersTable(ctx, api, "orders", zerolog.Nop()), "access denied")
	})
}
