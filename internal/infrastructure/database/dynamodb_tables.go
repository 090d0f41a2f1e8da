package database

import (
	"context"
	"errors"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TableCreator is the part of *dynamodb.Client used by migrations.
type TableCreator interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// PaymentTables builds the table definitions for the link and attempt stores.
func PaymentTables(linksTable, attemptsTable string) []*dynamodb.CreateTableInput {
	str := func(name string) types.AttributeDefinition {
		return types.AttributeDefinition{AttributeName: aws.String(name), AttributeType: types.ScalarAttributeTypeS}
	}
	hashIndex := func(name, hash string, rng ...string) types.GlobalSecondaryIndex {
		keys := []types.KeySchemaElement{{AttributeName: aws.String(hash), KeyType: types.KeyTypeHash}}
		for _, r := range rng {
			keys = append(keys, types.KeySchemaElement{AttributeName: aws.String(r), KeyType: types.KeyTypeRange})
		}
		return types.GlobalSecondaryIndex{
			IndexName:  aws.String(name),
			KeySchema:  keys,
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}
	}

	return []*dynamodb.CreateTableInput{
		{
			TableName:            aws.String(linksTable),
			BillingMode:          types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{str("unique_id"), str("owner_id"), str("created_at")},
			KeySchema:            []types.KeySchemaElement{{AttributeName: aws.String("unique_id"), KeyType: types.KeyTypeHash}},
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				hashIndex("owner_id-index", "owner_id", "created_at"),
			},
		},
		{
			TableName:            aws.String(attemptsTable),
			BillingMode:          types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{str("gateway_attempt_id"), str("payment_link_id"), str("owner_id")},
			KeySchema:            []types.KeySchemaElement{{AttributeName: aws.String("gateway_attempt_id"), KeyType: types.KeyTypeHash}},
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				hashIndex("payment_link_id-index", "payment_link_id"),
				hashIndex("owner_id-index", "owner_id"),
			},
		},
	}
}

// CreatePaymentTables creates missing tables; existing ones are left alone.
func CreatePaymentTables(ctx context.Context, ddb TableCreator, linksTable, attemptsTable string) error {
	for _, in := range PaymentTables(linksTable, attemptsTable) {
		_, err := ddb.CreateTable(ctx, in)
		var inUse *types.ResourceInUseException
		switch {
		case err == nil:
			log.Printf("[migrate][dynamodb] created table=%s", *in.TableName)
		case errors.As(err, &inUse):
			log.Printf("[migrate][dynamodb] table exists table=%s", *in.TableName)
		default:
			return err
		}
	}
	return nil
}
