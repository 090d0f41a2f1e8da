package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"dealflow/internal/adapter/persistence/repository/mocks"
	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func sampleAttempt(status entities.AttemptStatus, eventID string) entities.PaymentAttempt {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return entities.PaymentAttempt{
		GatewayAttemptID: "pi_1",
		LinkID:           "link-1",
		OwnerID:          "owner-1",
		Provider:         entities.ProviderStripe,
		Amount:           decimal.RequireFromString("100.00"),
		Currency:         "USD",
		Status:           status,
		PaymentMethod:    "card",
		LastEventID:      eventID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func mustMarshal(t *testing.T, it paymentAttemptItem) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return av
}

func TestPaymentAttemptDynamoRepository_Upsert(t *testing.T) {
	t.Run("new row is created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mocks.NewMockDynamoDBAPI(ctrl)
		repo := NewPaymentAttemptDynamoRepository(ddb, "attempts")
		a := sampleAttempt(entities.AttemptStatusSuccess, "evt_1")

		ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
				if *in.TableName != "attempts" {
					t.Fatalf("unexpected table %s", *in.TableName)
				}
				if *in.ConditionExpression != upsertCondition {
					t.Fatalf("unexpected condition %s", *in.ConditionExpression)
				}
				if strings.Contains(*in.UpdateExpression, "if_not_exists(#method") {
					t.Fatalf("terminal write must overwrite payment method: %s", *in.UpdateExpression)
				}
				if in.ReturnValuesOnConditionCheckFailure != types.ReturnValuesOnConditionCheckFailureAllOld {
					t.Fatalf("expected ALL_OLD on condition failure")
				}
				rank := in.ExpressionAttributeValues[":rank"].(*types.AttributeValueMemberN).Value
				if rank != "3" {
					t.Fatalf("expected rank 3, got %s", rank)
				}
				now := in.ExpressionAttributeValues[":now"].(*types.AttributeValueMemberS).Value
				return &dynamodb.UpdateItemOutput{Attributes: mustMarshal(t, paymentAttemptItem{
					GatewayAttemptID: "pi_1", LinkID: "link-1", Amount: "100.00", Currency: "USD",
					Status: "success", StatusRank: 3, LastEventID: "evt_1", CreatedAt: now, UpdatedAt: now,
				})}, nil
			})

		res, err := repo.Upsert(context.Background(), a)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Applied || !res.Created {
			t.Fatalf("expected applied+created, got %+v", res)
		}
		if !res.Attempt.Amount.Equal(decimal.RequireFromString("100")) {
			t.Fatalf("unexpected amount %s", res.Attempt.Amount)
		}
	})

	t.Run("pending write keeps stored details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mocks.NewMockDynamoDBAPI(ctrl)
		repo := NewPaymentAttemptDynamoRepository(ddb, "")

		ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
				if *in.TableName != DefaultPaymentAttemptsTableName {
					t.Fatalf("unexpected table %s", *in.TableName)
				}
				for _, want := range []string{"if_not_exists(#method", "if_not_exists(#email", "if_not_exists(#metadata"} {
					if !strings.Contains(*in.UpdateExpression, want) {
						t.Fatalf("expected %q in %s", want, *in.UpdateExpression)
					}
				}
				return &dynamodb.UpdateItemOutput{Attributes: mustMarshal(t, paymentAttemptItem{
					GatewayAttemptID: "pi_1", LinkID: "link-1", Status: "pending", CreatedAt: "2026-01-01T00:00:00Z",
				})}, nil
			})

		res, err := repo.Upsert(context.Background(), sampleAttempt(entities.AttemptStatusPending, "evt_0"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Applied || res.Created {
			t.Fatalf("expected applied update, got %+v", res)
		}
	})

	t.Run("stale write returns stored row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mocks.NewMockDynamoDBAPI(ctrl)
		repo := NewPaymentAttemptDynamoRepository(ddb, "attempts")

		old := mustMarshal(t, paymentAttemptItem{GatewayAttemptID: "pi_1", LinkID: "link-1", Status: "success", StatusRank: 3, LastEventID: "evt_1"})
		ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil, &types.ConditionalCheckFailedException{Item: old})

		res, err := repo.Upsert(context.Background(), sampleAttempt(entities.AttemptStatusPending, "evt_0"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Applied || res.Attempt.Status != entities.AttemptStatusSuccess {
			t.Fatalf("expected stale noop with stored success row, got %+v", res)
		}
	})

	t.Run("attempt bound to another link", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mocks.NewMockDynamoDBAPI(ctrl)
		repo := NewPaymentAttemptDynamoRepository(ddb, "attempts")

		old := mustMarshal(t, paymentAttemptItem{GatewayAttemptID: "pi_1", LinkID: "other-link", Status: "pending", StatusRank: 1})
		ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil, &types.ConditionalCheckFailedException{Item: old})

		_, err := repo.Upsert(context.Background(), sampleAttempt(entities.AttemptStatusSuccess, "evt_1"))
		if !errors.Is(err, interfaces.ErrAttemptLinkConflict) {
			t.Fatalf("expected ErrAttemptLinkConflict, got %v", err)
		}
	})

	t.Run("condition failure without old item falls back to read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mocks.NewMockDynamoDBAPI(ctrl)
		repo := NewPaymentAttemptDynamoRepository(ddb, "attempts")

		ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil, &types.ConditionalCheckFailedException{})
		ddb.EXPECT().GetItem(gomock.Any(), gomock.Any()).Return(&dynamodb.GetItemOutput{
			Item: mustMarshal(t, paymentAttemptItem{GatewayAttemptID: "pi_1", LinkID: "link-1", Status: "success", StatusRank: 3, LastEventID: "evt_1"}),
		}, nil)

		res, err := repo.Upsert(context.Background(), sampleAttempt(entities.AttemptStatusSuccess, "evt_1"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Applied || res.Attempt.LastEventID != "evt_1" {
			t.Fatalf("expected duplicate noop, got %+v", res)
		}
	})

	t.Run("storage error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mocks.NewMockDynamoDBAPI(ctrl)
		repo := NewPaymentAttemptDynamoRepository(ddb, "attempts")

		ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil, errors.New("throttled"))

		if _, err := repo.Upsert(context.Background(), sampleAttempt(entities.AttemptStatusFailed, "evt_2")); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestPaymentAttemptDynamoRepository_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	ddb := mocks.NewMockDynamoDBAPI(ctrl)
	repo := NewPaymentAttemptDynamoRepository(ddb, "attempts")

	page1 := &dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			mustMarshal(t, paymentAttemptItem{GatewayAttemptID: "a", OwnerID: "owner-1", Currency: "USD", Amount: "10.00", Status: "success"}),
		},
		LastEvaluatedKey: map[string]types.AttributeValue{"gateway_attempt_id": &types.AttributeValueMemberS{Value: "a"}},
	}
	page2 := &dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			mustMarshal(t, paymentAttemptItem{GatewayAttemptID: "b", OwnerID: "owner-1", Currency: "EUR", Amount: "5.00", Status: "failed"}),
		},
	}
	gomock.InOrder(
		ddb.EXPECT().Query(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
				if *in.IndexName != PaymentAttemptsOwnerIndex {
					t.Fatalf("unexpected index %s", *in.IndexName)
				}
				return page1, nil
			}),
		ddb.EXPECT().Query(gomock.Any(), gomock.Any()).Return(page2, nil),
	)

	items, err := repo.List(context.Background(), entities.AttemptFilter{OwnerID: "owner-1", Currency: "usd"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].GatewayAttemptID != "a" {
		t.Fatalf("unexpected items %+v", items)
	}
}
