package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type paymentAttemptItem struct {
	GatewayAttemptID string         `dynamodbav:"gateway_attempt_id"`
	LinkID           string         `dynamodbav:"payment_link_id"`
	OwnerID          string         `dynamodbav:"owner_id"`
	Provider         string         `dynamodbav:"provider"`
	Amount           string         `dynamodbav:"amount"`
	Currency         string         `dynamodbav:"currency"`
	Status           string         `dynamodbav:"status"`
	StatusRank       int            `dynamodbav:"status_rank"`
	PaymentMethod    string         `dynamodbav:"payment_method"`
	CustomerEmail    string         `dynamodbav:"customer_email"`
	CustomerName     string         `dynamodbav:"customer_name"`
	Metadata         map[string]any `dynamodbav:"metadata"`
	LastEventID      string         `dynamodbav:"last_event_id"`
	CreatedAt        string         `dynamodbav:"created_at"`
	UpdatedAt        string         `dynamodbav:"updated_at"`
}

// upsertCondition admits a write for a new row, or for a row of the same link
// whose status rank does not exceed the incoming one and that was not already
// written by this event.
const upsertCondition = "attribute_not_exists(#id) OR (#link = :link AND #rank <= :rank AND #last_event <> :event)"

// PaymentAttemptDynamoRepository is the DynamoDB attempt ledger.
//
// Table requirements:
//   - PK: gateway_attempt_id (string)
//   - GSI: payment_link_id-index (PK: payment_link_id)
//   - GSI: owner_id-index (PK: owner_id)
type PaymentAttemptDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IPaymentAttemptRepository = (*PaymentAttemptDynamoRepository)(nil)

func NewPaymentAttemptDynamoRepository(ddb DynamoDBAPI, tableName string) *PaymentAttemptDynamoRepository {
	if tableName == "" {
		tableName = DefaultPaymentAttemptsTableName
	}
	return &PaymentAttemptDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PaymentAttemptDynamoRepository) Upsert(ctx context.Context, a entities.PaymentAttempt) (interfaces.AttemptUpsertResult, error) {
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = time.Now().UTC()
	}
	now := formatTime(a.UpdatedAt)
	metadata, err := attributevalue.Marshal(nonNilMetadata(a.Metadata))
	if err != nil {
		return interfaces.AttemptUpsertResult{}, err
	}

	names := map[string]string{
		"#id":         "gateway_attempt_id",
		"#link":       "payment_link_id",
		"#owner":      "owner_id",
		"#provider":   "provider",
		"#amount":     "amount",
		"#currency":   "currency",
		"#status":     "status",
		"#rank":       "status_rank",
		"#method":     "payment_method",
		"#email":      "customer_email",
		"#name":       "customer_name",
		"#metadata":   "metadata",
		"#last_event": "last_event_id",
		"#created_at": "created_at",
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":link":     &types.AttributeValueMemberS{Value: a.LinkID},
		":owner":    &types.AttributeValueMemberS{Value: a.OwnerID},
		":provider": &types.AttributeValueMemberS{Value: a.Provider},
		":amount":   &types.AttributeValueMemberS{Value: a.Amount.StringFixed(entities.CurrencyExponent(a.Currency))},
		":currency": &types.AttributeValueMemberS{Value: a.Currency},
		":status":   &types.AttributeValueMemberS{Value: string(a.Status)},
		":rank":     &types.AttributeValueMemberN{Value: strconv.Itoa(a.Status.Rank())},
		":method":   &types.AttributeValueMemberS{Value: a.PaymentMethod},
		":email":    &types.AttributeValueMemberS{Value: a.CustomerEmail},
		":name":     &types.AttributeValueMemberS{Value: a.CustomerName},
		":metadata": metadata,
		":event":    &types.AttributeValueMemberS{Value: a.LastEventID},
		":now":      &types.AttributeValueMemberS{Value: now},
	}

	expr := "SET #link = :link, #owner = :owner, #provider = :provider, #amount = :amount, #currency = :currency, " +
		"#status = :status, #rank = :rank, #last_event = :event, #updated_at = :now, #created_at = if_not_exists(#created_at, :now), "
	if a.Status.Terminal() {
		expr += "#method = :method, #email = :email, #name = :name, #metadata = :metadata"
	} else {
		expr += "#method = if_not_exists(#method, :method), #email = if_not_exists(#email, :email), " +
			"#name = if_not_exists(#name, :name), #metadata = if_not_exists(#metadata, :metadata)"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"gateway_attempt_id": &types.AttributeValueMemberS{Value: a.GatewayAttemptID},
		},
		ConditionExpression:                 aws.String(upsertCondition),
		UpdateExpression:                    aws.String(expr),
		ExpressionAttributeNames:            names,
		ExpressionAttributeValues:           values,
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if !errors.As(err, &cfe) {
			return interfaces.AttemptUpsertResult{}, err
		}
		stored, err := r.storedAfterConflict(ctx, a.GatewayAttemptID, cfe.Item)
		if err != nil {
			return interfaces.AttemptUpsertResult{}, err
		}
		if stored.LinkID != a.LinkID {
			return interfaces.AttemptUpsertResult{}, interfaces.ErrAttemptLinkConflict
		}
		return interfaces.AttemptUpsertResult{Attempt: stored, Applied: false}, nil
	}

	var it paymentAttemptItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return interfaces.AttemptUpsertResult{}, err
	}
	return interfaces.AttemptUpsertResult{
		Attempt: fromPaymentAttemptItem(it),
		Applied: true,
		Created: it.CreatedAt == now,
	}, nil
}

func (r *PaymentAttemptDynamoRepository) storedAfterConflict(ctx context.Context, id string, old map[string]types.AttributeValue) (entities.PaymentAttempt, error) {
	if len(old) == 0 {
		return r.GetByAttemptID(ctx, id)
	}
	var it paymentAttemptItem
	if err := attributevalue.UnmarshalMap(old, &it); err != nil {
		return entities.PaymentAttempt{}, err
	}
	return fromPaymentAttemptItem(it), nil
}

func (r *PaymentAttemptDynamoRepository) GetByAttemptID(ctx context.Context, attemptID string) (entities.PaymentAttempt, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"gateway_attempt_id": &types.AttributeValueMemberS{Value: attemptID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentAttempt{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentAttempt{}, nil
	}
	var it paymentAttemptItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentAttempt{}, err
	}
	return fromPaymentAttemptItem(it), nil
}

func (r *PaymentAttemptDynamoRepository) ListByLink(ctx context.Context, linkID string) ([]entities.PaymentAttempt, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(PaymentAttemptsLinkIndex),
		KeyConditionExpression: aws.String("payment_link_id = :lid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":lid": &types.AttributeValueMemberS{Value: linkID},
		},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalAttempts(raw, entities.AttemptFilter{})
}

// List queries the owner index when the filter names an owner and scans
// otherwise; the remaining predicates are applied in memory.
func (r *PaymentAttemptDynamoRepository) List(ctx context.Context, filter entities.AttemptFilter) ([]entities.PaymentAttempt, error) {
	var (
		raw []map[string]types.AttributeValue
		err error
	)
	if filter.OwnerID != "" {
		raw, err = queryAll(ctx, r.ddb, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(PaymentAttemptsOwnerIndex),
			KeyConditionExpression: aws.String("owner_id = :oid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":oid": &types.AttributeValueMemberS{Value: filter.OwnerID},
			},
		})
	} else {
		raw, err = scanAll(ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	}
	if err != nil {
		return nil, err
	}
	return unmarshalAttempts(raw, filter)
}

func unmarshalAttempts(raw []map[string]types.AttributeValue, filter entities.AttemptFilter) ([]entities.PaymentAttempt, error) {
	out := make([]entities.PaymentAttempt, 0, len(raw))
	for _, item := range raw {
		var it paymentAttemptItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		a := fromPaymentAttemptItem(it)
		if filter.Matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

func nonNilMetadata(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func fromPaymentAttemptItem(it paymentAttemptItem) entities.PaymentAttempt {
	return entities.PaymentAttempt{
		GatewayAttemptID: it.GatewayAttemptID,
		LinkID:           it.LinkID,
		OwnerID:          it.OwnerID,
		Provider:         it.Provider,
		Amount:           parseDecimal(it.Amount),
		Currency:         it.Currency,
		Status:           entities.AttemptStatus(it.Status),
		PaymentMethod:    it.PaymentMethod,
		CustomerEmail:    it.CustomerEmail,
		CustomerName:     it.CustomerName,
		Metadata:         it.Metadata,
		LastEventID:      it.LastEventID,
		CreatedAt:        parseTime(it.CreatedAt),
		UpdatedAt:        parseTime(it.UpdatedAt),
	}
}
