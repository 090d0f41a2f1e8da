package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type paymentLinkItem struct {
	UniqueID       string `dynamodbav:"unique_id"`
	OwnerID        string `dynamodbav:"owner_id"`
	Amount         string `dynamodbav:"amount"`
	Currency       string `dynamodbav:"currency"`
	Description    string `dynamodbav:"description"`
	Status         string `dynamodbav:"status"`
	ExpirationDate string `dynamodbav:"expiration_date,omitempty"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

// PaymentLinkDynamoRepository persists PaymentLink entities in DynamoDB.
//
// Table requirements:
//   - PK: unique_id (string)
//   - GSI: owner_id-index (PK: owner_id, SK: created_at)
type PaymentLinkDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IPaymentLinkRepository = (*PaymentLinkDynamoRepository)(nil)

func NewPaymentLinkDynamoRepository(ddb DynamoDBAPI, tableName string) *PaymentLinkDynamoRepository {
	if tableName == "" {
		tableName = DefaultPaymentLinksTableName
	}
	return &PaymentLinkDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PaymentLinkDynamoRepository) Create(ctx context.Context, link entities.PaymentLink) (entities.PaymentLink, error) {
	av, err := attributevalue.MarshalMap(toPaymentLinkItem(link))
	if err != nil {
		return entities.PaymentLink{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#unique_id)"),
		ExpressionAttributeNames: map[string]string{
			"#unique_id": "unique_id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.PaymentLink{}, interfaces.ErrPaymentLinkAlreadyExists
		}
		return entities.PaymentLink{}, err
	}
	return link, nil
}

func (r *PaymentLinkDynamoRepository) GetByToken(ctx context.Context, token string) (entities.PaymentLink, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"unique_id": &types.AttributeValueMemberS{Value: token},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentLink{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentLink{}, nil
	}

	var it paymentLinkItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentLink{}, err
	}
	return fromPaymentLinkItem(it), nil
}

func (r *PaymentLinkDynamoRepository) ListByOwner(ctx context.Context, ownerID string) ([]entities.PaymentLink, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(PaymentLinksOwnerIndex),
		KeyConditionExpression: aws.String("owner_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: ownerID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}

	links := make([]entities.PaymentLink, 0, len(raw))
	for _, item := range raw {
		var it paymentLinkItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		links = append(links, fromPaymentLinkItem(it))
	}
	sort.SliceStable(links, func(i, j int) bool { return links[i].CreatedAt.After(links[j].CreatedAt) })
	return links, nil
}

func (r *PaymentLinkDynamoRepository) TransitionStatus(ctx context.Context, token string, from, to entities.PaymentLinkStatus) (entities.PaymentLink, bool, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"unique_id": &types.AttributeValueMemberS{Value: token},
		},
		ConditionExpression: aws.String("attribute_exists(#unique_id) AND #status = :from"),
		UpdateExpression:    aws.String("SET #status = :to, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#unique_id":  "unique_id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from":       &types.AttributeValueMemberS{Value: string(from)},
			":to":         &types.AttributeValueMemberS{Value: string(to)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.PaymentLink{}, false, nil
		}
		return entities.PaymentLink{}, false, err
	}

	var it paymentLinkItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.PaymentLink{}, false, err
	}
	return fromPaymentLinkItem(it), true, nil
}

func toPaymentLinkItem(l entities.PaymentLink) paymentLinkItem {
	it := paymentLinkItem{
		UniqueID:    l.UniqueID,
		OwnerID:     l.OwnerID,
		Amount:      l.Amount.StringFixed(entities.CurrencyExponent(l.Currency)),
		Currency:    l.Currency,
		Description: l.Description,
		Status:      string(l.Status),
		CreatedAt:   formatTime(l.CreatedAt),
		UpdatedAt:   formatTime(l.UpdatedAt),
	}
	if l.ExpirationDate != nil {
		it.ExpirationDate = l.ExpirationDate.UTC().Format(dateLayout)
	}
	return it
}

func fromPaymentLinkItem(it paymentLinkItem) entities.PaymentLink {
	l := entities.PaymentLink{
		UniqueID:    it.UniqueID,
		OwnerID:     it.OwnerID,
		Amount:      parseDecimal(it.Amount),
		Currency:    it.Currency,
		Description: it.Description,
		Status:      entities.PaymentLinkStatus(it.Status),
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
	if it.ExpirationDate != "" {
		if d, err := time.Parse(dateLayout, it.ExpirationDate); err == nil {
			l.ExpirationDate = &d
		}
	}
	return l
}
