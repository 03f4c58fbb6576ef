package repository

import (
	"context"
	"errors"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultWebhookEventsTableName = "webhook_events"

type webhookEventItem struct {
	ID          string `dynamodbav:"id"`
	Event       string `dynamodbav:"event"`
	PaymentID   string `dynamodbav:"payment_id"`
	OrderID     string `dynamodbav:"order_id,omitempty"`
	PaymentType string `dynamodbav:"payment_type,omitempty"`
	EntityID    string `dynamodbav:"entity_id,omitempty"`
	ReceivedAt  string `dynamodbav:"received_at"`
}

// WebhookEventDynamoRepository is the idempotency ledger. The conditional
// put on the delivery's id is what turns duplicate gateway deliveries into
// observable no-ops.
//
// Table requirements:
//   - PK: id (string, payment_id + ":" + event)

type WebhookEventDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IWebhookEventRepository = (*WebhookEventDynamoRepository)(nil)

func NewWebhookEventDynamoRepository(ddb *dynamodb.Client, tableName string) *WebhookEventDynamoRepository {
	return &WebhookEventDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultWebhookEventsTableName),
	}
}

// Record writes the ledger row, reporting false when it already existed.
func (r *WebhookEventDynamoRepository) Record(ctx context.Context, e entities.WebhookEvent) (bool, error) {
	av, err := attributevalue.MarshalMap(webhookEventItem{
		ID:          e.ID,
		Event:       string(e.Kind),
		PaymentID:   e.PaymentID,
		OrderID:     e.OrderID,
		PaymentType: string(e.PaymentType),
		EntityID:    e.EntityID,
		ReceivedAt:  formatTime(e.ReceivedAt),
	})
	if err != nil {
		return false, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
