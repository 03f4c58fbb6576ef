package repository

import (
	"context"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultEventsTableName = "events"

type eventItem struct {
	ID             string `dynamodbav:"id"`
	OrganizerID    string `dynamodbav:"organizer_id"`
	Title          string `dynamodbav:"title"`
	TicketPrice    int64  `dynamodbav:"ticket_price"`
	CommissionRate string `dynamodbav:"commission_rate,omitempty"`
	StartsAt       string `dynamodbav:"starts_at"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

// EventDynamoRepository reads and seeds event rows. Reconciliation only
// needs GetByID (the commission rate source for registrations and product
// purchases).

type EventDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEventRepository = (*EventDynamoRepository)(nil)

func NewEventDynamoRepository(ddb *dynamodb.Client, tableName string) *EventDynamoRepository {
	return &EventDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultEventsTableName),
	}
}

func (r *EventDynamoRepository) Create(ctx context.Context, e entities.Event) (entities.Event, error) {
	it := eventItem{
		ID:          e.ID,
		OrganizerID: e.OrganizerID,
		Title:       e.Title,
		TicketPrice: int64(e.TicketPricePaise),
		StartsAt:    formatTime(e.StartsAt),
		CreatedAt:   formatTime(e.CreatedAt),
		UpdatedAt:   formatTime(e.UpdatedAt),
	}
	if e.CommissionRate > 0 {
		it.CommissionRate = floatToString(e.CommissionRate)
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Event{}, err
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
		return entities.Event{}, err
	}
	return e, nil
}

func (r *EventDynamoRepository) GetByID(ctx context.Context, id string) (entities.Event, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.Event{}, err
	}
	if len(out.Item) == 0 {
		return entities.Event{}, nil
	}

	var it eventItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Event{}, err
	}
	return entities.Event{
		ID:               it.ID,
		OrganizerID:      it.OrganizerID,
		Title:            it.Title,
		TicketPricePaise: entities.Paise(it.TicketPrice),
		CommissionRate:   parseFloat(it.CommissionRate),
		StartsAt:         parseTime(it.StartsAt),
		CreatedAt:        parseTime(it.CreatedAt),
		UpdatedAt:        parseTime(it.UpdatedAt),
	}, nil
}
