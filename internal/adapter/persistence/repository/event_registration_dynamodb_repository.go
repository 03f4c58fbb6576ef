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

const defaultEventRegistrationsTableName = "event_registrations"

type eventRegistrationItem struct {
	ID               string `dynamodbav:"id"`
	EventID          string `dynamodbav:"event_id"`
	MemberID         string `dynamodbav:"member_id"`
	UserID           string `dynamodbav:"user_id"`
	PaymentStatus    string `dynamodbav:"payment_status"`
	PaymentAmount    int64  `dynamodbav:"payment_amount"`
	CommissionAmount int64  `dynamodbav:"commission_amount"`
	Payout           int64  `dynamodbav:"payout"`
	GatewayOrderID   string `dynamodbav:"gateway_order_id,omitempty"`
	GatewayPaymentID string `dynamodbav:"gateway_payment_id,omitempty"`
	GatewaySignature string `dynamodbav:"gateway_signature,omitempty"`
	CreatedAt        string `dynamodbav:"created_at"`
	UpdatedAt        string `dynamodbav:"updated_at"`
}

// EventRegistrationDynamoRepository persists EventRegistration entities in
// DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type EventRegistrationDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEventRegistrationRepository = (*EventRegistrationDynamoRepository)(nil)

func NewEventRegistrationDynamoRepository(ddb *dynamodb.Client, tableName string) *EventRegistrationDynamoRepository {
	return &EventRegistrationDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultEventRegistrationsTableName),
	}
}

func (r *EventRegistrationDynamoRepository) Create(ctx context.Context, reg entities.EventRegistration) (entities.EventRegistration, error) {
	av, err := attributevalue.MarshalMap(toEventRegistrationItem(reg))
	if err != nil {
		return entities.EventRegistration{}, err
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
		return entities.EventRegistration{}, err
	}
	return reg, nil
}

func (r *EventRegistrationDynamoRepository) GetByID(ctx context.Context, id string) (entities.EventRegistration, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.EventRegistration{}, err
	}
	if len(out.Item) == 0 {
		return entities.EventRegistration{}, nil
	}

	var it eventRegistrationItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.EventRegistration{}, err
	}
	return fromEventRegistrationItem(it), nil
}

func (r *EventRegistrationDynamoRepository) SetGatewayOrder(ctx context.Context, id, orderID string) (entities.EventRegistration, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #gateway_order_id = :oid, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":oid":        &types.AttributeValueMemberS{Value: orderID},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#gateway_order_id": "gateway_order_id",
			"#updated_at":       "updated_at",
		}
		return expr, vals, names
	})
}

func (r *EventRegistrationDynamoRepository) MarkPaid(ctx context.Context, id string, s entities.PaymentSettlement, paymentID, signature string) (entities.EventRegistration, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #payment_status = :ps, #payment_amount = :amount, #commission_amount = :commission, " +
			"#payout = :payout, #gateway_payment_id = :pid, #gateway_signature = :sig, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":ps":         &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPaid)},
			":amount":     &types.AttributeValueMemberN{Value: paiseToString(s.AmountPaise)},
			":commission": &types.AttributeValueMemberN{Value: paiseToString(s.CommissionPaise)},
			":payout":     &types.AttributeValueMemberN{Value: paiseToString(s.PayoutPaise)},
			":pid":        &types.AttributeValueMemberS{Value: paymentID},
			":sig":        &types.AttributeValueMemberS{Value: signature},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#payment_status":     "payment_status",
			"#payment_amount":     "payment_amount",
			"#commission_amount":  "commission_amount",
			"#payout":             "payout",
			"#gateway_payment_id": "gateway_payment_id",
			"#gateway_signature":  "gateway_signature",
			"#updated_at":         "updated_at",
		}
		return expr, vals, names
	})
}

func (r *EventRegistrationDynamoRepository) MarkFailed(ctx context.Context, id, paymentID string) (entities.EventRegistration, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #payment_status = :ps, #gateway_payment_id = :pid, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":ps":         &types.AttributeValueMemberS{Value: string(entities.PaymentStatusFailed)},
			":pid":        &types.AttributeValueMemberS{Value: paymentID},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#payment_status":     "payment_status",
			"#gateway_payment_id": "gateway_payment_id",
			"#updated_at":         "updated_at",
		}
		return expr, vals, names
	})
}

func (r *EventRegistrationDynamoRepository) MarkRefunded(ctx context.Context, id string) (entities.EventRegistration, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #payment_status = :ps, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":ps":         &types.AttributeValueMemberS{Value: string(entities.PaymentStatusRefunded)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#payment_status": "payment_status",
			"#updated_at":     "updated_at",
		}
		return expr, vals, names
	})
}

func (r *EventRegistrationDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.EventRegistration, error) {
	now := formatTime(timeNow())
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.EventRegistration{}, nil
		}
		return entities.EventRegistration{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.EventRegistration{}, nil
	}
	var it eventRegistrationItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.EventRegistration{}, err
	}
	return fromEventRegistrationItem(it), nil
}

func toEventRegistrationItem(r entities.EventRegistration) eventRegistrationItem {
	return eventRegistrationItem{
		ID:               r.ID,
		EventID:          r.EventID,
		MemberID:         r.MemberID,
		UserID:           r.UserID,
		PaymentStatus:    string(r.PaymentStatus),
		PaymentAmount:    int64(r.AmountPaise),
		CommissionAmount: int64(r.CommissionPaise),
		Payout:           int64(r.PayoutPaise),
		GatewayOrderID:   r.GatewayOrderID,
		GatewayPaymentID: r.GatewayPaymentID,
		GatewaySignature: r.GatewaySignature,
		CreatedAt:        formatTime(r.CreatedAt),
		UpdatedAt:        formatTime(r.UpdatedAt),
	}
}

func fromEventRegistrationItem(it eventRegistrationItem) entities.EventRegistration {
	return entities.EventRegistration{
		ID:            it.ID,
		EventID:       it.EventID,
		MemberID:      it.MemberID,
		UserID:        it.UserID,
		PaymentStatus: entities.PaymentStatus(it.PaymentStatus),
		PaymentSettlement: entities.PaymentSettlement{
			AmountPaise:     entities.Paise(it.PaymentAmount),
			CommissionPaise: entities.Paise(it.CommissionAmount),
			PayoutPaise:     entities.Paise(it.Payout),
		},
		GatewayCorrelation: entities.GatewayCorrelation{
			GatewayOrderID:   it.GatewayOrderID,
			GatewayPaymentID: it.GatewayPaymentID,
			GatewaySignature: it.GatewaySignature,
		},
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
}
