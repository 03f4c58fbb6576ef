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

const defaultSessionsTableName = "mentor_sessions"

type sessionItem struct {
	ID               string `dynamodbav:"id"`
	MentorID         string `dynamodbav:"mentor_id"`
	MemberID         string `dynamodbav:"member_id"`
	UserID           string `dynamodbav:"user_id"`
	Status           string `dynamodbav:"status"`
	ConfirmedAt      string `dynamodbav:"confirmed_at,omitempty"`
	CommissionRate   string `dynamodbav:"commission_rate,omitempty"`
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

// SessionDynamoRepository persists MentorSession entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// MarkPaid is the settlement transition: it confirms the booking alongside
// the payment fields, so a captured payment and a confirmed session always
// move together.

type SessionDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISessionRepository = (*SessionDynamoRepository)(nil)

func NewSessionDynamoRepository(ddb *dynamodb.Client, tableName string) *SessionDynamoRepository {
	return &SessionDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultSessionsTableName),
	}
}

func (r *SessionDynamoRepository) Create(ctx context.Context, s entities.MentorSession) (entities.MentorSession, error) {
	av, err := attributevalue.MarshalMap(toSessionItem(s))
	if err != nil {
		return entities.MentorSession{}, err
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
		return entities.MentorSession{}, err
	}
	return s, nil
}

func (r *SessionDynamoRepository) GetByID(ctx context.Context, id string) (entities.MentorSession, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.MentorSession{}, err
	}
	if len(out.Item) == 0 {
		return entities.MentorSession{}, nil
	}

	var it sessionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.MentorSession{}, err
	}
	return fromSessionItem(it), nil
}

func (r *SessionDynamoRepository) SetGatewayOrder(ctx context.Context, id, orderID string) (entities.MentorSession, error) {
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

func (r *SessionDynamoRepository) MarkPaid(ctx context.Context, id string, s entities.PaymentSettlement, paymentID, signature string) (entities.MentorSession, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #payment_status = :ps, #status = :status, #confirmed_at = :confirmed_at, " +
			"#payment_amount = :amount, #commission_amount = :commission, #payout = :payout, " +
			"#gateway_payment_id = :pid, #gateway_signature = :sig, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":ps":           &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPaid)},
			":status":       &types.AttributeValueMemberS{Value: string(entities.SessionStatusConfirmed)},
			":confirmed_at": &types.AttributeValueMemberS{Value: now},
			":amount":       &types.AttributeValueMemberN{Value: paiseToString(s.AmountPaise)},
			":commission":   &types.AttributeValueMemberN{Value: paiseToString(s.CommissionPaise)},
			":payout":       &types.AttributeValueMemberN{Value: paiseToString(s.PayoutPaise)},
			":pid":          &types.AttributeValueMemberS{Value: paymentID},
			":sig":          &types.AttributeValueMemberS{Value: signature},
			":updated_at":   &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#payment_status":     "payment_status",
			"#status":             "status",
			"#confirmed_at":       "confirmed_at",
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

func (r *SessionDynamoRepository) MarkFailed(ctx context.Context, id, paymentID string) (entities.MentorSession, error) {
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

func (r *SessionDynamoRepository) MarkRefunded(ctx context.Context, id string) (entities.MentorSession, error) {
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

func (r *SessionDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.MentorSession, error) {
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
			return entities.MentorSession{}, nil
		}
		return entities.MentorSession{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.MentorSession{}, nil
	}
	var it sessionItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.MentorSession{}, err
	}
	return fromSessionItem(it), nil
}

func toSessionItem(s entities.MentorSession) sessionItem {
	it := sessionItem{
		ID:               s.ID,
		MentorID:         s.MentorID,
		MemberID:         s.MemberID,
		UserID:           s.UserID,
		Status:           string(s.Status),
		PaymentStatus:    string(s.PaymentStatus),
		PaymentAmount:    int64(s.AmountPaise),
		CommissionAmount: int64(s.CommissionPaise),
		Payout:           int64(s.PayoutPaise),
		GatewayOrderID:   s.GatewayOrderID,
		GatewayPaymentID: s.GatewayPaymentID,
		GatewaySignature: s.GatewaySignature,
		CreatedAt:        formatTime(s.CreatedAt),
		UpdatedAt:        formatTime(s.UpdatedAt),
	}
	if s.CommissionRate > 0 {
		it.CommissionRate = floatToString(s.CommissionRate)
	}
	if s.ConfirmedAt != nil {
		it.ConfirmedAt = formatTime(*s.ConfirmedAt)
	}
	return it
}

func fromSessionItem(it sessionItem) entities.MentorSession {
	s := entities.MentorSession{
		ID:            it.ID,
		MentorID:      it.MentorID,
		MemberID:      it.MemberID,
		UserID:        it.UserID,
		Status:        entities.SessionStatus(it.Status),
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
	if it.CommissionRate != "" {
		s.CommissionRate = parseFloat(it.CommissionRate)
	}
	if it.ConfirmedAt != "" {
		t := parseTime(it.ConfirmedAt)
		s.ConfirmedAt = &t
	}
	return s
}
