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

const defaultEnrollmentsTableName = "enrollments"

type enrollmentItem struct {
	ID               string `dynamodbav:"id"`
	CourseID         string `dynamodbav:"course_id"`
	MemberID         string `dynamodbav:"member_id"`
	UserID           string `dynamodbav:"user_id"`
	PaymentStatus    string `dynamodbav:"payment_status"`
	EnrollmentStatus string `dynamodbav:"enrollment_status"`
	PaymentAmount    int64  `dynamodbav:"payment_amount"`
	CommissionAmount int64  `dynamodbav:"commission_amount"`
	Payout           int64  `dynamodbav:"payout"`
	GatewayOrderID   string `dynamodbav:"gateway_order_id,omitempty"`
	GatewayPaymentID string `dynamodbav:"gateway_payment_id,omitempty"`
	GatewaySignature string `dynamodbav:"gateway_signature,omitempty"`
	CreatedAt        string `dynamodbav:"created_at"`
	UpdatedAt        string `dynamodbav:"updated_at"`
}

// EnrollmentDynamoRepository persists Enrollment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type EnrollmentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEnrollmentRepository = (*EnrollmentDynamoRepository)(nil)

func NewEnrollmentDynamoRepository(ddb *dynamodb.Client, tableName string) *EnrollmentDynamoRepository {
	return &EnrollmentDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultEnrollmentsTableName),
	}
}

func (r *EnrollmentDynamoRepository) Create(ctx context.Context, e entities.Enrollment) (entities.Enrollment, error) {
	av, err := attributevalue.MarshalMap(toEnrollmentItem(e))
	if err != nil {
		return entities.Enrollment{}, err
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
		return entities.Enrollment{}, err
	}
	return e, nil
}

func (r *EnrollmentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Enrollment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Enrollment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Enrollment{}, nil
	}

	var it enrollmentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Enrollment{}, err
	}
	return fromEnrollmentItem(it), nil
}

func (r *EnrollmentDynamoRepository) SetGatewayOrder(ctx context.Context, id, orderID string) (entities.Enrollment, error) {
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

func (r *EnrollmentDynamoRepository) MarkPaid(ctx context.Context, id string, s entities.PaymentSettlement, paymentID, signature string) (entities.Enrollment, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #payment_status = :ps, #enrollment_status = :es, #payment_amount = :amount, " +
			"#commission_amount = :commission, #payout = :payout, #gateway_payment_id = :pid, " +
			"#gateway_signature = :sig, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":ps":         &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPaid)},
			":es":         &types.AttributeValueMemberS{Value: string(entities.EnrollmentStatusActive)},
			":amount":     &types.AttributeValueMemberN{Value: paiseToString(s.AmountPaise)},
			":commission": &types.AttributeValueMemberN{Value: paiseToString(s.CommissionPaise)},
			":payout":     &types.AttributeValueMemberN{Value: paiseToString(s.PayoutPaise)},
			":pid":        &types.AttributeValueMemberS{Value: paymentID},
			":sig":        &types.AttributeValueMemberS{Value: signature},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#payment_status":     "payment_status",
			"#enrollment_status":  "enrollment_status",
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

func (r *EnrollmentDynamoRepository) MarkFailed(ctx context.Context, id, paymentID string) (entities.Enrollment, error) {
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

func (r *EnrollmentDynamoRepository) MarkRefunded(ctx context.Context, id string) (entities.Enrollment, error) {
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

func (r *EnrollmentDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Enrollment, error) {
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
			return entities.Enrollment{}, nil
		}
		return entities.Enrollment{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Enrollment{}, nil
	}
	var it enrollmentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Enrollment{}, err
	}
	return fromEnrollmentItem(it), nil
}

func toEnrollmentItem(e entities.Enrollment) enrollmentItem {
	return enrollmentItem{
		ID:               e.ID,
		CourseID:         e.CourseID,
		MemberID:         e.MemberID,
		UserID:           e.UserID,
		PaymentStatus:    string(e.PaymentStatus),
		EnrollmentStatus: string(e.EnrollmentStatus),
		PaymentAmount:    int64(e.AmountPaise),
		CommissionAmount: int64(e.CommissionPaise),
		Payout:           int64(e.PayoutPaise),
		GatewayOrderID:   e.GatewayOrderID,
		GatewayPaymentID: e.GatewayPaymentID,
		GatewaySignature: e.GatewaySignature,
		CreatedAt:        formatTime(e.CreatedAt),
		UpdatedAt:        formatTime(e.UpdatedAt),
	}
}

func fromEnrollmentItem(it enrollmentItem) entities.Enrollment {
	return entities.Enrollment{
		ID:               it.ID,
		CourseID:         it.CourseID,
		MemberID:         it.MemberID,
		UserID:           it.UserID,
		PaymentStatus:    entities.PaymentStatus(it.PaymentStatus),
		EnrollmentStatus: entities.EnrollmentStatus(it.EnrollmentStatus),
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
