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

const defaultProductPurchasesTableName = "product_purchases"

type productPurchaseItem struct {
	ID               string `dynamodbav:"id"`
	ProductID        string `dynamodbav:"product_id"`
	EventID          string `dynamodbav:"event_id"`
	MemberID         string `dynamodbav:"member_id"`
	UserID           string `dynamodbav:"user_id"`
	PurchaseStatus   string `dynamodbav:"purchase_status"`
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

// ProductPurchaseDynamoRepository persists ProductPurchase entities in
// DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Settlement moves the purchase status alongside the payment status:
// paid -> completed, refunded -> refunded.

type ProductPurchaseDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProductPurchaseRepository = (*ProductPurchaseDynamoRepository)(nil)

func NewProductPurchaseDynamoRepository(ddb *dynamodb.Client, tableName string) *ProductPurchaseDynamoRepository {
	return &ProductPurchaseDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultProductPurchasesTableName),
	}
}

func (r *ProductPurchaseDynamoRepository) Create(ctx context.Context, p entities.ProductPurchase) (entities.ProductPurchase, error) {
	av, err := attributevalue.MarshalMap(toProductPurchaseItem(p))
	if err != nil {
		return entities.ProductPurchase{}, err
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
		return entities.ProductPurchase{}, err
	}
	return p, nil
}

func (r *ProductPurchaseDynamoRepository) GetByID(ctx context.Context, id string) (entities.ProductPurchase, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ProductPurchase{}, err
	}
	if len(out.Item) == 0 {
		return entities.ProductPurchase{}, nil
	}

	var it productPurchaseItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ProductPurchase{}, err
	}
	return fromProductPurchaseItem(it), nil
}

func (r *ProductPurchaseDynamoRepository) SetGatewayOrder(ctx context.Context, id, orderID string) (entities.ProductPurchase, error) {
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

func (r *ProductPurchaseDynamoRepository) MarkPaid(ctx context.Context, id string, s entities.PaymentSettlement, paymentID, signature string) (entities.ProductPurchase, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #payment_status = :ps, #purchase_status = :pcs, #payment_amount = :amount, " +
			"#commission_amount = :commission, #payout = :payout, #gateway_payment_id = :pid, " +
			"#gateway_signature = :sig, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":ps":         &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPaid)},
			":pcs":        &types.AttributeValueMemberS{Value: string(entities.PurchaseStatusCompleted)},
			":amount":     &types.AttributeValueMemberN{Value: paiseToString(s.AmountPaise)},
			":commission": &types.AttributeValueMemberN{Value: paiseToString(s.CommissionPaise)},
			":payout":     &types.AttributeValueMemberN{Value: paiseToString(s.PayoutPaise)},
			":pid":        &types.AttributeValueMemberS{Value: paymentID},
			":sig":        &types.AttributeValueMemberS{Value: signature},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#payment_status":     "payment_status",
			"#purchase_status":    "purchase_status",
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

func (r *ProductPurchaseDynamoRepository) MarkFailed(ctx context.Context, id, paymentID string) (entities.ProductPurchase, error) {
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

func (r *ProductPurchaseDynamoRepository) MarkRefunded(ctx context.Context, id string) (entities.ProductPurchase, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #payment_status = :ps, #purchase_status = :pcs, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":ps":         &types.AttributeValueMemberS{Value: string(entities.PaymentStatusRefunded)},
			":pcs":        &types.AttributeValueMemberS{Value: string(entities.PurchaseStatusRefunded)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#payment_status":  "payment_status",
			"#purchase_status": "purchase_status",
			"#updated_at":      "updated_at",
		}
		return expr, vals, names
	})
}

func (r *ProductPurchaseDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.ProductPurchase, error) {
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
			return entities.ProductPurchase{}, nil
		}
		return entities.ProductPurchase{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.ProductPurchase{}, nil
	}
	var it productPurchaseItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.ProductPurchase{}, err
	}
	return fromProductPurchaseItem(it), nil
}

func toProductPurchaseItem(p entities.ProductPurchase) productPurchaseItem {
	return productPurchaseItem{
		ID:               p.ID,
		ProductID:        p.ProductID,
		EventID:          p.EventID,
		MemberID:         p.MemberID,
		UserID:           p.UserID,
		PurchaseStatus:   string(p.PurchaseStatus),
		PaymentStatus:    string(p.PaymentStatus),
		PaymentAmount:    int64(p.AmountPaise),
		CommissionAmount: int64(p.CommissionPaise),
		Payout:           int64(p.PayoutPaise),
		GatewayOrderID:   p.GatewayOrderID,
		GatewayPaymentID: p.GatewayPaymentID,
		GatewaySignature: p.GatewaySignature,
		CreatedAt:        formatTime(p.CreatedAt),
		UpdatedAt:        formatTime(p.UpdatedAt),
	}
}

func fromProductPurchaseItem(it productPurchaseItem) entities.ProductPurchase {
	return entities.ProductPurchase{
		ID:             it.ID,
		ProductID:      it.ProductID,
		EventID:        it.EventID,
		MemberID:       it.MemberID,
		UserID:         it.UserID,
		PurchaseStatus: entities.PurchaseStatus(it.PurchaseStatus),
		PaymentStatus:  entities.PaymentStatus(it.PaymentStatus),
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
