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

const defaultCoursesTableName = "courses"

type courseItem struct {
	ID             string `dynamodbav:"id"`
	MentorID       string `dynamodbav:"mentor_id"`
	Title          string `dynamodbav:"title"`
	Price          int64  `dynamodbav:"price"`
	CommissionRate string `dynamodbav:"commission_rate,omitempty"`
	Published      bool   `dynamodbav:"published"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

// CourseDynamoRepository reads and seeds course rows. Reconciliation only
// needs GetByID (the commission rate source for enrollments).

type CourseDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICourseRepository = (*CourseDynamoRepository)(nil)

func NewCourseDynamoRepository(ddb *dynamodb.Client, tableName string) *CourseDynamoRepository {
	return &CourseDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultCoursesTableName),
	}
}

func (r *CourseDynamoRepository) Create(ctx context.Context, c entities.Course) (entities.Course, error) {
	it := courseItem{
		ID:        c.ID,
		MentorID:  c.MentorID,
		Title:     c.Title,
		Price:     int64(c.PricePaise),
		Published: c.Published,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
	if c.CommissionRate > 0 {
		it.CommissionRate = floatToString(c.CommissionRate)
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Course{}, err
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
		return entities.Course{}, err
	}
	return c, nil
}

func (r *CourseDynamoRepository) GetByID(ctx context.Context, id string) (entities.Course, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.Course{}, err
	}
	if len(out.Item) == 0 {
		return entities.Course{}, nil
	}

	var it courseItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Course{}, err
	}
	return entities.Course{
		ID:             it.ID,
		MentorID:       it.MentorID,
		Title:          it.Title,
		PricePaise:     entities.Paise(it.Price),
		CommissionRate: parseFloat(it.CommissionRate),
		Published:      it.Published,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}, nil
}
