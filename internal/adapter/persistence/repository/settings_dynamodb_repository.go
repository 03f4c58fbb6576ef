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

const defaultSettingsTableName = "platform_settings"

type settingsItem struct {
	ID                    string `dynamodbav:"id"`
	SessionCommissionRate string `dynamodbav:"session_commission_rate,omitempty"`
	EventCommissionRate   string `dynamodbav:"event_commission_rate,omitempty"`
	CourseCommissionRate  string `dynamodbav:"course_commission_rate,omitempty"`
	ProductCommissionRate string `dynamodbav:"product_commission_rate,omitempty"`
	UpdatedAt             string `dynamodbav:"updated_at"`
}

// SettingsDynamoRepository reads the singleton platform settings row. A
// missing row is not an error; callers fall back to hardcoded defaults.

type SettingsDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISettingsRepository = (*SettingsDynamoRepository)(nil)

func NewSettingsDynamoRepository(ddb *dynamodb.Client, tableName string) *SettingsDynamoRepository {
	return &SettingsDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultSettingsTableName),
	}
}

func (r *SettingsDynamoRepository) Get(ctx context.Context) (entities.PlatformSettings, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: entities.PlatformSettingsID},
		},
	})
	if err != nil {
		return entities.PlatformSettings{}, err
	}
	if len(out.Item) == 0 {
		return entities.PlatformSettings{}, nil
	}

	var it settingsItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PlatformSettings{}, err
	}
	return entities.PlatformSettings{
		ID:                    it.ID,
		SessionCommissionRate: parseFloat(it.SessionCommissionRate),
		EventCommissionRate:   parseFloat(it.EventCommissionRate),
		CourseCommissionRate:  parseFloat(it.CourseCommissionRate),
		ProductCommissionRate: parseFloat(it.ProductCommissionRate),
		UpdatedAt:             parseTime(it.UpdatedAt),
	}, nil
}
