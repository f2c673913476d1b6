package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/google/uuid"
	"github.com/jsphweid/capo/chord"
	"github.com/jsphweid/capo/config"
	"github.com/jsphweid/capo/model"
	"github.com/jsphweid/capo/sequence"
)

// DynamoStore keeps one item per progression keyed by "PK".
type DynamoStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewDynamoStore(cfg config.Store) (*DynamoStore, error) {
	awsConfig := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}
	return NewDynamoStoreWithClient(dynamodb.New(sess), cfg.Table), nil
}

func NewDynamoStoreWithClient(client dynamodbiface.DynamoDBAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

func (d *DynamoStore) Save(ctx context.Context, name string, seq sequence.Sequence) (model.Progression, error) {
	p := model.NewProgression(uuid.New().String(), name, seq, time.Now().UTC())
	_, err := d.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(d.table),
		Item:                toItem(p),
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		return model.Progression{}, fmt.Errorf("error from DynamoDB: %w", err)
	}
	return p, nil
}

func (d *DynamoStore) Get(ctx context.Context, id string) (model.Progression, error) {
	out, err := d.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key:       keyOf(id),
	})
	if err != nil {
		return model.Progression{}, fmt.Errorf("error from DynamoDB: %w", err)
	}
	if len(out.Item) == 0 {
		return model.Progression{}, ErrNotFound
	}
	return fromItem(out.Item)
}

func (d *DynamoStore) List(ctx context.Context) ([]model.Progression, error) {
	res := []model.Progression{}
	var decodeErr error
	err := d.client.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName: aws.String(d.table),
	}, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		for _, item := range page.Items {
			p, err := fromItem(item)
			if err != nil {
				decodeErr = err
				return false
			}
			res = append(res, p)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %w", err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}

	sortProgressions(res)
	return res, nil
}

func (d *DynamoStore) Delete(ctx context.Context, id string) error {
	_, err := d.client.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(d.table),
		Key:                 keyOf(id),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	var aerr awserr.Error
	if errors.As(err, &aerr) && aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("error from DynamoDB: %w", err)
	}
	return nil
}

func keyOf(id string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"PK": {S: aws.String(id)},
	}
}

func toItem(p model.Progression) map[string]*dynamodb.AttributeValue {
	chords := make([]*dynamodb.AttributeValue, 0, p.Sequence.Len())
	for _, c := range p.Sequence.Chords() {
		chords = append(chords, &dynamodb.AttributeValue{
			M: map[string]*dynamodb.AttributeValue{
				"Num":  {N: aws.String(strconv.Itoa(c.Num))},
				"Type": {S: aws.String(c.Type.String())},
			},
		})
	}

	item := keyOf(p.ID)
	item["Name"] = &dynamodb.AttributeValue{S: aws.String(p.Name)}
	item["CreatedAt"] = &dynamodb.AttributeValue{S: aws.String(p.CreatedAt.Format(time.RFC3339Nano))}
	item["Chords"] = &dynamodb.AttributeValue{L: chords}
	return item
}

func fromItem(item map[string]*dynamodb.AttributeValue) (model.Progression, error) {
	if item["PK"] == nil || aws.StringValue(item["PK"].S) == "" {
		return model.Progression{}, errors.New("progression item has no PK")
	}
	id := aws.StringValue(item["PK"].S)

	var name string
	if item["Name"] != nil {
		name = aws.StringValue(item["Name"].S)
	}

	var createdAt time.Time
	if item["CreatedAt"] != nil {
		t, err := time.Parse(time.RFC3339Nano, aws.StringValue(item["CreatedAt"].S))
		if err != nil {
			return model.Progression{}, fmt.Errorf("progression %v: bad CreatedAt: %w", id, err)
		}
		createdAt = t
	}

	var inputs []chord.ChordInput
	if item["Chords"] != nil {
		for _, v := range item["Chords"].L {
			if v == nil || v.M["Num"] == nil || v.M["Type"] == nil {
				return model.Progression{}, fmt.Errorf("progression %v: malformed chord", id)
			}
			num, err := strconv.Atoi(aws.StringValue(v.M["Num"].N))
			if err != nil {
				return model.Progression{}, fmt.Errorf("progression %v: bad chord number: %w", id, err)
			}
			inputs = append(inputs, chord.Num(num, aws.StringValue(v.M["Type"].S)))
		}
	}
	seq, err := sequence.New(inputs)
	if err != nil {
		return model.Progression{}, fmt.Errorf("progression %v: %w", id, err)
	}

	return model.NewProgression(id, name, seq, createdAt), nil
}
