// Package store: store/dynamo.go
package store

import (
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-xray-sdk-go/xray"

	"betboard/logger"
	"betboard/models"
)

// DynamoStore persists bets and profiles in DynamoDB. Bets live in a
// single-table layout (PK=USER#<userId>, SK=BET#<betId>, with GSI1
// keyed by status and date); profiles live in a separate table keyed
// by userId.
type DynamoStore struct {
	db         *dynamodb.DynamoDB
	betsTable  string
	usersTable string
}

// NewDynamoStore builds a store from environment configuration:
// BETS_TABLE_NAME, USERS_TABLE_NAME, AWS_REGION (default us-east-1).
// When AWS_XRAY_ENABLED=true the underlying session is instrumented so
// every DynamoDB call emits a trace subsegment.
func NewDynamoStore() (*DynamoStore, error) {
	betsTable := os.Getenv("BETS_TABLE_NAME")
	if betsTable == "" {
		return nil, fmt.Errorf("BETS_TABLE_NAME environment variable not set")
	}
	usersTable := os.Getenv("USERS_TABLE_NAME")
	if usersTable == "" {
		return nil, fmt.Errorf("USERS_TABLE_NAME environment variable not set")
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}

	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, err
	}
	if os.Getenv("AWS_XRAY_ENABLED") == "true" {
		sess = xray.AWSSession(sess)
		logger.Info.Println("NewDynamoStore: X-Ray instrumentation enabled")
	}

	logger.Info.Printf("NewDynamoStore: region=%s betsTable=%s usersTable=%s", region, betsTable, usersTable)
	return &DynamoStore{
		db:         dynamodb.New(sess),
		betsTable:  betsTable,
		usersTable: usersTable,
	}, nil
}

// ------------------- key helpers -------------------

func betKey(userID, betID string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"PK": {S: aws.String("USER#" + userID)},
		"SK": {S: aws.String("BET#" + betID)},
	}
}

// betItem marshals a bet and adds the table keys. GSI1 mirrors status
// and date so the status board can be queried without a scan.
func betItem(bet models.Bet) (map[string]*dynamodb.AttributeValue, error) {
	item, err := dynamodbattribute.MarshalMap(bet)
	if err != nil {
		return nil, err
	}
	item["PK"] = &dynamodb.AttributeValue{S: aws.String("USER#" + bet.UserID)}
	item["SK"] = &dynamodb.AttributeValue{S: aws.String("BET#" + bet.ID)}
	item["GSI1PK"] = &dynamodb.AttributeValue{S: aws.String("STATUS#" + bet.Status)}
	item["GSI1SK"] = &dynamodb.AttributeValue{S: aws.String("DATE#" + bet.Date)}
	return item, nil
}

func unmarshalBet(item map[string]*dynamodb.AttributeValue) (models.Bet, error) {
	var bet models.Bet
	err := dynamodbattribute.UnmarshalMap(item, &bet)
	return bet, err
}

// ------------------- bets -------------------

// CreateBet writes a new bet item.
func (s *DynamoStore) CreateBet(bet models.Bet) error {
	return s.PutBet(bet)
}

// PutBet overwrites the bet item. Last writer wins.
func (s *DynamoStore) PutBet(bet models.Bet) error {
	item, err := betItem(bet)
	if err != nil {
		return err
	}
	_, err = s.db.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(s.betsTable),
		Item:      item,
	})
	if err != nil {
		logger.Error.Printf("PutBet: failed for bet %s: %v", bet.ID, err)
	}
	return err
}

// GetBet fetches one bet owned by userID.
func (s *DynamoStore) GetBet(userID, betID string) (*models.Bet, error) {
	out, err := s.db.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(s.betsTable),
		Key:       betKey(userID, betID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}
	bet, err := unmarshalBet(out.Item)
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

// ListBets queries all bets for a user and applies filters in
// application code, the same shape the original query took.
func (s *DynamoStore) ListBets(userID string, f BetFilters) ([]models.Bet, error) {
	out, err := s.db.Query(&dynamodb.QueryInput{
		TableName:              aws.String(s.betsTable),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":pk": {S: aws.String("USER#" + userID)},
			":sk": {S: aws.String("BET#")},
		},
	})
	if err != nil {
		return nil, err
	}
	return s.collectBets(out.Items, f)
}

// ListAllBets scans the bets table for the public board view.
func (s *DynamoStore) ListAllBets(f BetFilters) ([]models.Bet, error) {
	out, err := s.db.Scan(&dynamodb.ScanInput{
		TableName:        aws.String(s.betsTable),
		FilterExpression: aws.String("begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":sk": {S: aws.String("BET#")},
		},
	})
	if err != nil {
		return nil, err
	}
	return s.collectBets(out.Items, f)
}

func (s *DynamoStore) collectBets(items []map[string]*dynamodb.AttributeValue, f BetFilters) ([]models.Bet, error) {
	var bets []models.Bet
	for _, item := range items {
		bet, err := unmarshalBet(item)
		if err != nil {
			logger.Warn.Printf("collectBets: skipping unreadable item: %v", err)
			continue
		}
		if matchesFilters(bet, f) {
			bets = append(bets, bet)
		}
	}
	return bets, nil
}

// DeleteBet removes a bet item.
func (s *DynamoStore) DeleteBet(userID, betID string) error {
	_, err := s.db.DeleteItem(&dynamodb.DeleteItemInput{
		TableName: aws.String(s.betsTable),
		Key:       betKey(userID, betID),
	})
	return err
}

// ------------------- profiles -------------------

// GetProfile fetches a user profile.
func (s *DynamoStore) GetProfile(userID string) (*models.UserProfile, error) {
	out, err := s.db.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(s.usersTable),
		Key: map[string]*dynamodb.AttributeValue{
			"userId": {S: aws.String(userID)},
		},
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}
	var profile models.UserProfile
	if err := dynamodbattribute.UnmarshalMap(out.Item, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// PutProfile overwrites a user profile.
func (s *DynamoStore) PutProfile(profile models.UserProfile) error {
	item, err := dynamodbattribute.MarshalMap(profile)
	if err != nil {
		return err
	}
	_, err = s.db.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(s.usersTable),
		Item:      item,
	})
	if err != nil {
		logger.Error.Printf("PutProfile: failed for user %s: %v", profile.UserID, err)
	}
	return err
}
