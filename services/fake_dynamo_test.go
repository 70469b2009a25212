package services

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"flatmates_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory DynamoAPI for the service tests. Items are kept
// in insertion order so scans mirror the store's natural order. Set fail to
// make every call act like an unreachable store.
type fakeDynamo struct {
	order []string
	items map[string]map[string]types.AttributeValue
	fail  bool
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamo) putUser(t *testing.T, user models.User) {
	t.Helper()
	if err := f.PutItem(context.Background(), models.UsersTable, user); err != nil {
		t.Fatalf("failed to seed user %s: %v", user.UserID, err)
	}
}

func (f *fakeDynamo) getUser(t *testing.T, userID string) models.User {
	t.Helper()
	item, ok := f.items[userID]
	if !ok {
		t.Fatalf("user %s not in fake store", userID)
	}
	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		t.Fatalf("failed to unmarshal user %s: %v", userID, err)
	}
	return user
}

func keyID(key map[string]types.AttributeValue) string {
	if v, ok := key["userId"].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func attrString(item map[string]types.AttributeValue, field string) string {
	if v, ok := item[field].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func (f *fakeDynamo) GetItem(_ context.Context, _ string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	if f.fail {
		return nil, fmt.Errorf("fake outage: %w", ErrStoreUnavailable)
	}
	item, ok := f.items[keyID(key)]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, _ string, item interface{}) error {
	if f.fail {
		return fmt.Errorf("fake outage: %w", ErrStoreUnavailable)
	}
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	id := attrString(marshaled, "userId")
	if _, exists := f.items[id]; !exists {
		f.order = append(f.order, id)
	}
	f.items[id] = marshaled
	return nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, _ string, key map[string]types.AttributeValue) error {
	if f.fail {
		return fmt.Errorf("fake outage: %w", ErrStoreUnavailable)
	}
	id := keyID(key)
	delete(f.items, id)
	f.order = slices.DeleteFunc(f.order, func(s string) bool { return s == id })
	return nil
}

func (f *fakeDynamo) UpdateFields(_ context.Context, _ string, key map[string]types.AttributeValue, fields map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	if f.fail {
		return nil, fmt.Errorf("fake outage: %w", ErrStoreUnavailable)
	}
	id := keyID(key)
	item, ok := f.items[id]
	if !ok {
		item = map[string]types.AttributeValue{"userId": &types.AttributeValueMemberS{Value: id}}
		f.order = append(f.order, id)
		f.items[id] = item
	}
	for name, value := range fields {
		item[name] = value
	}
	return item, nil
}

func (f *fakeDynamo) UpdateSetMembership(_ context.Context, _ string, key map[string]types.AttributeValue, addAttr, removeAttr, member string) error {
	if f.fail {
		return fmt.Errorf("fake outage: %w", ErrStoreUnavailable)
	}
	item, ok := f.items[keyID(key)]
	if !ok {
		return fmt.Errorf("item missing: %w", ErrNotFound)
	}

	added := setMembers(item, addAttr)
	if !slices.Contains(added, member) {
		added = append(added, member)
	}
	item[addAttr] = &types.AttributeValueMemberSS{Value: added}

	removed := slices.DeleteFunc(setMembers(item, removeAttr), func(s string) bool { return s == member })
	if len(removed) == 0 {
		// DynamoDB drops a string set when its last member is deleted
		delete(item, removeAttr)
	} else {
		item[removeAttr] = &types.AttributeValueMemberSS{Value: removed}
	}
	return nil
}

func setMembers(item map[string]types.AttributeValue, field string) []string {
	if v, ok := item[field].(*types.AttributeValueMemberSS); ok {
		return slices.Clone(v.Value)
	}
	return nil
}

func (f *fakeDynamo) ScanWithFilter(_ context.Context, _ string, matchFields map[string]string, filterFunc func(map[string]types.AttributeValue) bool, result interface{}) error {
	if f.fail {
		return fmt.Errorf("fake outage: %w", ErrStoreUnavailable)
	}
	var filtered []map[string]types.AttributeValue
outer:
	for _, id := range f.order {
		item := f.items[id]
		for field, want := range matchFields {
			if attrString(item, field) != want {
				continue outer
			}
		}
		if filterFunc == nil || filterFunc(item) {
			filtered = append(filtered, item)
		}
	}
	return attributevalue.UnmarshalListOfMaps(filtered, result)
}

func (f *fakeDynamo) QueryItemsWithIndex(_ context.Context, _, indexName, _ string, expressionAttributeValues map[string]types.AttributeValue, _ int32) ([]map[string]types.AttributeValue, error) {
	if f.fail {
		return nil, fmt.Errorf("fake outage: %w", ErrStoreUnavailable)
	}
	if indexName != models.EmailIndex {
		return nil, fmt.Errorf("fake store only knows the %s index", models.EmailIndex)
	}
	want := ""
	if v, ok := expressionAttributeValues[":emailId"].(*types.AttributeValueMemberS); ok {
		want = v.Value
	}
	for _, id := range f.order {
		if attrString(f.items[id], "emailId") == want {
			return []map[string]types.AttributeValue{f.items[id]}, nil
		}
	}
	return nil, nil
}
